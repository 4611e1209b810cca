package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/mythostools/investigator-api/internal/handlers/httpapi"
	"github.com/mythostools/investigator-api/internal/orchestrators/creation"
	"github.com/mythostools/investigator-api/internal/pkg/dice"
	"github.com/mythostools/investigator-api/internal/redis"
	characterrepo "github.com/mythostools/investigator-api/internal/repositories/character"
	draftrepo "github.com/mythostools/investigator-api/internal/repositories/draft"
	sessionrepo "github.com/mythostools/investigator-api/internal/repositories/session"
	"github.com/mythostools/investigator-api/internal/rulebook"
)

// serverConfig is populated from the environment
type serverConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize   int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisUseTLS     bool          `env:"REDIS_USE_TLS" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the investigator creation HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := env.ParseAs[serverConfig]()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisUseTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	rb, err := rulebook.Default()
	if err != nil {
		return fmt.Errorf("failed to load rulebook: %w", err)
	}

	orchestrator, err := creation.New(&creation.Config{
		SessionRepo:   sessionrepo.NewRedisRepository(redisClient),
		DraftRepo:     draftrepo.NewRedisRepository(redisClient),
		CharacterRepo: characterrepo.NewRedisRepository(redisClient),
		Rulebook:      rb,
		Roller:        dice.NewRoller(),
	})
	if err != nil {
		return fmt.Errorf("failed to create creation orchestrator: %w", err)
	}

	handler, err := httpapi.NewHandler(&httpapi.HandlerConfig{
		CreationService: orchestrator,
		Rulebook:        rb,
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}

		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
