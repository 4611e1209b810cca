package session

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	redisclient "github.com/mythostools/investigator-api/internal/redis"
)

const (
	sessionKeyPrefix  = "session:"
	codeMappingPrefix = "session:code:"
	attemptsKeyPrefix = "session:attempts:"

	// Error messages
	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
	errCodeEmpty      = "invite code cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed session repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Session.Code == "" {
		return nil, errors.InvalidArgument(errCodeEmpty)
	}

	codeKey := codeMappingPrefix + input.Session.Code
	taken, err := r.client.Exists(ctx, codeKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check code mapping")
	}
	if taken > 0 {
		return nil, errors.AlreadyExistsf("invite code %s already in use", input.Session.Code)
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+input.Session.ID, data, 0)
	pipe.Set(ctx, codeKey, input.Session.ID, 0)
	pipe.Set(ctx, attemptsKeyPrefix+input.Session.ID, input.Session.AttemptsUsed, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create session")
	}

	return &CreateOutput{Session: input.Session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	result, err := r.client.Get(ctx, sessionKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session")
	}

	var session coc.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// The counter key is authoritative for attempts-used
	counter, err := r.client.Get(ctx, attemptsKeyPrefix+input.ID).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to get attempt counter")
	}
	if err == nil {
		used, convErr := strconv.Atoi(counter)
		if convErr != nil {
			return nil, errors.Wrapf(convErr, "corrupt attempt counter for session %s", input.ID)
		}
		session.AttemptsUsed = used
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) GetByCode(ctx context.Context, input GetByCodeInput) (*GetByCodeOutput, error) {
	if input.Code == "" {
		return nil, errors.InvalidArgument(errCodeEmpty)
	}

	sessionID, err := r.client.Get(ctx, codeMappingPrefix+input.Code).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no session for invite code %s", input.Code)
		}
		return nil, errors.Wrapf(err, "failed to resolve invite code")
	}

	getOutput, err := r.Get(ctx, GetInput{ID: sessionID})
	if err != nil {
		// Dangling mapping, clean it up
		if errors.IsNotFound(err) {
			r.client.Del(ctx, codeMappingPrefix+input.Code)
		}
		return nil, err
	}

	return &GetByCodeOutput{Session: getOutput.Session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKeyPrefix + input.Session.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("session with ID %s not found", input.Session.ID)
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update session")
	}

	return &UpdateOutput{Session: input.Session}, nil
}

func (r *redisRepository) IncrementAttempts(ctx context.Context, input IncrementAttemptsInput) (*IncrementAttemptsOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	exists, err := r.client.Exists(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("session with ID %s not found", input.SessionID)
	}

	used, err := r.client.Incr(ctx, attemptsKeyPrefix+input.SessionID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to increment attempts")
	}

	return &IncrementAttemptsOutput{AttemptsUsed: int(used)}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+input.ID)
	pipe.Del(ctx, codeMappingPrefix+getOutput.Session.Code)
	pipe.Del(ctx, attemptsKeyPrefix+input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete session")
	}

	return &DeleteOutput{}, nil
}
