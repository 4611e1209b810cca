package character

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	redisclient "github.com/mythostools/investigator-api/internal/redis"
)

const (
	characterKeyPrefix   = "character:"
	sessionMappingPrefix = "character:session:"

	// Must match the session repository's attempt counter key
	sessionAttemptsPrefix = "session:attempts:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errSessionIDEmpty   = "session ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func (r *redisRepository) Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Character.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	sessionKey := sessionMappingPrefix + input.Character.SessionID
	existingID, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to check existing character")
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	// Replace-then-insert-then-increment as one transaction: a failure
	// partway must not leave two characters on the session or consume
	// an attempt without storing the character.
	pipe := r.client.TxPipeline()

	if existingID != "" && existingID != input.Character.ID {
		pipe.Del(ctx, characterKeyPrefix+existingID)
	}

	pipe.Set(ctx, characterKeyPrefix+input.Character.ID, data, 0)
	pipe.Set(ctx, sessionKey, input.Character.ID, 0)
	incr := pipe.Incr(ctx, sessionAttemptsPrefix+input.Character.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to submit character")
	}

	return &SubmitOutput{
		Character:    input.Character,
		AttemptsUsed: int(incr.Val()),
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var c coc.Character
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	return &GetOutput{Character: &c}, nil
}

func (r *redisRepository) GetBySessionID(ctx context.Context, input GetBySessionIDInput) (*GetBySessionIDOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	sessionKey := sessionMappingPrefix + input.SessionID
	characterID, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no character found for session %s", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session character mapping")
	}

	getOutput, err := r.Get(ctx, GetInput{ID: characterID})
	if err != nil {
		if errors.IsNotFound(err) {
			r.client.Del(ctx, sessionKey)
		}
		return nil, err
	}

	return &GetBySessionIDOutput{Character: getOutput.Character}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKeyPrefix+input.ID)
	if getOutput.Character.SessionID != "" {
		pipe.Del(ctx, sessionMappingPrefix+getOutput.Character.SessionID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}
