package casters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed caster repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

// NewRedis creates a Redis repository with default settings
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("caster:%s", id)
}

func (r *redisRepo) ownerCastersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:casters", ownerID)
}

// Create stores a new caster
func (r *redisRepo) Create(ctx context.Context, caster *spellcasting.Caster) error {
	if caster == nil {
		return dnderr.InvalidArgument("caster cannot be nil")
	}
	if caster.ID == "" {
		return dnderr.InvalidArgument("caster ID is required")
	}
	if caster.OwnerID == "" {
		return dnderr.InvalidArgument("caster owner ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(caster.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check caster existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("caster with ID '%s' already exists", caster.ID).
			WithMeta("caster_id", caster.ID)
	}

	data := caster.Clone()
	data.CreatedAt = r.timeProvider.Now()
	data.UpdatedAt = data.CreatedAt

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal caster: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(caster.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerCastersKey(caster.OwnerID), caster.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create caster: %w", err)
	}

	caster.CreatedAt = data.CreatedAt
	caster.UpdatedAt = data.UpdatedAt
	return nil
}

// Get retrieves a caster by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*spellcasting.Caster, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("caster with ID '%s' not found", id).
			WithMeta("caster_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caster: %w", err)
	}

	return decodeCaster(jsonData)
}

// ListByOwner retrieves all casters for a specific owner
func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*spellcasting.Caster, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCastersKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list caster IDs: %w", err)
	}

	casters := make([]*spellcasting.Caster, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			caster, err := r.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to get caster %s: %w", id, err)
			}
			casters[i] = caster
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return casters, nil
}

// Update replaces an existing caster, preserving its creation time
func (r *redisRepo) Update(ctx context.Context, caster *spellcasting.Caster) error {
	if caster == nil {
		return dnderr.InvalidArgument("caster cannot be nil")
	}

	existing, err := r.Get(ctx, caster.ID)
	if err != nil {
		return err
	}

	data := caster.Clone()
	data.CreatedAt = existing.CreatedAt
	data.UpdatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal caster: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(caster.ID), string(jsonData), 0)
	if existing.OwnerID != caster.OwnerID {
		pipe.SRem(ctx, r.ownerCastersKey(existing.OwnerID), caster.ID)
		pipe.SAdd(ctx, r.ownerCastersKey(caster.OwnerID), caster.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update caster: %w", err)
	}

	return nil
}

// Apply applies an update inside a WATCH/MULTI transaction. A concurrent write
// to the same caster aborts with a conflict error; callers do not retry.
func (r *redisRepo) Apply(ctx context.Context, id string, update *spellcasting.CasterUpdate) (*spellcasting.Caster, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}
	if update == nil {
		return nil, dnderr.InvalidArgument("update cannot be nil")
	}

	key := r.key(id)
	var updated *spellcasting.Caster

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return dnderr.NotFoundf("caster with ID '%s' not found", id).
				WithMeta("caster_id", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get caster: %w", err)
		}

		caster, err := decodeCaster(jsonData)
		if err != nil {
			return err
		}

		if err := update.ApplyTo(caster); err != nil {
			return err
		}
		caster.UpdatedAt = r.timeProvider.Now()

		out, err := json.Marshal(caster)
		if err != nil {
			return fmt.Errorf("failed to marshal caster: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(out), 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = caster
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, dnderr.Conflictf("caster '%s' was modified concurrently", id).
			WithMeta("caster_id", id)
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a caster
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	caster, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCastersKey(caster.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete caster: %w", err)
	}

	return nil
}

func decodeCaster(jsonData []byte) (*spellcasting.Caster, error) {
	var caster spellcasting.Caster
	if err := json.Unmarshal(jsonData, &caster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal caster: %w", err)
	}
	return &caster, nil
}
