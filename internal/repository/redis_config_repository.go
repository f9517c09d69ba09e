package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fanmon/internal/models"
)

// configKey is the one key the configuration record lives under. A
// fixed key makes the singleton invariant structural: there is nothing
// to duplicate.
const configKey = "fanmon:config"

// setThresholdAttempts bounds the optimistic-lock retry loop when
// concurrent writers touch the record.
const setThresholdAttempts = 5

// RedisConfigRepository stores the configuration record as a JSON
// document under a fixed Redis key.
type RedisConfigRepository struct {
	client *redis.Client
}

// NewRedisConfigRepository creates a new RedisConfigRepository.
func NewRedisConfigRepository(client *redis.Client) *RedisConfigRepository {
	return &RedisConfigRepository{client: client}
}

// Get returns the current record, or nil when none exists yet.
func (r *RedisConfigRepository) Get(ctx context.Context) (*models.Config, error) {
	raw, err := r.client.Get(ctx, configKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	var cfg models.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, models.NewStorageError(fmt.Errorf("decoding stored config: %w", err))
	}
	return &cfg, nil
}

// EnsureDefault creates the default record if absent. SETNX makes the
// create atomic: one of any number of concurrent callers wins, the
// rest see the existing record.
func (r *RedisConfigRepository) EnsureDefault(ctx context.Context) error {
	raw, err := json.Marshal(models.DefaultConfig(time.Now().UTC()))
	if err != nil {
		return models.NewStorageError(err)
	}
	if err := r.client.SetNX(ctx, configKey, raw, 0).Err(); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// SetThreshold updates the threshold under a WATCH transaction so a
// concurrent writer aborts the EXEC instead of being silently
// overwritten; the losing side retries against the fresh record.
func (r *RedisConfigRepository) SetThreshold(ctx context.Context, threshold float64) (models.Config, error) {
	var updated models.Config

	txn := func(tx *redis.Tx) error {
		cfg := models.DefaultConfig(time.Now().UTC())
		raw, err := tx.Get(ctx, configKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
				return fmt.Errorf("decoding stored config: %w", err)
			}
		}

		cfg.Threshold = threshold
		cfg.LastUpdated = time.Now().UTC()

		encoded, err := json.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, configKey, encoded, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = cfg
		return nil
	}

	for i := 0; i < setThresholdAttempts; i++ {
		err := r.client.Watch(ctx, txn, configKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return models.Config{}, models.NewStorageError(err)
		}
		return updated, nil
	}
	return models.Config{}, models.NewStorageError(errors.New("config update kept conflicting with concurrent writers"))
}
