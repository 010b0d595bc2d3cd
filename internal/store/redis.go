package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the save under one Redis key per slot.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	key    string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store for slot on the server at addr.
func NewRedisStore(addr, slot string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if slot == "" {
		slot = "default"
	}
	return &RedisStore{
		client: rdb,
		logger: logger,
		key:    "petsim:save:" + slot,
	}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (*Save, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSave
		}
		r.logger.Error("Failed to load save", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to load save: %w", err)
	}
	if data == "" {
		return nil, ErrNoSave
	}

	var s Save
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		r.logger.Error("Failed to unmarshal save", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal save: %w", err)
	}
	s.normalize()
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Save) error {
	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal save", "key", r.key, "error", err)
		return fmt.Errorf("failed to marshal save: %w", err)
	}
	if err := r.client.Set(ctx, r.key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save", "key", r.key, "error", err)
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}
