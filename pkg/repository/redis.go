package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/session"
	"github.com/go-redis/redis/v8"
)

// RedisRepository stores session records as JSON strings.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(cfg *config.RedisConfig, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		ttl: ttl,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisRepository) SaveSession(ctx context.Context, key string, s session.UserSession) error {
	if err := r.setJSON(ctx, key, s); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) LoadSession(ctx context.Context, key string) (session.UserSession, error) {
	var s session.UserSession
	err := r.getJSON(ctx, key, &s)
	if errors.Is(err, redis.Nil) {
		return session.Anonymous(), session.ErrSessionNotFound
	}
	if err != nil {
		return session.Anonymous(), fmt.Errorf("redis get %s: %w", key, err)
	}
	return s, nil
}

func (r *RedisRepository) DeleteSession(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
