package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront"

type redisStorage struct {
	client  redis.Cmdable
	ownerID string
	ttl     time.Duration
}

// NewRedis stores each record under storefront:{ownerID}:{key}. A zero ttl keeps records forever.
func NewRedis(client redis.Cmdable, ownerID string, ttl time.Duration) (port.StateStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return &redisStorage{
		client:  client,
		ownerID: ownerID,
		ttl:     ttl,
	}, nil
}

func (r *redisStorage) key(key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, r.ownerID, key)
}

func (r *redisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get[%s]: %w", key, err)
	}

	return value, nil
}

func (r *redisStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set[%s]: %w", key, err)
	}

	return nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("client.Del[%s]: %w", key, err)
	}

	return nil
}
