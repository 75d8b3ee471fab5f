// auction/store/redis_store.go
package store

import (
	"context"
	"errors"
	"fmt"

	redisu "github.com/Ftotnem/auction-state/shared/redis"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every resource as one string key without expiry.
type RedisStore struct {
	redisClient redis.UniversalClient
}

// NewRedisStore takes ownership of redisClient; Close closes it.
func NewRedisStore(redisClient redis.UniversalClient) *RedisStore {
	return &RedisStore{redisClient: redisClient}
}

func documentKey(resource Resource) string {
	return fmt.Sprintf(redisu.DocumentKeyPrefix, resource.Key())
}

func (rs *RedisStore) Load(ctx context.Context, resource Resource) ([]byte, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	data, err := rs.redisClient.Get(ctx, documentKey(resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s from Redis: %w", resource, err)
	}
	return checkLoaded(resource, data)
}

func (rs *RedisStore) Save(ctx context.Context, resource Resource, doc []byte) error {
	data, err := formatDocument(resource, doc)
	if err != nil {
		return err
	}
	if err := rs.redisClient.Set(ctx, documentKey(resource), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to Redis: %w", resource, err)
	}
	return nil
}

func (rs *RedisStore) Exists(ctx context.Context, resource Resource) (bool, error) {
	if err := checkResource(resource); err != nil {
		return false, err
	}
	n, err := rs.redisClient.Exists(ctx, documentKey(resource)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s in Redis: %w", resource, err)
	}
	return n > 0, nil
}

func (rs *RedisStore) Close() error {
	return rs.redisClient.Close()
}
