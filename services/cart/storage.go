package cart

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// ErrKeyNotFound is returned by Storage.Get when no state has been saved
// under the key yet.
var ErrKeyNotFound = errors.New("cart: key not found")

// Storage is the durable key-value collaborator the store persists to.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RedisStorage adapts a Redis client to the Storage interface.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage wraps the given client.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	return val, err
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
