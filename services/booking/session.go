package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix = "bookingSession:"
	sessionTTL    = 15 * time.Minute
)

// RedisSessionStore keeps submission sessions in Redis with a TTL, so an
// abandoned payment sheet simply expires.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps the given client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal booking session: %w", err)
	}
	return s.client.Set(ctx, sessionPrefix+session.ID, data, sessionTTL).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// RedisLocker implements Locker with SETNX semantics.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker wraps the given client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}
