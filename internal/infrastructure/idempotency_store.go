package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	idempotencyKeyPrefix  = "idempotency:"
	idempotencyLockPrefix = "lock:"
)

// RedisIdempotencyStore guarda respostas já servidas e o lock de processamento por chave.
type RedisIdempotencyStore struct {
	Client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{Client: client}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.Client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisIdempotencyStore) Save(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, idempotencyKeyPrefix+key, body, ttl).Err()
}

func (s *RedisIdempotencyStore) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.Client.SetNX(ctx, idempotencyLockPrefix+key, "processing", ttl).Result()
}

func (s *RedisIdempotencyStore) Unlock(ctx context.Context, key string) error {
	return s.Client.Del(ctx, idempotencyLockPrefix+key).Err()
}
