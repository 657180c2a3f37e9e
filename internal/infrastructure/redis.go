package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/config"
	"Tenure/internal/logger"
	"Tenure/internal/queue"

	"github.com/go-redis/redis/v8"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("Redis desabilitado")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("addr", cfg.Redis.Addr()).Msg("Falha ao conectar ao Redis")
		return nil, err
	}

	logger.Info().Str("addr", cfg.Redis.Addr()).Msg("Conexão com Redis estabelecida com sucesso")
	return rdb, nil
}

// RedisQueueBroker usa uma lista Redis: LPUSH para enfileirar, BRPOP para consumir.
type RedisQueueBroker struct {
	Client *redis.Client
	Prefix string
}

var _ queue.Broker = (*RedisQueueBroker)(nil)

func NewRedisQueueBroker(client *redis.Client) *RedisQueueBroker {
	return &RedisQueueBroker{Client: client, Prefix: "queue:"}
}

func (b *RedisQueueBroker) key(name string) string {
	return b.Prefix + name
}

func (b *RedisQueueBroker) Push(ctx context.Context, name string, data []byte) error {
	return b.Client.LPush(ctx, b.key(name), data).Err()
}

func (b *RedisQueueBroker) Pop(ctx context.Context, name string, timeout time.Duration) ([]byte, error) {
	res, err := b.Client.BRPop(ctx, timeout, b.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, queue.ErrEmpty
		}
		return nil, err
	}
	// BRPOP devolve [chave, valor].
	if len(res) < 2 {
		return nil, queue.ErrEmpty
	}
	return []byte(res[1]), nil
}

func (b *RedisQueueBroker) Len(ctx context.Context, name string) (int64, error) {
	return b.Client.LLen(ctx, b.key(name)).Result()
}
