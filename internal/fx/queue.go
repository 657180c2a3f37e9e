package fx

import (
	"context"

	"Tenure/config"
	"Tenure/internal/domain/notification"
	"Tenure/internal/infrastructure"
	"Tenure/internal/logger"
	"Tenure/internal/queue"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

// QueueModule fornece a fila de jobs e registra os handlers de email e push.
var QueueModule = fx.Module("queue",
	fx.Provide(
		newQueueBroker,
		newQueueService,
	),
	fx.Invoke(
		registerJobHandlers,
		startWorkers,
	),
)

func newQueueBroker(cfg *config.Config, client *redis.Client) queue.Broker {
	if cfg.Queue.Driver == "redis" && client != nil {
		return infrastructure.NewRedisQueueBroker(client)
	}
	logger.Warn().Msg("Fila em memória: jobs pendentes serão perdidos ao reiniciar")
	return queue.NewMemoryBroker(0)
}

func newQueueService(cfg *config.Config, broker queue.Broker) *queue.Service {
	return queue.NewService(broker, queue.Options{
		Name:        cfg.Queue.Name,
		Workers:     cfg.Queue.Workers,
		MaxAttempts: cfg.Queue.MaxAttempts,
	})
}

func registerJobHandlers(jobs *queue.Service, notifications *notification.Service) {
	jobs.Register(notification.JobSendMail, notifications.HandleMailJob)
	jobs.Register(notification.JobSendPush, notifications.HandlePushJob)
}

func startWorkers(lc fx.Lifecycle, jobs *queue.Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			jobs.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return jobs.Stop(ctx)
		},
	})
}
