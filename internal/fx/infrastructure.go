package fx

import (
	"context"

	"Tenure/config"
	"Tenure/internal/domain/notification"
	"Tenure/internal/infrastructure"
	"Tenure/internal/logger"
	"Tenure/internal/middleware"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newRedisClient,
		newUserRepository,
		newCompanyRepository,
		newWalletRepository,
		newGoalRepository,
		newTransactionRepository,
		newRefreshTokenRepository,
		newContributionStore,
		newIdempotencyStore,
		newKafkaPublisher,
		newMailer,
		newPusher,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newRedisClient(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	client, err := infrastructure.NewRedisClient(cfg)
	if err != nil || client == nil {
		return client, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newCompanyRepository(db *gorm.DB) *infrastructure.CompanyRepository {
	return &infrastructure.CompanyRepository{DB: db}
}

func newWalletRepository(db *gorm.DB) *infrastructure.WalletRepository {
	return &infrastructure.WalletRepository{DB: db}
}

func newGoalRepository(db *gorm.DB) *infrastructure.GoalRepository {
	return &infrastructure.GoalRepository{DB: db}
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newRefreshTokenRepository(db *gorm.DB) *infrastructure.RefreshTokenRepository {
	return &infrastructure.RefreshTokenRepository{DB: db}
}

func newContributionStore(db *gorm.DB) *infrastructure.ContributionStore {
	return &infrastructure.ContributionStore{DB: db}
}

// Sem Redis a idempotência fica desligada; o middleware aceita store nil.
func newIdempotencyStore(client *redis.Client) middleware.IdempotencyStore {
	if client == nil {
		logger.Warn().Msg("Redis desabilitado: Idempotency-Key será ignorado")
		return nil
	}
	return infrastructure.NewRedisIdempotencyStore(client)
}

func newKafkaPublisher(lc fx.Lifecycle, cfg *config.Config) (*infrastructure.KafkaPublisher, error) {
	publisher, err := infrastructure.NewKafkaPublisher(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			publisher.Close(5000)
			return nil
		},
	})
	return publisher, nil
}

func newMailer(cfg *config.Config) (notification.Mailer, error) {
	if !cfg.Mail.Enabled {
		logger.Info().Msg("Envio de email desabilitado: emails serão apenas registrados no log")
		return infrastructure.LogMailer{}, nil
	}
	mailer, err := infrastructure.NewGmailMailer(context.Background(), cfg.Mail)
	if err != nil {
		return nil, err
	}
	return mailer, nil
}

func newPusher(cfg *config.Config) notification.Pusher {
	if !cfg.Push.Enabled {
		logger.Info().Msg("Push desabilitado: notificações serão apenas registradas no log")
		return infrastructure.LogPusher{}
	}
	return infrastructure.NewExpoPusher(cfg.Push)
}
