package fx

import (
	"Tenure/config"
	"Tenure/internal/domain/auth"
	"Tenure/internal/domain/company"
	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/notification"
	"Tenure/internal/domain/shared"
	"Tenure/internal/domain/transaction"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	"Tenure/internal/infrastructure"
	"Tenure/internal/logger"
	"Tenure/internal/middleware"
	"Tenure/internal/queue"

	"github.com/sethvargo/go-password/password"
	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserCheckerService,
		newWalletService,
		newFundsGuard,
		newTransactionService,
		newGoalService,
		newPasswordGenerator,
		newCompanyService,
		newNotificationService,
		newGoogleOAuthVerifier,
		newAuthService,
		newContributionEngine,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserCheckerService(userSvc *user.Service) *shared.UserCheckerService {
	return shared.NewUserCheckerService(userSvc)
}

func newWalletService(repo *infrastructure.WalletRepository) *wallet.Service {
	return wallet.NewService(repo)
}

func newFundsGuard(repo *infrastructure.WalletRepository) *wallet.Guard {
	return wallet.NewGuard(repo)
}

func newTransactionService(repo *infrastructure.TransactionRepository) *transaction.Service {
	return transaction.NewService(repo)
}

func newGoalService(
	repo *infrastructure.GoalRepository,
	userSvc *user.Service,
	userChecker *shared.UserCheckerService,
) *goal.Service {
	return goal.NewService(repo, userSvc, userChecker)
}

func newPasswordGenerator() (*password.Generator, error) {
	return password.NewGenerator(nil)
}

func newCompanyService(
	repo *infrastructure.CompanyRepository,
	userSvc *user.Service,
	userRepo *infrastructure.UserRepository,
	walletSvc *wallet.Service,
	passwords *password.Generator,
	jobs *queue.Service,
) *company.Service {
	return company.NewService(repo, userSvc, userRepo, walletSvc, passwords, jobs)
}

func newNotificationService(
	userRepo *infrastructure.UserRepository,
	jobs *queue.Service,
	mailer notification.Mailer,
	pusher notification.Pusher,
) *notification.Service {
	return notification.NewService(userRepo, jobs, mailer, pusher)
}

func newGoogleOAuthVerifier(cfg *config.Config) (auth.OAuthVerifier, error) {
	if !cfg.GoogleOAuth.Enabled {
		logger.Info().Msg("Google OAuth desabilitado (GOOGLE_OAUTH_ENABLED não está definido como 'true')")
		return nil, nil
	}
	if cfg.GoogleOAuth.ClientID == "" {
		logger.Warn().
			Msg("GOOGLE_OAUTH_ENABLED=true mas GOOGLE_OAUTH_CLIENT_ID está vazio. Verifique se a variável está definida no arquivo .env")
		return nil, nil
	}
	provider, err := auth.NewGoogleOAuthProvider(cfg.GoogleOAuth)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("client_id_length", len(cfg.GoogleOAuth.ClientID)).Msg("Google OAuth habilitado")
	return provider, nil
}

func newAuthService(
	cfg *config.Config,
	userRepo *infrastructure.UserRepository,
	userSvc *user.Service,
	walletSvc *wallet.Service,
	jwtSvc *middleware.JwtService,
	refreshTokens *infrastructure.RefreshTokenRepository,
	jobs *queue.Service,
	google auth.OAuthVerifier,
) *auth.Service {
	return auth.NewService(userRepo, userSvc, walletSvc, jwtSvc, refreshTokens, jobs, google, cfg.App.ClientURL)
}

func newContributionEngine(
	userRepo *infrastructure.UserRepository,
	goalRepo *infrastructure.GoalRepository,
	guard *wallet.Guard,
	store *infrastructure.ContributionStore,
	notifications *notification.Service,
	publisher *infrastructure.KafkaPublisher,
) *contribution.Engine {
	observers := []contribution.Observer{notifications}
	if publisher.Enabled() {
		observers = append(observers, publisher)
	}
	return contribution.NewEngine(userRepo, goalRepo, guard, store, observers...)
}
