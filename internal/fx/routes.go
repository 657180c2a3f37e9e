package fx

import (
	"Tenure/config"
	"Tenure/internal/domain/auth"
	"Tenure/internal/domain/company"
	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/notification"
	"Tenure/internal/domain/transaction"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	"Tenure/internal/queue"
	"Tenure/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler HTTP
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	cfg *config.Config,
	userSvc *user.Service,
	authSvc *auth.Service,
	companySvc *company.Service,
	goalSvc *goal.Service,
	walletSvc *wallet.Service,
	transactionSvc *transaction.Service,
	notificationSvc *notification.Service,
	engine *contribution.Engine,
	jobs *queue.Service,
) *routes.Handler {
	return &routes.Handler{
		Config:              cfg,
		UserService:         userSvc,
		AuthService:         authSvc,
		CompanyService:      companySvc,
		GoalService:         goalSvc,
		WalletService:       walletSvc,
		TransactionService:  transactionSvc,
		NotificationService: notificationSvc,
		ContributionEngine:  engine,
		Queue:               jobs,
	}
}
