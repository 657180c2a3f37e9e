package wallet

import (
	"context"
	"time"

	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) GetByUserID(ctx context.Context, userID ulid.ULID) (*Wallet, error) {
	return s.Repository.GetByUserID(ctx, userID)
}

// EnsureWallet cria a carteira zerada do usuário caso ainda não exista.
func (s *Service) EnsureWallet(ctx context.Context, userID ulid.ULID) (*Wallet, error) {
	existing, err := s.Repository.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if appErr, ok := appErrors.AsAppError(err); !ok || appErr.Code != appErrors.ErrWalletNotFound.Code {
		return nil, err
	}

	now := time.Now()
	w := &Wallet{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repository.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) UpdateSettings(ctx context.Context, userID ulid.ULID, req SettingsRequest) (*Wallet, error) {
	w, err := s.Repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Budget != nil {
		if err := pkg.ValidateNonNegativeMoney("budget", *req.Budget); err != nil {
			return nil, err
		}
		budget := *req.Budget
		w.Budget = &budget
	}
	if req.Rounding != nil {
		w.Rounding = *req.Rounding
	}
	w.UpdatedAt = time.Now()

	if err := s.Repository.UpdateSettings(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Deposit(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*Wallet, error) {
	if err := pkg.ValidateMoneyAmount("amount", amount); err != nil {
		return nil, err
	}
	return s.Repository.Deposit(ctx, userID, amount)
}
