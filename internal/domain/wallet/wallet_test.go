package wallet_test

import (
	"context"
	"testing"

	"Tenure/internal/domain/wallet"
	appErrors "Tenure/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeWalletRepository struct {
	createFn         func(ctx context.Context, w *wallet.Wallet) error
	getByUserIDFn    func(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error)
	updateSettingsFn func(ctx context.Context, w *wallet.Wallet) error
	depositFn        func(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*wallet.Wallet, error)
}

func (f *fakeWalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	if f.createFn != nil {
		return f.createFn(ctx, w)
	}
	return nil
}

func (f *fakeWalletRepository) GetByUserID(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error) {
	if f.getByUserIDFn != nil {
		return f.getByUserIDFn(ctx, userID)
	}
	return nil, appErrors.ErrWalletNotFound
}

func (f *fakeWalletRepository) UpdateSettings(ctx context.Context, w *wallet.Wallet) error {
	if f.updateSettingsFn != nil {
		return f.updateSettingsFn(ctx, w)
	}
	return nil
}

func (f *fakeWalletRepository) Deposit(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*wallet.Wallet, error) {
	if f.depositFn != nil {
		return f.depositFn(ctx, userID, amount)
	}
	return &wallet.Wallet{UserId: userID, Balance: amount}, nil
}

func walletWithBalance(balance string) *fakeWalletRepository {
	return &fakeWalletRepository{
		getByUserIDFn: func(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error) {
			return &wallet.Wallet{Id: ulid.Make(), UserId: userID, Balance: decimal.RequireFromString(balance)}, nil
		},
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s", code)
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}

func TestGuardEnsureSufficientFunds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := ulid.Make()

	tests := []struct {
		name     string
		repo     *fakeWalletRepository
		required string
		wantCode string
	}{
		{name: "exact balance covers", repo: walletWithBalance("100.00"), required: "100"},
		{name: "short by a cent", repo: walletWithBalance("99.99"), required: "100", wantCode: appErrors.ErrInsufficientFunds.Code},
		{name: "zero required", repo: walletWithBalance("10"), required: "0", wantCode: "VALIDATION_ERROR"},
		{name: "missing wallet", repo: &fakeWalletRepository{}, required: "1", wantCode: appErrors.ErrWalletNotFound.Code},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			guard := wallet.NewGuard(tt.repo)
			w, err := guard.EnsureSufficientFunds(ctx, userID, decimal.RequireFromString(tt.required))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if w == nil || w.UserId != userID {
					t.Fatalf("expected wallet of %s, got %+v", userID, w)
				}
				return
			}
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestGuardInsufficientFundsCarriesDetails(t *testing.T) {
	guard := wallet.NewGuard(walletWithBalance("5"))

	_, err := guard.EnsureSufficientFunds(context.Background(), ulid.Make(), decimal.NewFromInt(8))

	appErr, _ := appErrors.AsAppError(err)
	if appErr == nil || appErr.Details["balance"] != "5" || appErr.Details["required"] != "8" {
		t.Fatalf("unexpected details: %+v", appErr)
	}
}

func TestServiceEnsureWalletCreatesOnce(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	var created *wallet.Wallet
	repo := &fakeWalletRepository{
		createFn: func(ctx context.Context, w *wallet.Wallet) error {
			created = w
			return nil
		},
	}
	svc := wallet.NewService(repo)

	w, err := svc.EnsureWallet(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created != w || !w.Balance.IsZero() {
		t.Fatalf("expected new zero wallet, got %+v", w)
	}

	created = nil
	svc = wallet.NewService(walletWithBalance("10"))
	if _, err := svc.EnsureWallet(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != nil {
		t.Fatalf("existing wallet must not be recreated")
	}
}

func TestServiceUpdateSettings(t *testing.T) {
	ctx := context.Background()
	repo := walletWithBalance("10")
	var saved *wallet.Wallet
	repo.updateSettingsFn = func(ctx context.Context, w *wallet.Wallet) error {
		saved = w
		return nil
	}
	svc := wallet.NewService(repo)

	negative := decimal.NewFromInt(-1)
	_, err := svc.UpdateSettings(ctx, ulid.Make(), wallet.SettingsRequest{Budget: &negative})
	assertCode(t, err, "VALIDATION_ERROR")

	budget := decimal.NewFromInt(300)
	rounding := true
	w, err := svc.UpdateSettings(ctx, ulid.Make(), wallet.SettingsRequest{Budget: &budget, Rounding: &rounding})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != w || w.Budget == nil || !w.Budget.Equal(budget) || !w.Rounding {
		t.Fatalf("unexpected wallet: %+v", w)
	}
	if !w.Balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("settings must not touch balance, got %s", w.Balance)
	}
}

func TestServiceDepositRejectsNonPositive(t *testing.T) {
	svc := wallet.NewService(&fakeWalletRepository{
		depositFn: func(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*wallet.Wallet, error) {
			t.Fatalf("repository must not be called")
			return nil, nil
		},
	})

	_, err := svc.Deposit(context.Background(), ulid.Make(), decimal.Zero)
	assertCode(t, err, "VALIDATION_ERROR")
}

func TestServiceDepositRejectsAmountsOutsideCents(t *testing.T) {
	svc := wallet.NewService(&fakeWalletRepository{
		depositFn: func(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*wallet.Wallet, error) {
			t.Fatalf("repository must not be called")
			return nil, nil
		},
	})

	for _, amount := range []string{"0.005", "10.001", "10000000000000"} {
		_, err := svc.Deposit(context.Background(), ulid.Make(), decimal.RequireFromString(amount))
		assertCode(t, err, "VALIDATION_ERROR")
	}
}
