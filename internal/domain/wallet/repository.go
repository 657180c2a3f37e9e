package wallet

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, wallet *Wallet) error
	GetByUserID(ctx context.Context, userID ulid.ULID) (*Wallet, error)
	UpdateSettings(ctx context.Context, wallet *Wallet) error
	// Deposit credita o valor e grava o lançamento no extrato na mesma transação.
	Deposit(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*Wallet, error)
}
