package wallet

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	Id        ulid.ULID        `json:"id"`
	UserId    ulid.ULID        `json:"userId"`
	Balance   decimal.Decimal  `json:"balance"`
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	Rounding  bool             `json:"rounding"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (w *Wallet) Covers(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

type SettingsRequest struct {
	Budget   *decimal.Decimal
	Rounding *bool
}
