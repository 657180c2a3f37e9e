package contracts

import "github.com/shopspring/decimal"

type WalletSettingsRequest struct {
	Budget   *decimal.Decimal `json:"budget"`
	Rounding *bool            `json:"rounding"`
}

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
