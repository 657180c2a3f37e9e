package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodGift     Method = "Gift"
	MethodTransfer Method = "Transfer"
	MethodDeposit  Method = "Deposit"
)

type Type string

const (
	TypeCredit Type = "Credit"
	TypeDebit  Type = "Debit"
)

// Transaction é um lançamento imutável do extrato.
type Transaction struct {
	Id        ulid.ULID       `json:"id"`
	UserId    ulid.ULID       `json:"userId"`
	GoalId    *ulid.ULID      `json:"goalId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Method    Method          `json:"method"`
	Type      Type            `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}
