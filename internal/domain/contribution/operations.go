package contribution

import (
	"context"

	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Operation é uma mutação pendente do lote. O conjunto é fechado.
type Operation interface {
	operation()
}

// GoalProgressUpdate soma Amount ao progresso da meta, sem ultrapassar o alvo.
type GoalProgressUpdate struct {
	GoalID ulid.ULID
	UserID ulid.ULID
	Amount decimal.Decimal
}

// TransactionCreate grava um crédito no extrato do colaborador.
type TransactionCreate struct {
	ID     ulid.ULID
	UserID ulid.ULID
	GoalID ulid.ULID
	Amount decimal.Decimal
	Method transaction.Method
	Type   transaction.Type
}

// WalletDebit retira Amount da carteira, que não pode ficar negativa.
type WalletDebit struct {
	UserID ulid.ULID
	Amount decimal.Decimal
}

func (GoalProgressUpdate) operation() {}
func (TransactionCreate) operation()  {}
func (WalletDebit) operation()        {}

// Plan é o lote aplicado de forma atômica: tudo ou nada.
type Plan struct {
	Operations []Operation
}

func (p *Plan) Add(ops ...Operation) {
	p.Operations = append(p.Operations, ops...)
}

func (p *Plan) Empty() bool {
	return len(p.Operations) == 0
}

// addAllocation registra o par meta + lançamento de uma alocação e devolve o id do lançamento.
func (p *Plan) addAllocation(a Allocation, newID func() ulid.ULID) ulid.ULID {
	txID := newID()
	p.Add(
		GoalProgressUpdate{GoalID: a.GoalID, UserID: a.UserID, Amount: a.Amount},
		TransactionCreate{
			ID:     txID,
			UserID: a.UserID,
			GoalID: a.GoalID,
			Amount: a.Amount,
			Method: transaction.MethodGift,
			Type:   transaction.TypeCredit,
		},
	)
	return txID
}

type ApplyResult struct {
	WalletBalance decimal.Decimal
	Goals         map[ulid.ULID]*goal.Goal
}

// Applier executa um Plan numa única transação de banco.
type Applier interface {
	Apply(ctx context.Context, plan *Plan) (*ApplyResult, error)
}
