package goal

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Goal struct {
	Id         ulid.ULID       `json:"id"`
	UserId     ulid.ULID       `json:"userId"`
	Title      string          `json:"title"`
	Target     decimal.Decimal `json:"goal"`
	Progress   decimal.Decimal `json:"progress"`
	Priority   int             `json:"priority"`
	Percentage int             `json:"percentage"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Capacity é quanto ainda cabe na meta; nunca negativo.
func (g *Goal) Capacity() decimal.Decimal {
	remaining := g.Target.Sub(g.Progress)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (g *Goal) IsComplete() bool {
	return g.Progress.GreaterThanOrEqual(g.Target)
}

type Progress struct {
	GoalId          ulid.ULID       `json:"goalId"`
	Title           string          `json:"title"`
	Target          decimal.Decimal `json:"goal"`
	Progress        decimal.Decimal `json:"progress"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentComplete decimal.Decimal `json:"percentComplete"`
	Completed       bool            `json:"completed"`
}

type CreateRequest struct {
	Title      string
	Target     decimal.Decimal
	Percentage int
	Priority   int
}

type UpdateRequest struct {
	Title      *string
	Target     *decimal.Decimal
	Percentage *int
	Priority   *int
}
