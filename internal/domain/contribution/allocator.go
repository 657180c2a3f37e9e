package contribution

import (
	"sort"

	"Tenure/internal/domain/goal"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Allocation struct {
	GoalID        ulid.ULID       `json:"goalId"`
	UserID        ulid.ULID       `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	ProgressAfter decimal.Decimal `json:"progressAfter"`
}

type AllocationResult struct {
	Allocations      []Allocation
	TotalApplied     decimal.Decimal
	RemainingBalance decimal.Decimal
}

// Allocate distribui available pelas metas em cascata, da menor prioridade
// para a maior. Metas completas são puladas sem consumir saldo e alocações
// de valor zero nunca são emitidas. Não altera as metas recebidas.
func Allocate(goals []*goal.Goal, available decimal.Decimal) AllocationResult {
	result := AllocationResult{
		Allocations:      []Allocation{},
		TotalApplied:     decimal.Zero,
		RemainingBalance: pkg.NonNegative(available),
	}

	ordered := make([]*goal.Goal, 0, len(goals))
	for _, g := range goals {
		if g != nil {
			ordered = append(ordered, g)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, g := range ordered {
		if !result.RemainingBalance.IsPositive() {
			break
		}

		capacity := g.Capacity()
		if !capacity.IsPositive() {
			continue
		}

		applied := pkg.MinDecimal(result.RemainingBalance, capacity)
		result.Allocations = append(result.Allocations, Allocation{
			GoalID:        g.Id,
			UserID:        g.UserId,
			Amount:        applied,
			ProgressAfter: g.Progress.Add(applied),
		})
		result.TotalApplied = result.TotalApplied.Add(applied)
		result.RemainingBalance = result.RemainingBalance.Sub(applied)
	}

	return result
}
