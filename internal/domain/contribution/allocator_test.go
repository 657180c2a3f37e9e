package contribution_test

import (
	"testing"

	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newGoal(userID ulid.ULID, target, progress string, priority int) *goal.Goal {
	return &goal.Goal{
		Id:       ulid.Make(),
		UserId:   userID,
		Title:    "meta",
		Target:   d(target),
		Progress: d(progress),
		Priority: priority,
	}
}

func TestAllocateCascadesByPriority(t *testing.T) {
	userID := ulid.Make()
	low := newGoal(userID, "100", "90", 1)
	mid := newGoal(userID, "50", "0", 2)
	high := newGoal(userID, "500", "0", 3)

	// Ordem de entrada propositalmente embaralhada.
	result := contribution.Allocate([]*goal.Goal{high, low, mid}, d("70"))

	require.Len(t, result.Allocations, 3)
	assert.Equal(t, low.Id, result.Allocations[0].GoalID)
	assert.True(t, result.Allocations[0].Amount.Equal(d("10")))
	assert.True(t, result.Allocations[0].ProgressAfter.Equal(d("100")))
	assert.Equal(t, mid.Id, result.Allocations[1].GoalID)
	assert.True(t, result.Allocations[1].Amount.Equal(d("50")))
	assert.Equal(t, high.Id, result.Allocations[2].GoalID)
	assert.True(t, result.Allocations[2].Amount.Equal(d("10")))
	assert.True(t, result.TotalApplied.Equal(d("70")))
	assert.True(t, result.RemainingBalance.IsZero())
}

func TestAllocateFundsLowestPriorityFirst(t *testing.T) {
	userID := ulid.Make()
	second := newGoal(userID, "50", "0", 2)
	first := newGoal(userID, "50", "0", 1)
	third := newGoal(userID, "50", "0", 3)

	result := contribution.Allocate([]*goal.Goal{second, first, third}, d("70"))

	want := []struct {
		goal   *goal.Goal
		amount string
	}{
		{first, "50"},
		{second, "20"},
	}
	require.Len(t, result.Allocations, len(want))
	for i, w := range want {
		assert.Equal(t, w.goal.Id, result.Allocations[i].GoalID)
		assert.True(t, result.Allocations[i].Amount.Equal(d(w.amount)), "alocação %d: %s", i, result.Allocations[i].Amount)
	}
	// a meta de prioridade 3 fica sem nada e não gera alocação zerada
	assert.True(t, result.TotalApplied.Equal(d("70")))
	assert.True(t, result.RemainingBalance.IsZero())
	assert.True(t, third.Progress.IsZero())
}

func TestAllocateSkipsCompletedGoals(t *testing.T) {
	userID := ulid.Make()
	done := newGoal(userID, "100", "100", 1)
	over := newGoal(userID, "100", "120", 2)
	open := newGoal(userID, "30", "0", 3)

	result := contribution.Allocate([]*goal.Goal{done, over, open}, d("50"))

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, open.Id, result.Allocations[0].GoalID)
	assert.True(t, result.TotalApplied.Equal(d("30")))
	assert.True(t, result.RemainingBalance.Equal(d("20")))
}

func TestAllocateStopsWhenBalanceRunsOut(t *testing.T) {
	userID := ulid.Make()
	first := newGoal(userID, "100", "0", 1)
	second := newGoal(userID, "100", "0", 2)

	result := contribution.Allocate([]*goal.Goal{first, second}, d("40.55"))

	require.Len(t, result.Allocations, 1)
	assert.True(t, result.Allocations[0].Amount.Equal(d("40.55")))
	assert.True(t, result.RemainingBalance.IsZero())
}

func TestAllocateEdgeCases(t *testing.T) {
	userID := ulid.Make()

	tests := []struct {
		name      string
		goals     []*goal.Goal
		available string
		wantTotal string
		wantLeft  string
	}{
		{name: "no goals", goals: nil, available: "10", wantTotal: "0", wantLeft: "10"},
		{name: "zero available", goals: []*goal.Goal{newGoal(userID, "10", "0", 1)}, available: "0", wantTotal: "0", wantLeft: "0"},
		{name: "negative available", goals: []*goal.Goal{newGoal(userID, "10", "0", 1)}, available: "-5", wantTotal: "0", wantLeft: "0"},
		{name: "nil goal ignored", goals: []*goal.Goal{nil, newGoal(userID, "10", "0", 1)}, available: "4", wantTotal: "4", wantLeft: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := contribution.Allocate(tt.goals, d(tt.available))
			assert.True(t, result.TotalApplied.Equal(d(tt.wantTotal)), "total %s", result.TotalApplied)
			assert.True(t, result.RemainingBalance.Equal(d(tt.wantLeft)), "remaining %s", result.RemainingBalance)
			for _, a := range result.Allocations {
				assert.True(t, a.Amount.IsPositive())
			}
		})
	}
}

func TestAllocateDoesNotMutateGoals(t *testing.T) {
	userID := ulid.Make()
	g := newGoal(userID, "100", "20", 1)

	contribution.Allocate([]*goal.Goal{g}, d("50"))

	assert.True(t, g.Progress.Equal(d("20")))
}

func TestAllocateKeepsInputOrderForEqualPriorities(t *testing.T) {
	userID := ulid.Make()
	a := newGoal(userID, "10", "0", 1)
	b := newGoal(userID, "10", "0", 1)

	result := contribution.Allocate([]*goal.Goal{a, b}, d("15"))

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, a.Id, result.Allocations[0].GoalID)
	assert.True(t, result.Allocations[1].Amount.Equal(d("5")))
}
