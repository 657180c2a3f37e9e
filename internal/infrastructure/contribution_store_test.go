package infrastructure

import (
	"context"
	"errors"
	"testing"

	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/transaction"
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type contributionFixture struct {
	db       *gorm.DB
	store    *ContributionStore
	owner    *user.User
	employee *user.User
}

func newContributionFixture(t *testing.T, ownerBalance string) *contributionFixture {
	t.Helper()
	db := newTestDB(t)
	companyID := pkg.GenerateULIDObject()
	owner := seedUser(t, db, &companyID, user.RoleOwner, "owner")
	employee := seedUser(t, db, &companyID, user.RoleEmployee, "employee")
	seedWallet(t, db, owner.Id, ownerBalance)
	return &contributionFixture{db: db, store: &ContributionStore{DB: db}, owner: owner, employee: employee}
}

func giftPlan(employeeID, goalID, ownerID ulid.ULID, amount string) *contribution.Plan {
	plan := &contribution.Plan{}
	plan.Add(
		contribution.GoalProgressUpdate{GoalID: goalID, UserID: employeeID, Amount: dec(amount)},
		contribution.TransactionCreate{
			ID:     pkg.GenerateULIDObject(),
			UserID: employeeID,
			GoalID: goalID,
			Amount: dec(amount),
			Method: transaction.MethodGift,
			Type:   transaction.TypeCredit,
		},
		contribution.WalletDebit{UserID: ownerID, Amount: dec(amount)},
	)
	return plan
}

func (f *contributionFixture) balance(t *testing.T) string {
	t.Helper()
	w, err := (&WalletRepository{DB: f.db}).GetByUserID(context.Background(), f.owner.Id)
	require.NoError(t, err)
	return w.Balance.String()
}

func (f *contributionFixture) progress(t *testing.T, goalID ulid.ULID) string {
	t.Helper()
	g, err := (&GoalRepository{DB: f.db}).GetByID(context.Background(), goalID)
	require.NoError(t, err)
	return g.Progress.String()
}

func (f *contributionFixture) ledgerCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&transactionDB{}).Where("user_id = ?", f.employee.Id.String()).Count(&n).Error)
	return n
}

func TestContributionStore_ApplyCommitsEverything(t *testing.T) {
	f := newContributionFixture(t, "100")
	g := seedGoal(t, f.db, f.employee.Id, "Viagem", "100", "70", 1)

	result, err := f.store.Apply(context.Background(), giftPlan(f.employee.Id, g.Id, f.owner.Id, "30"))
	require.NoError(t, err)

	assert.True(t, result.WalletBalance.Equal(dec("70")), "saldo: %s", result.WalletBalance)
	require.Contains(t, result.Goals, g.Id)
	assert.True(t, result.Goals[g.Id].Progress.Equal(dec("100")))
	assert.True(t, result.Goals[g.Id].IsComplete())

	assert.Equal(t, "70", f.balance(t))
	assert.Equal(t, "100", f.progress(t, g.Id))
	assert.EqualValues(t, 1, f.ledgerCount(t))
}

func TestContributionStore_GoalCapacityMissRollsBack(t *testing.T) {
	f := newContributionFixture(t, "100")
	g := seedGoal(t, f.db, f.employee.Id, "Carro", "100", "90", 1)

	_, err := f.store.Apply(context.Background(), giftPlan(f.employee.Id, g.Id, f.owner.Id, "30"))
	require.Error(t, err)

	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "GOAL_CAPACITY_EXCEEDED", appErr.Code)

	assert.Equal(t, "100", f.balance(t))
	assert.Equal(t, "90", f.progress(t, g.Id))
	assert.EqualValues(t, 0, f.ledgerCount(t))
}

func TestContributionStore_InsufficientBalanceAtCommit(t *testing.T) {
	f := newContributionFixture(t, "20")
	g := seedGoal(t, f.db, f.employee.Id, "Casa", "500", "0", 1)

	_, err := f.store.Apply(context.Background(), giftPlan(f.employee.Id, g.Id, f.owner.Id, "30"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInsufficientFunds))

	assert.Equal(t, "20", f.balance(t))
	assert.Equal(t, "0", f.progress(t, g.Id))
	assert.EqualValues(t, 0, f.ledgerCount(t))
}

func TestContributionStore_MissingWallet(t *testing.T) {
	db := newTestDB(t)
	companyID := pkg.GenerateULIDObject()
	owner := seedUser(t, db, &companyID, user.RoleOwner, "owner")
	employee := seedUser(t, db, &companyID, user.RoleEmployee, "employee")
	g := seedGoal(t, db, employee.Id, "Curso", "100", "0", 1)

	_, err := (&ContributionStore{DB: db}).Apply(context.Background(), giftPlan(employee.Id, g.Id, owner.Id, "10"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrWalletNotFound))

	got, err := (&GoalRepository{DB: db}).GetByID(context.Background(), g.Id)
	require.NoError(t, err)
	assert.True(t, got.Progress.IsZero())
}

func TestContributionStore_LedgerFailureRollsBack(t *testing.T) {
	f := newContributionFixture(t, "100")
	g := seedGoal(t, f.db, f.employee.Id, "Reserva", "100", "0", 1)

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_transactions", func(tx *gorm.DB) {
		if tx.Statement.Table == "transactions" {
			_ = tx.AddError(errors.New("falha simulada no extrato"))
		}
	}))

	_, err := f.store.Apply(context.Background(), giftPlan(f.employee.Id, g.Id, f.owner.Id, "40"))
	require.Error(t, err)

	assert.Equal(t, "100", f.balance(t))
	assert.Equal(t, "0", f.progress(t, g.Id))
	assert.EqualValues(t, 0, f.ledgerCount(t))
}

func TestContributionStore_EmptyPlan(t *testing.T) {
	db := newTestDB(t)

	result, err := (&ContributionStore{DB: db}).Apply(context.Background(), &contribution.Plan{})
	require.NoError(t, err)
	assert.Empty(t, result.Goals)
	assert.True(t, result.WalletBalance.IsZero())
}
