package contribution

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type UserReader interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
	FindEmployeesByCompany(ctx context.Context, companyID ulid.ULID) ([]*user.User, error)
}

type GoalReader interface {
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*goal.Goal, error)
	ListByUsers(ctx context.Context, userIDs []ulid.ULID) ([]*goal.Goal, error)
}

type FundsGuard interface {
	EnsureSufficientFunds(ctx context.Context, userID ulid.ULID, required decimal.Decimal) (*wallet.Wallet, error)
}

type SingleResult struct {
	EmployeeID           ulid.ULID       `json:"employeeId"`
	Goal                 *goal.Goal      `json:"goal"`
	AppliedAmount        decimal.Decimal `json:"appliedAmount"`
	TransactionID        ulid.ULID       `json:"transactionId"`
	UpdatedWalletBalance decimal.Decimal `json:"updatedWalletBalance"`
}

type AllResult struct {
	Status                          string          `json:"status"`
	Message                         string          `json:"message"`
	TotalAmountDistributed          decimal.Decimal `json:"totalAmountDistributed"`
	WalletBalanceAfterContributions decimal.Decimal `json:"walletBalanceAfterContributions"`
}

const (
	StatusSuccess = "success"

	ModeSingle = "single"
	ModeAll    = "all"
)

// Engine coordena autorização, solvência, alocação e aplicação atômica
// das contribuições de um empregador para as metas dos colaboradores.
type Engine struct {
	Users     UserReader
	Goals     GoalReader
	Guard     FundsGuard
	Applier   Applier
	Observers []Observer
	// ObserverTimeout limita cada observer; zero usa DefaultObserverTimeout.
	ObserverTimeout time.Duration

	newID func() ulid.ULID
	now   func() time.Time
}

func NewEngine(users UserReader, goals GoalReader, guard FundsGuard, applier Applier, observers ...Observer) *Engine {
	return &Engine{
		Users:     users,
		Goals:     goals,
		Guard:     guard,
		Applier:   applier,
		Observers: observers,
		newID:     pkg.GenerateULIDObject,
		now:       time.Now,
	}
}

func (e *Engine) ContributeSingle(ctx context.Context, ownerID, employeeID, goalID ulid.ULID, giftAmount decimal.Decimal) (*SingleResult, error) {
	if err := validateGift(giftAmount); err != nil {
		return nil, err
	}

	owner, err := e.authorizeOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := e.authorizeEmployee(ctx, owner, employeeID); err != nil {
		return nil, err
	}

	if _, err := e.Guard.EnsureSufficientFunds(ctx, ownerID, giftAmount); err != nil {
		return nil, err
	}

	target, err := e.Goals.GetByIDAndUser(ctx, goalID, employeeID)
	if err != nil {
		if isCode(err, appErrors.ErrGoalNotFound) {
			return nil, appErrors.ErrGoalNotAvailable.WithDetails(map[string]interface{}{
				"goalId":     goalID.String(),
				"employeeId": employeeID.String(),
				"reason":     "not_found",
			})
		}
		return nil, err
	}
	if target.IsComplete() {
		return nil, appErrors.ErrGoalNotAvailable.WithDetails(map[string]interface{}{
			"goalId":     goalID.String(),
			"employeeId": employeeID.String(),
			"reason":     "completed",
		})
	}

	allocation := Allocate([]*goal.Goal{target}, giftAmount)

	plan := &Plan{}
	var txID ulid.ULID
	for _, a := range allocation.Allocations {
		txID = plan.addAllocation(a, e.newID)
	}
	plan.Add(WalletDebit{UserID: ownerID, Amount: allocation.TotalApplied})

	applied, err := e.apply(ctx, owner, plan, allocation.TotalApplied)
	if err != nil {
		return nil, err
	}

	updated := applied.Goals[goalID]
	if updated == nil {
		updated = target
		updated.Progress = updated.Progress.Add(allocation.TotalApplied)
	}

	e.notify(ctx, CommittedEvent{
		Mode:          ModeSingle,
		OwnerID:       ownerID,
		CompanyID:     *owner.CompanyId,
		GiftAmount:    giftAmount,
		TotalApplied:  allocation.TotalApplied,
		WalletBalance: applied.WalletBalance,
		Allocations:   allocation.Allocations,
		OccurredAt:    e.now(),
	})

	return &SingleResult{
		EmployeeID:           employeeID,
		Goal:                 updated,
		AppliedAmount:        allocation.TotalApplied,
		TransactionID:        txID,
		UpdatedWalletBalance: applied.WalletBalance,
	}, nil
}

func (e *Engine) ContributeAll(ctx context.Context, ownerID ulid.ULID, giftAmount decimal.Decimal) (*AllResult, error) {
	if err := validateGift(giftAmount); err != nil {
		return nil, err
	}

	owner, err := e.authorizeOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	employees, err := e.Users.FindEmployeesByCompany(ctx, *owner.CompanyId)
	if err != nil {
		return nil, err
	}
	employees = onlyEmployees(employees, ownerID)
	if len(employees) == 0 {
		return nil, appErrors.ErrNoEmployeesFound.WithDetails(map[string]interface{}{
			"companyId": owner.CompanyId.String(),
		})
	}

	// Pior caso: cada colaborador absorve o presente inteiro.
	required := giftAmount.Mul(decimal.NewFromInt(int64(len(employees))))
	w, err := e.Guard.EnsureSufficientFunds(ctx, ownerID, required)
	if err != nil {
		return nil, err
	}

	ids := make([]ulid.ULID, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.Id)
	}
	goals, err := e.Goals.ListByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byUser := make(map[ulid.ULID][]*goal.Goal, len(employees))
	for _, g := range goals {
		byUser[g.UserId] = append(byUser[g.UserId], g)
	}

	plan := &Plan{}
	total := decimal.Zero
	allocations := make([]Allocation, 0)
	for _, emp := range employees {
		result := Allocate(byUser[emp.Id], giftAmount)
		for _, a := range result.Allocations {
			plan.addAllocation(a, e.newID)
		}
		allocations = append(allocations, result.Allocations...)
		total = total.Add(result.TotalApplied)
	}

	if !total.IsPositive() {
		logger.Info().
			Str("owner_id", ownerID.String()).
			Int("employees", len(employees)).
			Msg("Nenhuma meta com capacidade disponível; nada a aplicar")
		return &AllResult{
			Status:                          StatusSuccess,
			Message:                         "Nenhuma meta disponível para receber contribuições",
			TotalAmountDistributed:          decimal.Zero,
			WalletBalanceAfterContributions: w.Balance,
		}, nil
	}

	plan.Add(WalletDebit{UserID: ownerID, Amount: total})

	applied, err := e.apply(ctx, owner, plan, total)
	if err != nil {
		return nil, err
	}

	e.notify(ctx, CommittedEvent{
		Mode:          ModeAll,
		OwnerID:       ownerID,
		CompanyID:     *owner.CompanyId,
		GiftAmount:    giftAmount,
		TotalApplied:  total,
		WalletBalance: applied.WalletBalance,
		Allocations:   allocations,
		OccurredAt:    e.now(),
	})

	return &AllResult{
		Status:                          StatusSuccess,
		Message:                         "Contribuições distribuídas com sucesso",
		TotalAmountDistributed:          total,
		WalletBalanceAfterContributions: applied.WalletBalance,
	}, nil
}

func (e *Engine) authorizeOwner(ctx context.Context, ownerID ulid.ULID) (*user.User, error) {
	owner, err := e.Users.GetByID(ctx, ownerID)
	if err != nil {
		if isCode(err, appErrors.ErrUserNotFound) {
			return nil, unauthorized(ownerID, nil, "owner_not_found")
		}
		return nil, err
	}
	if !owner.IsOwner() {
		return nil, unauthorized(ownerID, nil, "owner_role_required")
	}
	return owner, nil
}

func (e *Engine) authorizeEmployee(ctx context.Context, owner *user.User, employeeID ulid.ULID) (*user.User, error) {
	employee, err := e.Users.GetByID(ctx, employeeID)
	if err != nil {
		if isCode(err, appErrors.ErrUserNotFound) {
			return nil, unauthorized(owner.Id, &employeeID, "employee_not_found")
		}
		return nil, err
	}
	if employee.CompanyRole != user.RoleEmployee {
		return nil, unauthorized(owner.Id, &employeeID, "employee_role_required")
	}
	if !owner.SameCompany(employee) {
		return nil, unauthorized(owner.Id, &employeeID, "different_company")
	}
	return employee, nil
}

func (e *Engine) apply(ctx context.Context, owner *user.User, plan *Plan, total decimal.Decimal) (*ApplyResult, error) {
	result, err := e.Applier.Apply(ctx, plan)
	if err == nil {
		return result, nil
	}

	// Rejeições de domínio detectadas no commit sobem como estão.
	if errors.Is(err, appErrors.ErrInsufficientFunds) || errors.Is(err, appErrors.ErrWalletNotFound) {
		return nil, err
	}

	logger.Error().
		Err(err).
		Str("owner_id", owner.Id.String()).
		Str("total", total.String()).
		Int("operations", len(plan.Operations)).
		Msg("Falha ao aplicar lote de contribuições")
	return nil, appErrors.ErrApplyFailed.WithError(err).WithDetails(map[string]interface{}{
		"ownerId": owner.Id.String(),
		"total":   total.String(),
	})
}

func validateGift(amount decimal.Decimal) error {
	return pkg.ValidateMoneyAmount("giftAmount", amount)
}

func onlyEmployees(users []*user.User, ownerID ulid.ULID) []*user.User {
	out := make([]*user.User, 0, len(users))
	for _, u := range users {
		if u != nil && u.Id != ownerID && u.CompanyRole == user.RoleEmployee {
			out = append(out, u)
		}
	}
	return out
}

func unauthorized(ownerID ulid.ULID, employeeID *ulid.ULID, reason string) *appErrors.AppError {
	details := map[string]interface{}{
		"ownerId": ownerID.String(),
		"reason":  reason,
	}
	if employeeID != nil {
		details["employeeId"] = employeeID.String()
	}
	return appErrors.ErrContributionUnauthorized.WithDetails(details)
}

func isCode(err error, target *appErrors.AppError) bool {
	appErr, ok := appErrors.AsAppError(err)
	return ok && appErr.Code == target.Code
}
