package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ContributionStore aplica o lote de contribuições numa única transação.
// Saldo e capacidade das metas são revalidados no próprio UPDATE.
type ContributionStore struct {
	DB *gorm.DB
}

var _ contribution.Applier = (*ContributionStore)(nil)

var errGoalCapacityExceeded = appErrors.NewAppError("GOAL_CAPACITY_EXCEEDED", "Meta sem capacidade para o valor", http.StatusConflict)

func (s *ContributionStore) Apply(ctx context.Context, plan *contribution.Plan) (*contribution.ApplyResult, error) {
	result := &contribution.ApplyResult{Goals: make(map[ulid.ULID]*goal.Goal)}
	if plan == nil || plan.Empty() {
		return result, nil
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Trava as carteiras antes de tocar nas metas para manter a mesma ordem de locks.
		debited := make([]ulid.ULID, 0, 1)
		for _, op := range plan.Operations {
			if d, ok := op.(contribution.WalletDebit); ok {
				if _, err := lockWallet(tx, d.UserID); err != nil {
					return err
				}
				debited = append(debited, d.UserID)
			}
		}

		now := time.Now()
		touched := make([]string, 0, len(plan.Operations))
		for _, op := range plan.Operations {
			switch o := op.(type) {
			case contribution.GoalProgressUpdate:
				if err := applyGoalProgress(tx, o, now); err != nil {
					return err
				}
				touched = append(touched, o.GoalID.String())
			case contribution.TransactionCreate:
				goalID := o.GoalID
				row := &transactionDB{
					Id:        o.ID.String(),
					UserId:    o.UserID.String(),
					GoalId:    pkg.ULIDPtrToString(&goalID),
					Amount:    o.Amount,
					Method:    string(o.Method),
					Type:      string(o.Type),
					CreatedAt: now,
				}
				if err := tx.Create(row).Error; err != nil {
					return appErrors.NewDatabaseError(err)
				}
			case contribution.WalletDebit:
				if err := applyWalletDebit(tx, o, now); err != nil {
					return err
				}
			default:
				return fmt.Errorf("operação de contribuição desconhecida: %T", op)
			}
		}

		if len(touched) > 0 {
			var rows []goalDB
			if err := tx.Where("id IN ?", touched).Find(&rows).Error; err != nil {
				return appErrors.NewDatabaseError(err)
			}
			for i := range rows {
				g, err := toDomainGoal(&rows[i])
				if err != nil {
					return err
				}
				result.Goals[g.Id] = g
			}
		}

		if len(debited) > 0 {
			w, err := findWallet(tx, debited[len(debited)-1])
			if err != nil {
				return err
			}
			result.WalletBalance = w.Balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyGoalProgress(tx *gorm.DB, op contribution.GoalProgressUpdate, now time.Time) error {
	res := tx.Model(&goalDB{}).
		Where("id = ? AND user_id = ? AND progress + ? <= goal", op.GoalID.String(), op.UserID.String(), op.Amount).
		Updates(map[string]interface{}{
			"progress":   gorm.Expr("progress + ?", op.Amount),
			"updated_at": now,
		})
	if res.Error != nil {
		return appErrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errGoalCapacityExceeded.WithDetails(map[string]interface{}{
			"goalId": op.GoalID.String(),
			"amount": op.Amount.String(),
		})
	}
	return nil
}

func applyWalletDebit(tx *gorm.DB, op contribution.WalletDebit, now time.Time) error {
	res := tx.Model(&walletDB{}).
		Where("user_id = ? AND balance >= ?", op.UserID.String(), op.Amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", op.Amount),
			"updated_at": now,
		})
	if res.Error != nil {
		return appErrors.NewDatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return appErrors.ErrInsufficientFunds.WithDetails(map[string]interface{}{
			"userId":   op.UserID.String(),
			"required": op.Amount.String(),
		})
	}
	return nil
}
