package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/goal"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository struct {
	DB *gorm.DB
}

var _ goal.Repository = (*GoalRepository)(nil)

type goalDB struct {
	Id         string          `gorm:"type:varchar(26);primaryKey"`
	UserId     string          `gorm:"type:varchar(26);not null;uniqueIndex:idx_saving_goals_user_title,priority:1"`
	Title      string          `gorm:"type:varchar(150);not null;uniqueIndex:idx_saving_goals_user_title,priority:2"`
	Target     decimal.Decimal `gorm:"column:goal;type:decimal(15,2);not null"`
	Progress   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Priority   int             `gorm:"not null;default:0;index"`
	Percentage int             `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

func (goalDB) TableName() string {
	return "saving_goals"
}

func toDomainGoal(gdb *goalDB) (*goal.Goal, error) {
	id, err := pkg.ParseULID(gdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(gdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &goal.Goal{
		Id:         id,
		UserId:     uid,
		Title:      gdb.Title,
		Target:     gdb.Target,
		Progress:   gdb.Progress,
		Priority:   gdb.Priority,
		Percentage: gdb.Percentage,
		CreatedAt:  gdb.CreatedAt,
		UpdatedAt:  gdb.UpdatedAt,
	}, nil
}

func toDBGoal(g *goal.Goal) *goalDB {
	return &goalDB{
		Id:         g.Id.String(),
		UserId:     g.UserId.String(),
		Title:      g.Title,
		Target:     g.Target,
		Progress:   g.Progress,
		Priority:   g.Priority,
		Percentage: g.Percentage,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func toDomainGoals(rows []goalDB) ([]*goal.Goal, error) {
	out := make([]*goal.Goal, 0, len(rows))
	for i := range rows {
		g, err := toDomainGoal(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *GoalRepository) CreateMany(ctx context.Context, goals []*goal.Goal) (int64, error) {
	if len(goals) == 0 {
		return 0, nil
	}
	rows := make([]*goalDB, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, toDBGoal(g))
	}
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if result.Error != nil {
		return 0, appErrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	result := r.DB.WithContext(ctx).Model(&goalDB{}).
		Where("id = ? AND user_id = ?", g.Id.String(), g.UserId.String()).
		Updates(map[string]interface{}{
			"title":      g.Title,
			"goal":       g.Target,
			"priority":   g.Priority,
			"percentage": g.Percentage,
			"updated_at": g.UpdatedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return appErrors.NewConflictError("Meta").WithError(result.Error)
		}
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Delete(&goalDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id ulid.ULID) (*goal.Goal, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *GoalRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*goal.Goal, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id.String(), userID.String())
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*goal.Goal, error) {
	var rows []goalDB
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoals(rows)
}

// ListByUsers devolve as metas de vários usuários, ordenadas por usuário e prioridade.
func (r *GoalRepository) ListByUsers(ctx context.Context, userIDs []ulid.ULID) ([]*goal.Goal, error) {
	if len(userIDs) == 0 {
		return []*goal.Goal{}, nil
	}
	raw := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		raw = append(raw, id.String())
	}
	var rows []goalDB
	if err := r.DB.WithContext(ctx).
		Where("user_id IN ?", raw).
		Order("user_id ASC").
		Order("priority ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoals(rows)
}

func (r *GoalRepository) first(ctx context.Context, query string, args ...interface{}) (*goal.Goal, error) {
	var gdb goalDB
	if err := r.DB.WithContext(ctx).Where(query, args...).First(&gdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&gdb)
}
