package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/transaction"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id        string          `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	GoalId    *string         `gorm:"type:varchar(26);index;column:goal_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	Method    string          `gorm:"type:varchar(15);not null;column:method"`
	Type      string          `gorm:"type:varchar(10);not null;column:type"`
	CreatedAt time.Time       `gorm:"not null;column:created_at"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	gid, err := pkg.ParseULIDPtr(tdb.GoalId)
	if err != nil {
		return nil, err
	}
	return &transaction.Transaction{
		Id:        id,
		UserId:    uid,
		GoalId:    gid,
		Amount:    tdb.Amount,
		Method:    transaction.Method(tdb.Method),
		Type:      transaction.Type(tdb.Type),
		CreatedAt: tdb.CreatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	return &transactionDB{
		Id:        t.Id.String(),
		UserId:    t.UserId.String(),
		GoalId:    pkg.ULIDPtrToString(t.GoalId),
		Amount:    t.Amount,
		Method:    string(t.Method),
		Type:      string(t.Type),
		CreatedAt: t.CreatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	if err := r.DB.WithContext(ctx).Create(toDBTransaction(t)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		First(&tdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Transação").WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	out, err := toDomainTransaction(&tdb)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return out, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Model(&transactionDB{}).Where("user_id = ?", userID.String())
	out, total, err := pkg.Paginate[transaction.Transaction, transactionDB](query, pagination, "created_at DESC, id DESC", toDomainTransaction)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return out, total, nil
}
