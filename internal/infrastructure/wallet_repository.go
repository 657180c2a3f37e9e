package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/transaction"
	"Tenure/internal/domain/wallet"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository struct {
	DB *gorm.DB
}

var _ wallet.Repository = (*WalletRepository)(nil)

type walletDB struct {
	Id        string              `gorm:"type:varchar(26);primaryKey"`
	UserId    string              `gorm:"type:varchar(26);uniqueIndex:idx_wallets_user;not null"`
	Balance   decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0"`
	Budget    decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	Rounding  bool                `gorm:"not null;default:false"`
	CreatedAt time.Time           `gorm:"not null"`
	UpdatedAt time.Time           `gorm:"not null"`
}

func (walletDB) TableName() string {
	return "wallets"
}

func toDomainWallet(wdb *walletDB) (*wallet.Wallet, error) {
	id, err := pkg.ParseULID(wdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(wdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	w := &wallet.Wallet{
		Id:        id,
		UserId:    uid,
		Balance:   wdb.Balance,
		Rounding:  wdb.Rounding,
		CreatedAt: wdb.CreatedAt,
		UpdatedAt: wdb.UpdatedAt,
	}
	if wdb.Budget.Valid {
		budget := wdb.Budget.Decimal
		w.Budget = &budget
	}
	return w, nil
}

func toDBWallet(w *wallet.Wallet) *walletDB {
	wdb := &walletDB{
		Id:        w.Id.String(),
		UserId:    w.UserId.String(),
		Balance:   w.Balance,
		Rounding:  w.Rounding,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.Budget != nil {
		wdb.Budget = decimal.NewNullDecimal(*w.Budget)
	}
	return wdb
}

func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	if err := r.DB.WithContext(ctx).Create(toDBWallet(w)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErrors.NewConflictError("Carteira").WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error) {
	return findWallet(r.DB.WithContext(ctx), userID)
}

func (r *WalletRepository) UpdateSettings(ctx context.Context, w *wallet.Wallet) error {
	wdb := toDBWallet(w)
	result := r.DB.WithContext(ctx).Model(&walletDB{}).
		Where("user_id = ?", wdb.UserId).
		Updates(map[string]interface{}{
			"budget":     wdb.Budget,
			"rounding":   wdb.Rounding,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrWalletNotFound
	}
	return nil
}

func (r *WalletRepository) Deposit(ctx context.Context, userID ulid.ULID, amount decimal.Decimal) (*wallet.Wallet, error) {
	var out *wallet.Wallet
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&walletDB{}).
			Where("user_id = ?", userID.String()).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", amount),
				"updated_at": now,
			})
		if result.Error != nil {
			return appErrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrWalletNotFound
		}

		entry := &transactionDB{
			Id:        pkg.GenerateULID(),
			UserId:    userID.String(),
			Amount:    amount,
			Method:    string(transaction.MethodDeposit),
			Type:      string(transaction.TypeCredit),
			CreatedAt: now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}

		w, err := findWallet(tx, userID)
		if err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findWallet(db *gorm.DB, userID ulid.ULID) (*wallet.Wallet, error) {
	var wdb walletDB
	if err := db.Where("user_id = ?", userID.String()).First(&wdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrWalletNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainWallet(&wdb)
}

// lockWallet relê a carteira com FOR UPDATE quando o banco suporta.
func lockWallet(tx *gorm.DB, userID ulid.ULID) (*wallet.Wallet, error) {
	if supportsRowLocking(tx) {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return findWallet(tx, userID)
}
