package infrastructure

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	"Tenure/internal/logger"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Set(zerolog.Nop())

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tenure_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, RunMigrations(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, db *gorm.DB, companyID *ulid.ULID, role user.CompanyRole, name string) *user.User {
	t.Helper()
	now := time.Now()
	u := &user.User{
		Id:          pkg.GenerateULIDObject(),
		Name:        name,
		Email:       name + "@tenure.test",
		Password:    "hashed",
		CompanyId:   companyID,
		CompanyRole: role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, (&UserRepository{DB: db}).Create(context.Background(), u))
	return u
}

func seedWallet(t *testing.T, db *gorm.DB, userID ulid.ULID, balance string) *wallet.Wallet {
	t.Helper()
	now := time.Now()
	w := &wallet.Wallet{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Balance:   dec(balance),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, (&WalletRepository{DB: db}).Create(context.Background(), w))
	return w
}

func seedGoal(t *testing.T, db *gorm.DB, userID ulid.ULID, title, target, progress string, priority int) *goal.Goal {
	t.Helper()
	now := time.Now()
	g := &goal.Goal{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Title:     title,
		Target:    dec(target),
		Progress:  dec(progress),
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	n, err := (&GoalRepository{DB: db}).CreateMany(context.Background(), []*goal.Goal{g})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	return g
}
