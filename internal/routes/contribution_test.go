package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	"Tenure/internal/infrastructure"
	"Tenure/internal/logger"
	"Tenure/internal/middleware"
	"Tenure/internal/pkg"
	"Tenure/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type contributionAPI struct {
	router  *gin.Engine
	db      *gorm.DB
	wallets *infrastructure.WalletRepository
	owner   *user.User
	caller  *user.User
	alice   *user.User
	bob     *user.User
	goal    *goal.Goal
}

func newContributionAPI(t *testing.T, balance string) *contributionAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Set(zerolog.Nop())

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "routes_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, infrastructure.RunMigrations(db))

	api := &contributionAPI{
		db:      db,
		wallets: &infrastructure.WalletRepository{DB: db},
	}
	users := &infrastructure.UserRepository{DB: db}
	goals := &infrastructure.GoalRepository{DB: db}

	companyID := pkg.GenerateULIDObject()
	api.owner = createUser(t, users, &companyID, user.RoleOwner, "olga")
	api.alice = createUser(t, users, &companyID, user.RoleEmployee, "alice")
	api.bob = createUser(t, users, &companyID, user.RoleEmployee, "bob")
	api.caller = api.owner

	now := time.Now()
	require.NoError(t, api.wallets.Create(context.Background(), &wallet.Wallet{
		Id:        pkg.GenerateULIDObject(),
		UserId:    api.owner.Id,
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: now,
		UpdatedAt: now,
	}))

	api.goal = &goal.Goal{
		Id:        pkg.GenerateULIDObject(),
		UserId:    api.alice.Id,
		Title:     "Viagem",
		Target:    decimal.NewFromInt(50),
		Progress:  decimal.NewFromInt(20),
		Priority:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = goals.CreateMany(context.Background(), []*goal.Goal{api.goal})
	require.NoError(t, err)

	engine := contribution.NewEngine(users, goals, wallet.NewGuard(api.wallets), &infrastructure.ContributionStore{DB: db})
	h := &routes.Handler{ContributionEngine: engine}

	api.router = gin.New()
	group := api.router.Group("/api/contribution", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, api.caller.Id.String())
		c.Next()
	})
	group.POST("/gift", h.Gift)
	group.POST("/gift-all", h.GiftAll)
	return api
}

func createUser(t *testing.T, repo *infrastructure.UserRepository, companyID *ulid.ULID, role user.CompanyRole, name string) *user.User {
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
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func (api *contributionAPI) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func (api *contributionAPI) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	w, err := api.wallets.GetByUserID(context.Background(), api.owner.Id)
	require.NoError(t, err)
	return w.Balance
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Error
}

func TestGiftCapsAtGoalCapacity(t *testing.T) {
	api := newContributionAPI(t, "100")

	w := api.post(t, "/api/contribution/gift", map[string]any{
		"employeeId": api.alice.Id.String(),
		"goalId":     api.goal.Id.String(),
		"giftAmount": 50,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result contribution.SingleResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.AppliedAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.UpdatedWalletBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Goal.Progress.Equal(decimal.NewFromInt(50)))
	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(70)))

	// A meta concluída não aceita um segundo presente.
	w = api.post(t, "/api/contribution/gift", map[string]any{
		"employeeId": api.alice.Id.String(),
		"goalId":     api.goal.Id.String(),
		"giftAmount": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "GOAL_NOT_AVAILABLE", errorCode(t, w))
}

func TestGiftRejectsBadRequests(t *testing.T) {
	api := newContributionAPI(t, "100")

	tests := []struct {
		name string
		body map[string]any
		code string
	}{
		{
			name: "missing employee",
			body: map[string]any{"goalId": api.goal.Id.String(), "giftAmount": 10},
			code: "VALIDATION_ERROR",
		},
		{
			name: "malformed employee id",
			body: map[string]any{"employeeId": "abc", "goalId": api.goal.Id.String(), "giftAmount": 10},
			code: "VALIDATION_ERROR",
		},
		{
			name: "goal of another employee",
			body: map[string]any{"employeeId": api.bob.Id.String(), "goalId": api.goal.Id.String(), "giftAmount": 10},
			code: "GOAL_NOT_AVAILABLE",
		},
		{
			name: "more than the wallet holds",
			body: map[string]any{"employeeId": api.alice.Id.String(), "goalId": api.goal.Id.String(), "giftAmount": 500},
			code: "INSUFFICIENT_FUNDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.post(t, "/api/contribution/gift", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}

	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestGiftAllDistributesAcrossEmployees(t *testing.T) {
	api := newContributionAPI(t, "100")

	w := api.post(t, "/api/contribution/gift-all", map[string]any{"giftAmount": 40})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result contribution.AllResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, contribution.StatusSuccess, result.Status)
	assert.True(t, result.TotalAmountDistributed.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.WalletBalanceAfterContributions.Equal(decimal.NewFromInt(70)))
	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(70)))
}

func TestGiftAllRequiresFundsForEveryEmployee(t *testing.T) {
	api := newContributionAPI(t, "100")

	w := api.post(t, "/api/contribution/gift-all", map[string]any{"giftAmount": 60})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSUFFICIENT_FUNDS", errorCode(t, w))
	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestGiftFromEmployeeIsUnauthorized(t *testing.T) {
	api := newContributionAPI(t, "100")
	api.caller = api.alice

	for _, path := range []string{"/api/contribution/gift", "/api/contribution/gift-all"} {
		w := api.post(t, path, map[string]any{
			"employeeId": api.bob.Id.String(),
			"goalId":     api.goal.Id.String(),
			"giftAmount": 10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "CONTRIBUTION_UNAUTHORIZED", errorCode(t, w), path)
	}
	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestGiftRejectsAmountsOutsideCents(t *testing.T) {
	api := newContributionAPI(t, "100")

	for _, amount := range []string{"0.005", "0.001", "10000000000000"} {
		w := api.post(t, "/api/contribution/gift", map[string]any{
			"employeeId": api.alice.Id.String(),
			"goalId":     api.goal.Id.String(),
			"giftAmount": json.RawMessage(amount),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, amount)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w), amount)
	}
	assert.True(t, api.balance(t).Equal(decimal.NewFromInt(100)))
}
