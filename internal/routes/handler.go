package routes

import (
	"Tenure/config"
	"Tenure/internal/domain/auth"
	"Tenure/internal/domain/company"
	"Tenure/internal/domain/contribution"
	"Tenure/internal/domain/goal"
	"Tenure/internal/domain/notification"
	"Tenure/internal/domain/transaction"
	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"
	"Tenure/internal/middleware"
	"Tenure/internal/pkg"
	"Tenure/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	Config              *config.Config
	UserService         *user.Service
	AuthService         *auth.Service
	CompanyService      *company.Service
	GoalService         *goal.Service
	WalletService       *wallet.Service
	TransactionService  *transaction.Service
	NotificationService *notification.Service
	ContributionEngine  *contribution.Engine
	Queue               *queue.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	raw, ok := userIDStr.(string)
	if !ok {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}
	userID, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parseULIDParam(c *gin.Context, name string) (ulid.ULID, error) {
	raw := c.Param(name)
	if raw == "" {
		return ulid.ULID{}, appErrors.NewValidationError(name, "é obrigatório")
	}
	id, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(name, "formato inválido")
	}
	return id, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = 10
	}

	return pkg.NormalizePagination(&pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	})
}

func appErrorsInvalidField(field string) error {
	return appErrors.NewValidationError(field, "formato inválido")
}

// bindError traduz falhas de binding/validação do gin para o formato de erro da API.
func (h *Handler) bindError(c *gin.Context, err error) {
	h.respondError(c, appErrors.ParseValidationErrors(err))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error()
	if appErr.StatusCode < 500 {
		event = logger.Warn()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
