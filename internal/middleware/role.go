package middleware

import (
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	c.AbortWithStatusJSON(err.StatusCode, payload)
}

// RequireCompany barra usuários sem empresa vinculada.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextCompanyID); !ok {
			abortWithError(c, appErrors.ErrCompanyRequired)
			return
		}
		c.Next()
	}
}

// RequireCompanyRole libera a rota apenas para os papéis informados.
func RequireCompanyRole(roles ...user.CompanyRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ContextCompanyRole)
		role, _ := value.(user.CompanyRole)
		if !ok || role == "" {
			abortWithError(c, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
				"reason": "company_role_required",
			}))
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWithError(c, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"reason": "company_role_not_allowed",
			"role":   string(role),
		}))
	}
}
