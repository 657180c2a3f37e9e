package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/domain/auth"
	"Tenure/internal/domain/user"
	"Tenure/internal/middleware"
	"Tenure/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Registration(c *gin.Context) {
	var body contracts.RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	entity := &user.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}
	pair, err := h.AuthService.Register(c.Request.Context(), entity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookie(c, pair)
	c.JSON(http.StatusCreated, contracts.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         contracts.NewUserResponse(entity),
	})
}

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	entity, pair, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookie(c, pair)
	c.JSON(http.StatusOK, contracts.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         contracts.NewUserResponse(entity),
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var body contracts.RefreshTokenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	pair, err := h.AuthService.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookie(c, pair)
	c.JSON(http.StatusOK, contracts.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.AuthService.Logout(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookies(), true)
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Logout realizado com sucesso"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var body contracts.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	if err := h.AuthService.ForgotPassword(c.Request.Context(), body.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Se o email estiver cadastrado, enviaremos um link de redefinição"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var body contracts.ResetPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := pkg.ParseULID(body.UserId)
	if err != nil {
		h.respondError(c, appErrorsInvalidField("userId"))
		return
	}

	if err := h.AuthService.ResetPassword(c.Request.Context(), userID, body.ResetPasswordToken, body.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Senha redefinida com sucesso"})
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var body contracts.GoogleAuthRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	entity, pair, err := h.AuthService.GoogleLogin(c.Request.Context(), body.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookie(c, pair)
	c.JSON(http.StatusOK, contracts.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         contracts.NewUserResponse(entity),
	})
}

func (h *Handler) setTokenCookie(c *gin.Context, pair *auth.TokenPair) {
	maxAge := 24 * 60 * 60
	if h.Config != nil && h.Config.JWT.AccessTTL > 0 {
		maxAge = int(h.Config.JWT.AccessTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, pair.AccessToken, maxAge, "/", "", h.secureCookies(), true)
}

func (h *Handler) secureCookies() bool {
	return h.Config != nil && h.Config.IsProduction()
}
