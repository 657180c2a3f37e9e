package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/domain/company"
	"Tenure/internal/domain/user"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewUserResponse(entity))
}

// UpdateProfile atualiza os dados do usuário e, quando enviada, a empresa vinculada.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var body contracts.UserUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.UserService.UpdateProfile(ctx, userID, user.UpdateProfileRequest{
		Name:     body.User.Name,
		Email:    body.User.Email,
		Dob:      body.User.Dob,
		Location: body.User.Location,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := contracts.UserUpdateResponse{User: contracts.NewUserResponse(entity)}
	if body.Company != nil {
		updated, err := h.CompanyService.Update(ctx, userID, company.UpsertRequest{
			Name: body.Company.Name,
			Size: body.Company.Size,
		})
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Company = contracts.NewCompanyResponse(updated)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) UpdateUserPassword(c *gin.Context) {
	var body contracts.ChangePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.UserService.UpdatePassword(c.Request.Context(), userID, body.CurrentPassword, body.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Senha atualizada com sucesso"})
}

func (h *Handler) RegisterDeviceToken(c *gin.Context) {
	var body contracts.DeviceTokenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.UserService.RegisterDeviceToken(c.Request.Context(), userID, body.DeviceToken); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Token do dispositivo registrado"})
}
