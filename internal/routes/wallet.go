package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/domain/wallet"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWallet(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	w, err := h.WalletService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *Handler) UpdateWallet(c *gin.Context) {
	var body contracts.WalletSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	w, err := h.WalletService.UpdateSettings(c.Request.Context(), userID, wallet.SettingsRequest{
		Budget:   body.Budget,
		Rounding: body.Rounding,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *Handler) Deposit(c *gin.Context) {
	var body contracts.DepositRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	w, err := h.WalletService.Deposit(c.Request.Context(), userID, body.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}
