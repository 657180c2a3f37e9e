package routes

import (
	"net/http"

	"Tenure/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) BroadcastNotification(c *gin.Context) {
	var body contracts.NotificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	senderID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.NotificationService.Broadcast(c.Request.Context(), senderID, body.Title, body.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, contracts.NotificationResponse{
		Message:    "Notificação enfileirada",
		Recipients: count,
	})
}

func (h *Handler) SendNotification(c *gin.Context) {
	var body contracts.SingleNotificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	senderID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.NotificationService.SendToEmployee(c.Request.Context(), senderID, body.Name, body.Title, body.Body); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, contracts.NotificationResponse{
		Message:    "Notificação enfileirada",
		Recipients: 1,
	})
}
