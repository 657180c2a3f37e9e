package routes

import (
	"fmt"
	"net/http"

	"Tenure/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	port := "3000"
	if h.Config != nil && h.Config.Server.Port != "" {
		port = h.Config.Server.Port
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, contracts.HealthResponse{
		Message: fmt.Sprintf("Running on port %s", port),
		Info: contracts.HealthInfo{
			URL: fmt.Sprintf("%s://%s", scheme, c.Request.Host),
		},
	})
}

func (h *Handler) QueueStats(c *gin.Context) {
	if h.Queue == nil {
		c.JSON(http.StatusServiceUnavailable, contracts.MessageResponse{Message: "Fila não configurada"})
		return
	}
	c.JSON(http.StatusOK, h.Queue.Stats(c.Request.Context()))
}
