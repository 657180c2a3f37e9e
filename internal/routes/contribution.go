package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/pkg"

	"github.com/gin-gonic/gin"
)

// Gift aplica o presente do empregador a uma meta específica de um colaborador.
func (h *Handler) Gift(c *gin.Context) {
	var body contracts.GiftRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	ownerID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	employeeID, err := pkg.ParseULID(body.EmployeeId)
	if err != nil {
		h.respondError(c, appErrorsInvalidField("employeeId"))
		return
	}
	goalID, err := pkg.ParseULID(body.GoalId)
	if err != nil {
		h.respondError(c, appErrorsInvalidField("goalId"))
		return
	}

	result, err := h.ContributionEngine.ContributeSingle(c.Request.Context(), ownerID, employeeID, goalID, body.GiftAmount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GiftAll distribui o presente para todos os colaboradores da empresa do empregador.
func (h *Handler) GiftAll(c *gin.Context) {
	var body contracts.GiftAllRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	ownerID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.ContributionEngine.ContributeAll(c.Request.Context(), ownerID, body.GiftAmount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
