package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/domain/goal"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateGoals(c *gin.Context) {
	var body contracts.SavingGoalCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	requests := make([]goal.CreateRequest, 0, len(body.SavingGoals))
	for _, g := range body.SavingGoals {
		requests = append(requests, goal.CreateRequest{
			Title:      g.Title,
			Target:     g.Goal,
			Percentage: g.Percentage,
			Priority:   g.Priority,
		})
	}

	count, err := h.GoalService.CreateGoals(c.Request.Context(), userID, requests)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SavingGoalCreateResponse{
		Message: "Metas criadas com sucesso",
		Count:   count,
	})
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goals, err := h.GoalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *Handler) ListEmployeeGoals(c *gin.Context) {
	viewerID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	employeeID, err := h.parseULIDParam(c, "userId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	goals, err := h.GoalService.ListEmployeeGoals(c.Request.Context(), viewerID, employeeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *Handler) GetGoal(c *gin.Context) {
	goalID, err := h.parseULIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.GoalService.GetGoalByID(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	var body contracts.SavingGoalUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	goalID, err := h.parseULIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.GoalService.UpdateGoal(c.Request.Context(), goalID, userID, goal.UpdateRequest{
		Title:      body.Title,
		Target:     body.Goal,
		Percentage: body.Percentage,
		Priority:   body.Priority,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	goalID, err := h.parseULIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.GoalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Meta removida com sucesso"})
}

func (h *Handler) GetGoalProgress(c *gin.Context) {
	goalID, err := h.parseULIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	progress, err := h.GoalService.GetGoalProgress(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
