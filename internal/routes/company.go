package routes

import (
	"net/http"

	"Tenure/internal/contracts"
	"Tenure/internal/domain/company"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpsertCompany(c *gin.Context) {
	var body contracts.CompanyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CompanyService.Upsert(c.Request.Context(), userID, company.UpsertRequest{
		Name: body.Name,
		Size: body.Size,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewCompanyResponse(entity))
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	var body contracts.CompanyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CompanyService.Update(c.Request.Context(), userID, company.UpsertRequest{
		Name: body.Name,
		Size: body.Size,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewCompanyResponse(entity))
}

func (h *Handler) ListEmployees(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	employees, err := h.CompanyService.ListEmployees(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EmployeesResponse{Employees: employees})
}

func (h *Handler) InviteEmployees(c *gin.Context) {
	var body contracts.EmployeeInviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.bindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invites := make([]company.EmployeeInvite, 0, len(body.Employees))
	for _, e := range body.Employees {
		invites = append(invites, company.EmployeeInvite{
			Name:     e.Name,
			Email:    e.Email,
			Dob:      e.Dob,
			Location: e.Location,
		})
	}

	created, err := h.CompanyService.InviteEmployees(c.Request.Context(), userID, invites)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.EmployeesResponse{Employees: created})
}
