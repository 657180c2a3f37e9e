package contracts

import (
	"time"

	"Tenure/internal/domain/company"
)

type CompanyRequest struct {
	Name string `json:"name" binding:"required"`
	Size int    `json:"size" binding:"gte=0"`
}

type CompanyResponse struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCompanyResponse(c *company.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		Id:        c.Id.String(),
		Name:      c.Name,
		Size:      c.Size,
		CreatedAt: c.CreatedAt,
	}
}

type EmployeeInput struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Dob      *time.Time `json:"dob"`
	Location string     `json:"location"`
}

type EmployeeInviteRequest struct {
	Employees []EmployeeInput `json:"employees" binding:"required,min=1,dive"`
}

type EmployeesResponse struct {
	Employees []company.Employee `json:"employees"`
}
