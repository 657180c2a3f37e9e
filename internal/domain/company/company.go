package company

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Company struct {
	Id        ulid.ULID `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Employee struct {
	Id       ulid.ULID  `json:"id"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	Name     string     `json:"name"`
	Dob      *time.Time `json:"dob,omitempty"`
	Location string     `json:"location,omitempty"`
}

type EmployeeInvite struct {
	Name     string
	Email    string
	Dob      *time.Time
	Location string
}

type UpsertRequest struct {
	Name string
	Size int
}
