package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type CompanyRole string

const (
	RoleOwner    CompanyRole = "Owner"
	RoleEmployee CompanyRole = "Employee"
)

func (r CompanyRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	Id              ulid.ULID   `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Password        string      `json:"-"`
	CompanyId       *ulid.ULID  `json:"companyId,omitempty"`
	CompanyRole     CompanyRole `json:"companyRole,omitempty"`
	Dob             *time.Time  `json:"dob,omitempty"`
	Location        string      `json:"location,omitempty"`
	DeviceToken     string      `json:"-"`
	ResetPassword   string      `json:"-"`
	ResetPasswordAt *time.Time  `json:"-"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (u *User) IsOwner() bool {
	return u.CompanyId != nil && u.CompanyRole == RoleOwner
}

func (u *User) IsEmployee() bool {
	return u.CompanyId != nil && u.CompanyRole == RoleEmployee
}

// SameCompany indica se ambos pertencem à mesma empresa.
func (u *User) SameCompany(other *User) bool {
	if u.CompanyId == nil || other == nil || other.CompanyId == nil {
		return false
	}
	return *u.CompanyId == *other.CompanyId
}
