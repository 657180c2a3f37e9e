package contracts

import (
	"time"

	"Tenure/internal/domain/user"
)

type UserResponse struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanyId   *string    `json:"companyId"`
	CompanyRole string     `json:"companyRole"`
	Dob         *time.Time `json:"dob,omitempty"`
	Location    string     `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewUserResponse nunca expõe senha nem token de reset.
func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	var companyID *string
	if u.CompanyId != nil {
		id := u.CompanyId.String()
		companyID = &id
	}
	return &UserResponse{
		Id:          u.Id.String(),
		Name:        u.Name,
		Email:       u.Email,
		CompanyId:   companyID,
		CompanyRole: string(u.CompanyRole),
		Dob:         u.Dob,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt,
	}
}

type UserProfileFields struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Dob      *time.Time `json:"dob"`
	Location *string    `json:"location"`
}

type UserUpdateRequest struct {
	User    UserProfileFields `json:"user"`
	Company *CompanyRequest   `json:"company"`
}

type UserUpdateResponse struct {
	User    *UserResponse    `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type DeviceTokenRequest struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
}
