package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmails(ctx context.Context, emails []string) ([]*User, error)
	ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*User, error)
	FindEmployeesByCompany(ctx context.Context, companyID ulid.ULID) ([]*User, error)
	FindEmployeeByName(ctx context.Context, companyID ulid.ULID, name string) (*User, error)
	ListByIDs(ctx context.Context, ids []ulid.ULID) ([]*User, error)
	UpdateDeviceToken(ctx context.Context, id ulid.ULID, token string) error
}
