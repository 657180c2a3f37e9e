package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

type userDB struct {
	Id              string     `gorm:"type:varchar(26);primaryKey"`
	Name            string     `gorm:"type:varchar(100);not null;default:''"`
	Email           string     `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null"`
	Password        string     `gorm:"type:varchar(255);not null"`
	CompanyId       *string    `gorm:"type:varchar(26);index:idx_users_company_role,priority:1"`
	CompanyRole     string     `gorm:"type:varchar(20);index:idx_users_company_role,priority:2"`
	Dob             *time.Time `gorm:"type:date"`
	Location        string     `gorm:"type:varchar(100)"`
	DeviceToken     string     `gorm:"type:varchar(255)"`
	ResetPassword   string     `gorm:"type:varchar(255)"`
	ResetPasswordAt *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	companyID, err := pkg.ParseULIDPtr(udb.CompanyId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:              id,
		Name:            udb.Name,
		Email:           udb.Email,
		Password:        udb.Password,
		CompanyId:       companyID,
		CompanyRole:     user.CompanyRole(udb.CompanyRole),
		Dob:             udb.Dob,
		Location:        udb.Location,
		DeviceToken:     udb.DeviceToken,
		ResetPassword:   udb.ResetPassword,
		ResetPasswordAt: udb.ResetPasswordAt,
		CreatedAt:       udb.CreatedAt,
		UpdatedAt:       udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:              u.Id.String(),
		Name:            u.Name,
		Email:           u.Email,
		Password:        u.Password,
		CompanyId:       pkg.ULIDPtrToString(u.CompanyId),
		CompanyRole:     string(u.CompanyRole),
		Dob:             u.Dob,
		Location:        u.Location,
		DeviceToken:     u.DeviceToken,
		ResetPassword:   u.ResetPassword,
		ResetPasswordAt: u.ResetPasswordAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toDomainUsers(rows []userDB) ([]*user.User, error) {
	out := make([]*user.User, 0, len(rows))
	for i := range rows {
		u, err := toDomainUser(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	if err := r.DB.WithContext(ctx).Create(udb).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErrors.ErrEmailAlreadyExists.WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Update grava todas as colunas, inclusive as zeradas (ex.: limpar token de reset).
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	result := r.DB.WithContext(ctx).Model(&userDB{}).Where("id = ?", udb.Id).Select("*").Omit("id", "created_at").Updates(udb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id.String()).Delete(&userDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByEmails(ctx context.Context, emails []string) ([]*user.User, error) {
	if len(emails) == 0 {
		return []*user.User{}, nil
	}
	var rows []userDB
	if err := r.DB.WithContext(ctx).Where("email IN ?", emails).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUsers(rows)
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []ulid.ULID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	var rows []userDB
	if err := r.DB.WithContext(ctx).Where("id IN ?", raw).Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUsers(rows)
}

func (r *UserRepository) ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*user.User, error) {
	var rows []userDB
	if err := r.DB.WithContext(ctx).
		Where("company_id = ?", companyID.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUsers(rows)
}

func (r *UserRepository) FindEmployeesByCompany(ctx context.Context, companyID ulid.ULID) ([]*user.User, error) {
	var rows []userDB
	if err := r.DB.WithContext(ctx).
		Where("company_id = ? AND company_role = ?", companyID.String(), string(user.RoleEmployee)).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUsers(rows)
}

func (r *UserRepository) FindEmployeeByName(ctx context.Context, companyID ulid.ULID, name string) (*user.User, error) {
	return r.first(ctx,
		"company_id = ? AND company_role = ? AND LOWER(name) = LOWER(?)",
		companyID.String(), string(user.RoleEmployee), name,
	)
}

func (r *UserRepository) UpdateDeviceToken(ctx context.Context, id ulid.ULID, token string) error {
	result := r.DB.WithContext(ctx).Model(&userDB{}).
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"device_token": token,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Where(query, args...).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}
