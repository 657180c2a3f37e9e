package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/company"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB *gorm.DB
}

var _ company.Repository = (*CompanyRepository)(nil)

type companyDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Size      int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (companyDB) TableName() string {
	return "companies"
}

func toDomainCompany(cdb *companyDB) (*company.Company, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &company.Company{
		Id:        id,
		Name:      cdb.Name,
		Size:      cdb.Size,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCompany(c *company.Company) *companyDB {
	return &companyDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Size:      c.Size,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if err := r.DB.WithContext(ctx).Create(toDBCompany(c)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	result := r.DB.WithContext(ctx).Model(&companyDB{}).
		Where("id = ?", c.Id.String()).
		Updates(map[string]interface{}{
			"name":       c.Name,
			"size":       c.Size,
			"updated_at": c.UpdatedAt,
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id ulid.ULID) (*company.Company, error) {
	var cdb companyDB
	if err := r.DB.WithContext(ctx).Where("id = ?", id.String()).First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCompanyNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainCompany(&cdb)
}
