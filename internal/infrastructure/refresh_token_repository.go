package infrastructure

import (
	"context"
	"errors"
	"time"

	"Tenure/internal/domain/auth"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	DB *gorm.DB
}

var _ auth.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

type refreshTokenDB struct {
	Id          string    `gorm:"type:varchar(64);primaryKey"`
	UserId      string    `gorm:"type:varchar(26);index;not null"`
	HashedToken string    `gorm:"type:varchar(128);not null"`
	Revoked     bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (refreshTokenDB) TableName() string {
	return "refresh_tokens"
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *auth.RefreshToken) error {
	row := &refreshTokenDB{
		Id:          token.Id,
		UserId:      token.UserId.String(),
		HashedToken: token.HashedToken,
		Revoked:     token.Revoked,
		ExpiresAt:   token.ExpiresAt,
		CreatedAt:   token.CreatedAt,
		UpdatedAt:   token.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByID(ctx context.Context, id string) (*auth.RefreshToken, error) {
	var row refreshTokenDB
	if err := r.DB.WithContext(ctx).Where("id = ? AND expires_at > ?", id, time.Now()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	uid, err := pkg.ParseULID(row.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &auth.RefreshToken{
		Id:          row.Id,
		UserId:      uid,
		HashedToken: row.HashedToken,
		Revoked:     row.Revoked,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, id string) error {
	if err := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&refreshTokenDB{}).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeForUser(ctx context.Context, userID ulid.ULID) error {
	if err := r.DB.WithContext(ctx).Model(&refreshTokenDB{}).
		Where("user_id = ? AND revoked = ?", userID.String(), false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}
