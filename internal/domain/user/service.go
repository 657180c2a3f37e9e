package user

import (
	"context"
	"regexp"
	"strings"
	"time"

	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type UpdateProfileRequest struct {
	Name     *string
	Email    *string
	Dob      *time.Time
	Location *string
}

func (s *Service) Create(ctx context.Context, user *User) error {
	user.Id = pkg.GenerateULIDObject()
	user.Email = NormalizeEmail(user.Email)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	return s.Repository.Create(ctx, user)
}

func (s *Service) Update(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now()
	return s.Repository.Update(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id ulid.ULID) error {
	return s.Repository.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.Repository.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) Exists(ctx context.Context, userID ulid.ULID) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

// EmailTaken informa se o email já pertence a outro usuário.
func (s *Service) EmailTaken(ctx context.Context, email string, except *ulid.ULID) (bool, error) {
	found, err := s.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			return false, nil
		}
		return false, err
	}
	if except != nil && found.Id == *except {
		return false, nil
	}
	return true, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID ulid.ULID, req UpdateProfileRequest) (*User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		taken, err := s.EmailTaken(ctx, email, &userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		user.Email = email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "não pode estar vazio")
		}
		user.Name = name
	}
	if req.Dob != nil {
		user.Dob = req.Dob
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}

	if err := s.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID ulid.ULID, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}

	if err := ValidatePasswordRequirements(newPassword); err != nil {
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.Update(ctx, user)
}

func (s *Service) RegisterDeviceToken(ctx context.Context, userID ulid.ULID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return appErrors.NewValidationError("deviceToken", "é obrigatório")
	}
	return s.Repository.UpdateDeviceToken(ctx, userID, token)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return string(hash), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "deve conter no mínimo 8 caracteres")
	}
	hasUpper, _ := regexp.MatchString(`[A-Z]`, password)
	if !hasUpper {
		return appErrors.NewValidationError("password", "deve conter ao menos uma letra maiúscula")
	}
	hasSpecial, _ := regexp.MatchString(`[@$!%*?&]`, password)
	if !hasSpecial {
		return appErrors.NewValidationError("password", "deve conter ao menos um caractere especial (@$!%*?&)")
	}
	return nil
}
