package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"Tenure/internal/domain/notification"
	"Tenure/internal/domain/shared"
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

const resetPasswordTTL = time.Hour

type Service struct {
	Repository    user.Repository
	UserService   *user.Service
	Wallets       WalletProvisioner
	Tokens        TokenIssuer
	RefreshTokens RefreshTokenRepository
	Queue         shared.Enqueuer
	Google        OAuthVerifier
	ClientURL     string

	now func() time.Time
}

func NewService(
	repo user.Repository,
	userSvc *user.Service,
	wallets WalletProvisioner,
	tokens TokenIssuer,
	refreshTokens RefreshTokenRepository,
	queue shared.Enqueuer,
	google OAuthVerifier,
	clientURL string,
) *Service {
	return &Service{
		Repository:    repo,
		UserService:   userSvc,
		Wallets:       wallets,
		Tokens:        tokens,
		RefreshTokens: refreshTokens,
		Queue:         queue,
		Google:        google,
		ClientURL:     clientURL,
		now:           time.Now,
	}
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, *TokenPair, error) {
	entity, err := s.Repository.GetByEmail(ctx, user.NormalizeEmail(login.Email))
	if err != nil {
		if isUserNotFound(err) {
			return nil, nil, appErrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, entity)
	if err != nil {
		return nil, nil, err
	}
	return entity, pair, nil
}

func (s *Service) Register(ctx context.Context, u *user.User) (*TokenPair, error) {
	taken, err := s.UserService.EmailTaken(ctx, u.Email, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErrors.ErrEmailAlreadyExists
	}
	if err := user.ValidatePasswordRequirements(u.Password); err != nil {
		return nil, err
	}
	if err := s.UserService.Create(ctx, u); err != nil {
		return nil, err
	}
	if _, err := s.Wallets.EnsureWallet(ctx, u.Id); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Refresh troca um refresh token válido por um novo par; o anterior deixa de valer.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.Tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, appErrors.ErrInvalidToken.WithError(err)
	}

	stored, err := s.RefreshTokens.GetByID(ctx, claims.JTI)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrNotFound.Code {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}
	if stored.Revoked || stored.UserId != claims.UserID {
		return nil, appErrors.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(HashToken(refreshToken)), []byte(stored.HashedToken)) != 1 {
		return nil, appErrors.ErrInvalidToken
	}

	entity, err := s.UserService.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.RefreshTokens.Delete(ctx, stored.Id); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, entity)
}

func (s *Service) Logout(ctx context.Context, userID ulid.ULID) error {
	return s.RefreshTokens.RevokeForUser(ctx, userID)
}

// ForgotPassword gera um token de uso único e envia o link por email.
// Emails desconhecidos não geram erro para não revelar cadastros.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	entity, err := s.Repository.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if isUserNotFound(err) {
			logger.Info().Msg("Solicitação de reset para email inexistente")
			return nil
		}
		return err
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}

	expiresAt := s.now().Add(resetPasswordTTL)
	entity.ResetPassword = string(hash)
	entity.ResetPasswordAt = &expiresAt
	if err := s.UserService.Update(ctx, entity); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&id=%s", s.ClientURL, token, entity.Id.String())
	return s.Queue.Enqueue(ctx, notification.JobSendMail, notification.ResetPasswordMail(entity.Email, entity.Id.String(), token, link))
}

func (s *Service) ResetPassword(ctx context.Context, userID ulid.ULID, token, newPassword string) error {
	entity, err := s.UserService.GetByID(ctx, userID)
	if err != nil {
		if isUserNotFound(err) {
			return appErrors.ErrInvalidToken
		}
		return err
	}
	if entity.ResetPassword == "" || entity.ResetPasswordAt == nil {
		return appErrors.ErrInvalidToken
	}

	if s.now().After(*entity.ResetPasswordAt) {
		entity.ResetPassword = ""
		entity.ResetPasswordAt = nil
		if err := s.UserService.Update(ctx, entity); err != nil {
			return err
		}
		return appErrors.ErrInvalidToken.WithDetails(map[string]interface{}{
			"reason": "expired",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entity.ResetPassword), []byte(token)); err != nil {
		return appErrors.ErrInvalidToken
	}
	if err := user.ValidatePasswordRequirements(newPassword); err != nil {
		return err
	}

	hashed, err := user.HashPassword(newPassword)
	if err != nil {
		return err
	}
	entity.Password = hashed
	entity.ResetPassword = ""
	entity.ResetPasswordAt = nil
	if err := s.UserService.Update(ctx, entity); err != nil {
		return err
	}

	return s.RefreshTokens.RevokeForUser(ctx, entity.Id)
}

func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, *TokenPair, error) {
	if s.Google == nil {
		return nil, nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado. Configure GOOGLE_OAUTH_CLIENT_ID e GOOGLE_OAUTH_ENABLED=true")
	}
	if credential == "" {
		return nil, nil, appErrors.NewAuthError("CREDENTIAL_MISSING", "Credencial do Google não fornecida")
	}

	info, err := s.Google.VerifyToken(ctx, credential)
	if err != nil {
		return nil, nil, err
	}

	entity, err := s.Repository.GetByEmail(ctx, user.NormalizeEmail(info.Email))
	if err != nil {
		if !isUserNotFound(err) {
			return nil, nil, err
		}

		password, err := generateSecurePassword()
		if err != nil {
			return nil, nil, err
		}
		name := info.Name
		if name == "" {
			name = "Usuário Google"
		}
		entity = &user.User{
			Name:     name,
			Email:    info.Email,
			Password: password,
		}
		if err := s.UserService.Create(ctx, entity); err != nil {
			return nil, nil, err
		}
		if _, err := s.Wallets.EnsureWallet(ctx, entity.Id); err != nil {
			return nil, nil, err
		}
	}

	pair, err := s.issueTokens(ctx, entity)
	if err != nil {
		return nil, nil, err
	}
	return entity, pair, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.Tokens.GenerateAccessToken(u)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	jti := uuid.NewString()
	refresh, expiresAt, err := s.Tokens.GenerateRefreshToken(u.Id, jti)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	now := s.now()
	if err := s.RefreshTokens.Create(ctx, &RefreshToken{
		Id:          jti,
		UserId:      u.Id,
		HashedToken: HashToken(refresh),
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// HashToken é o sha512 hex usado na whitelist de refresh tokens.
func HashToken(token string) string {
	sum := sha512.Sum512([]byte(token))
	return hex.EncodeToString(sum[:])
}

func PasswordValidate(inputPassword string, storedPassword string) error {
	if inputPassword == "" {
		return appErrors.NewValidationError("password", "deve ser informado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(inputPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}

func isUserNotFound(err error) bool {
	appErr, ok := appErrors.AsAppError(err)
	return ok && appErr.Code == appErrors.ErrUserNotFound.Code
}

func generateSecurePassword() (string, error) {
	return randomToken(32)
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
