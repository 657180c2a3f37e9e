package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Tenure/config"
	"Tenure/internal/domain/auth"
	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"
	"Tenure/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	ContextUserID      = "user_id"
	ContextCompanyID   = "company_id"
	ContextCompanyRole = "company_role"

	TokenCookie = "token"
)

type UserLoader interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
}

type JwtService struct {
	cfg   config.JWTConfig
	users UserLoader
}

var _ auth.TokenIssuer = (*JwtService)(nil)

type accessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewJwtService(cfg config.JWTConfig, users UserLoader) (*JwtService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("jwt: segredos de access e refresh são obrigatórios")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 8 * time.Hour
	}
	return &JwtService{cfg: cfg, users: users}, nil
}

func (s *JwtService) GenerateAccessToken(u *user.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: u.Id.String(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Id.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AccessSecret))
}

func (s *JwtService) GenerateRefreshToken(userID ulid.ULID, jti string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.RefreshTTL)
	claims := refreshClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *JwtService) ParseAccessToken(token string) (ulid.ULID, error) {
	var claims accessClaims
	if err := s.parse(token, s.cfg.AccessSecret, &claims); err != nil {
		return ulid.ULID{}, err
	}
	return pkg.ParseULID(claims.UserID)
}

func (s *JwtService) ParseRefreshToken(token string) (*auth.RefreshClaims, error) {
	var claims refreshClaims
	if err := s.parse(token, s.cfg.RefreshSecret, &claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("jwt: refresh token sem jti")
	}
	userID, err := pkg.ParseULID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &auth.RefreshClaims{UserID: userID, JTI: claims.ID}, nil
}

func (s *JwtService) parse(token, secret string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: algoritmo inesperado %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("jwt: token inválido")
	}
	return nil
}

// AuthMiddleware aceita o token no header Authorization (Bearer) ou no cookie "token"
// e carrega o usuário para expor id, empresa e papel no contexto.
func AuthMiddleware(s *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		userID, err := s.ParseAccessToken(raw)
		if err != nil {
			abortWithError(c, appErrors.ErrInvalidToken.WithError(err))
			return
		}

		entity, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
				abortWithError(c, appErrors.ErrInvalidToken)
				return
			}
			abortWithError(c, appErrors.FromError(err))
			return
		}

		c.Set(ContextUserID, entity.Id.String())
		c.Set(ContextCompanyRole, entity.CompanyRole)
		if entity.CompanyId != nil {
			c.Set(ContextCompanyID, entity.CompanyId.String())
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
