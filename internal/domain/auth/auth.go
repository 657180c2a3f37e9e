package auth

import (
	"context"
	"time"

	"Tenure/internal/domain/user"
	"Tenure/internal/domain/wallet"

	"github.com/oklog/ulid/v2"
)

type Login struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshClaims struct {
	UserID ulid.ULID
	JTI    string
}

// RefreshToken é a entrada da whitelist; o token em si nunca é gravado, só o hash.
type RefreshToken struct {
	Id          string
	UserId      ulid.ULID
	HashedToken string
	Revoked     bool
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByID(ctx context.Context, id string) (*RefreshToken, error)
	Delete(ctx context.Context, id string) error
	RevokeForUser(ctx context.Context, userID ulid.ULID) error
}

type TokenIssuer interface {
	GenerateAccessToken(u *user.User) (string, error)
	GenerateRefreshToken(userID ulid.ULID, jti string) (string, time.Time, error)
	ParseRefreshToken(token string) (*RefreshClaims, error)
}

type OAuthUserInfo struct {
	Email   string
	Name    string
	Picture string
}

type OAuthVerifier interface {
	VerifyToken(ctx context.Context, credential string) (*OAuthUserInfo, error)
}

type WalletProvisioner interface {
	EnsureWallet(ctx context.Context, userID ulid.ULID) (*wallet.Wallet, error)
}
