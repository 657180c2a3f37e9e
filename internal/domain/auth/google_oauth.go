package auth

import (
	"context"

	"Tenure/config"
	appErrors "Tenure/internal/errors"

	"google.golang.org/api/idtoken"
)

type GoogleOAuthProvider struct {
	clientID string
}

func NewGoogleOAuthProvider(cfg config.GoogleOAuthConfig) (*GoogleOAuthProvider, error) {
	if !cfg.Enabled {
		return nil, appErrors.NewAuthError("OAUTH_DISABLED", "OAuth do Google está desabilitado")
	}
	if cfg.ClientID == "" {
		return nil, appErrors.NewAuthError("OAUTH_CONFIG_MISSING", "GOOGLE_OAUTH_CLIENT_ID não configurado")
	}
	return &GoogleOAuthProvider{clientID: cfg.ClientID}, nil
}

func (g *GoogleOAuthProvider) VerifyToken(ctx context.Context, credential string) (*OAuthUserInfo, error) {
	payload, err := idtoken.Validate(ctx, credential, g.clientID)
	if err != nil {
		return nil, appErrors.NewAuthError("TOKEN_INVALID", "Token do Google inválido").WithError(err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, appErrors.NewAuthError("EMAIL_MISSING", "Email não encontrado no token")
	}

	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, appErrors.NewAuthError("EMAIL_NOT_VERIFIED", "Email do Google não verificado")
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &OAuthUserInfo{
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
