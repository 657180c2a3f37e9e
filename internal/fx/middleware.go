package fx

import (
	"time"

	"Tenure/config"
	"Tenure/internal/domain/user"
	"Tenure/internal/middleware"

	"go.uber.org/fx"
)

// Limiters nomeados: rotas públicas por IP, rotas privadas por usuário.
type rateLimiters struct {
	fx.Out

	Public  *middleware.RateLimiter `name:"public_limiter"`
	Private *middleware.RateLimiter `name:"private_limiter"`
}

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
		newRateLimiters,
	),
)

func newJwtService(cfg *config.Config, userSvc *user.Service) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT, userSvc)
}

func newRateLimiters() rateLimiters {
	return rateLimiters{
		Public:  middleware.NewRateLimiter(100, time.Minute),
		Private: middleware.NewRateLimiter(300, time.Minute),
	}
}
