package fx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"Tenure/config"
	"Tenure/internal/domain/user"
	"Tenure/internal/logger"
	"Tenure/internal/middleware"
	"Tenure/internal/routes"

	docs "Tenure/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
		startServer,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Default()
}

type routeParams struct {
	fx.In

	Config      *config.Config
	Router      *gin.Engine
	Handler     *routes.Handler
	Jwt         *middleware.JwtService
	Idempotency middleware.IdempotencyStore
	Public      *middleware.RateLimiter `name:"public_limiter"`
	Private     *middleware.RateLimiter `name:"private_limiter"`
}

func setupRoutes(p routeParams) {
	router, handler := p.Router, p.Handler

	router.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handler.Health)

	if p.Config.Queue.User != "" {
		router.GET("/queue/stats", gin.BasicAuth(gin.Accounts{p.Config.Queue.User: p.Config.Queue.Password}), handler.QueueStats)
	}

	public := router.Group("/api")
	public.Use(middleware.RateLimit(p.Public))
	{
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/refresh-token", handler.RefreshToken)
		public.POST("/auth/forgot-password", handler.ForgotPassword)
		public.POST("/auth/reset-password", handler.ResetPassword)
		public.POST("/auth/google", handler.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(p.Jwt))
	private.Use(middleware.RateLimitByUser(p.Private))
	{
		private.POST("/auth/logout", handler.Logout)

		users := private.Group("/user")
		{
			users.GET("", handler.GetProfile)
			users.PUT("", handler.UpdateProfile)
			users.PATCH("/change-password", handler.UpdateUserPassword)
		}

		companies := private.Group("/company")
		{
			companies.POST("", handler.UpsertCompany)
			companies.PUT("", middleware.RequireCompanyRole(user.RoleOwner), handler.UpdateCompany)
			companies.GET("/employee", middleware.RequireCompany(), handler.ListEmployees)
			companies.POST("/employee", middleware.RequireCompanyRole(user.RoleOwner), handler.InviteEmployees)
		}

		goals := private.Group("/saving-goal")
		{
			goals.POST("", handler.CreateGoals)
			goals.GET("", handler.ListGoals)
			goals.GET("/user/:userId", middleware.RequireCompany(), handler.ListEmployeeGoals)
			goals.GET("/:id", handler.GetGoal)
			goals.PUT("/:id", handler.UpdateGoal)
			goals.DELETE("/:id", handler.DeleteGoal)
			goals.GET("/:id/progress", handler.GetGoalProgress)
		}

		// A autorização do empregador fica no engine (CONTRIBUTION_UNAUTHORIZED).
		contributions := private.Group("/contribution")
		contributions.Use(middleware.Idempotency(p.Idempotency))
		{
			contributions.POST("/gift", handler.Gift)
			contributions.POST("/gift-all", handler.GiftAll)
		}

		wallets := private.Group("/wallet")
		{
			wallets.GET("", handler.GetWallet)
			wallets.PATCH("", handler.UpdateWallet)
			wallets.POST("/deposit", middleware.Idempotency(p.Idempotency), handler.Deposit)
		}

		transactions := private.Group("/transaction")
		{
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/:id", handler.GetTransaction)
		}

		notifications := private.Group("/notification")
		{
			notifications.POST("", middleware.RequireCompanyRole(user.RoleOwner), handler.BroadcastNotification)
			notifications.POST("/single", middleware.RequireCompanyRole(user.RoleOwner), handler.SendNotification)
			notifications.POST("/device-token", handler.RegisterDeviceToken)
		}
	}
}

func startServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine) {
	serverAddr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return server.Shutdown(ctx)
		},
	})
}
