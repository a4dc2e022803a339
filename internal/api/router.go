package api

import (
	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/api/handler"
	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

type Router struct {
	authHandler          *handler.AuthHandler
	packageHandler       *handler.PackageHandler
	purchaseHandler      *handler.PurchaseHandler
	adminPurchaseHandler *handler.AdminPurchaseHandler
	profitHandler        *handler.ProfitHandler
	earningsHandler      *handler.EarningsHandler
	walletHandler        *handler.WalletHandler
	withdrawalHandler    *handler.WithdrawalHandler
	taskHandler          *handler.TaskHandler
	userRepo             *repository.UserRepository
	cfg                  *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	packageHandler *handler.PackageHandler,
	purchaseHandler *handler.PurchaseHandler,
	adminPurchaseHandler *handler.AdminPurchaseHandler,
	profitHandler *handler.ProfitHandler,
	earningsHandler *handler.EarningsHandler,
	walletHandler *handler.WalletHandler,
	withdrawalHandler *handler.WithdrawalHandler,
	taskHandler *handler.TaskHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:          authHandler,
		packageHandler:       packageHandler,
		purchaseHandler:      purchaseHandler,
		adminPurchaseHandler: adminPurchaseHandler,
		profitHandler:        profitHandler,
		earningsHandler:      earningsHandler,
		walletHandler:        walletHandler,
		withdrawalHandler:    withdrawalHandler,
		taskHandler:          taskHandler,
		userRepo:             userRepo,
		cfg:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// Public
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}
		api.GET("/packages", r.packageHandler.List)

		// Authenticated user
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/purchases", r.purchaseHandler.Create)
			authenticated.GET("/purchases", r.purchaseHandler.List)

			authenticated.GET("/profit/status", r.profitHandler.Status)
			authenticated.POST("/profit/activate", r.profitHandler.Activate)

			authenticated.GET("/earnings", r.earningsHandler.Breakdown)
			authenticated.GET("/wallet", r.walletHandler.Get)

			authenticated.POST("/withdrawals", r.withdrawalHandler.Create)
			authenticated.GET("/withdrawals", r.withdrawalHandler.List)

			authenticated.GET("/tasks", r.taskHandler.Status)
			authenticated.POST("/tasks/complete", r.taskHandler.Complete)
		}

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret))
		admin.Use(middleware.Admin(r.userRepo))
		{
			admin.GET("/purchases/pending", r.adminPurchaseHandler.ListPending)
			admin.POST("/purchases/:id/approve", r.adminPurchaseHandler.Approve)
			admin.POST("/purchases/:id/reject", r.adminPurchaseHandler.Reject)

			admin.GET("/withdrawals/pending", r.withdrawalHandler.ListPending)
			admin.POST("/withdrawals/:id/approve", r.withdrawalHandler.Approve)
			admin.POST("/withdrawals/:id/reject", r.withdrawalHandler.Reject)

			admin.POST("/wallet/adjust", r.walletHandler.Adjust)
		}
	}

	return engine
}
