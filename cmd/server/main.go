package main

import (
	"fmt"
	"log"
	"os"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/api"
	"github.com/smarthogar/smarthogar-server/internal/api/handler"
	"github.com/smarthogar/smarthogar-server/internal/database"
	"github.com/smarthogar/smarthogar-server/internal/pkg/events"
	"github.com/smarthogar/smarthogar-server/internal/pkg/lock"
	"github.com/smarthogar/smarthogar-server/internal/pkg/sweeper"
	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	locker := lock.NewLocker(rdb)
	publisher := events.NewPublisher(rdb)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	referralService := service.NewReferralService(userRepo, walletRepo, cfg)
	purchaseService := service.NewPurchaseService(db, purchaseRepo, packageRepo, walletRepo, taskRepo, referralService, locker, publisher, cfg)
	profitService := service.NewProfitService(db, purchaseRepo, walletRepo, locker, publisher, cfg)
	earningsService := service.NewEarningsService(userRepo, walletRepo)
	walletService := service.NewWalletService(userRepo, walletRepo)
	withdrawalService := service.NewWithdrawalService(db, withdrawalRepo, walletRepo, locker, publisher, cfg)
	taskService := service.NewTaskService(purchaseRepo, taskRepo, cfg)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	packageHandler := handler.NewPackageHandler(packageRepo)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	adminPurchaseHandler := handler.NewAdminPurchaseHandler(purchaseService)
	profitHandler := handler.NewProfitHandler(profitService)
	earningsHandler := handler.NewEarningsHandler(earningsService)
	walletHandler := handler.NewWalletHandler(walletService)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Background sweep of stale pending purchases
	sweep := sweeper.NewService(purchaseService, purchaseRepo,
		cfg.Purchase.PendingExpireDays, cfg.Purchase.SweepIntervalMinutes)
	sweep.Start()
	defer sweep.Stop()

	router := api.NewRouter(
		authHandler,
		packageHandler,
		purchaseHandler,
		adminPurchaseHandler,
		profitHandler,
		earningsHandler,
		walletHandler,
		withdrawalHandler,
		taskHandler,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
