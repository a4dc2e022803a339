package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/database"
	"github.com/smarthogar/smarthogar-server/internal/pkg/sweeper"
	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

var expireDays = flag.Int("expire-days", 3, "Reject PENDING purchases older than this many days")

// One-shot sweep of stale pending purchases, for manual runs or an
// external scheduler.
func main() {
	flag.Parse()

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

	userRepo := repository.NewUserRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	referralService := service.NewReferralService(userRepo, walletRepo, cfg)
	purchaseService := service.NewPurchaseService(db, purchaseRepo, packageRepo, walletRepo, taskRepo, referralService, nil, nil, cfg)

	sweep := sweeper.NewService(purchaseService, purchaseRepo, *expireDays, 0)
	rejected, err := sweep.RunNow(context.Background())
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Sweep complete: %d stale purchases rejected", rejected)
}
