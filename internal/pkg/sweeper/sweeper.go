package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

// Service periodically rejects PENDING purchases that were never
// approved, going through the purchase service so the state machine
// rules still apply.
type Service struct {
	purchaseService *service.PurchaseService
	purchaseRepo    *repository.PurchaseRepository
	expireDays      int
	interval        time.Duration
	stopChan        chan struct{}
}

func NewService(
	purchaseService *service.PurchaseService,
	purchaseRepo *repository.PurchaseRepository,
	expireDays int,
	intervalMinutes int,
) *Service {
	if expireDays <= 0 {
		expireDays = 3
	}
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	return &Service{
		purchaseService: purchaseService,
		purchaseRepo:    purchaseRepo,
		expireDays:      expireDays,
		interval:        time.Duration(intervalMinutes) * time.Minute,
		stopChan:        make(chan struct{}),
	}
}

func (s *Service) Start() {
	go s.run()
	log.Println("Purchase sweeper started")
}

func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Purchase sweeper stopped")
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.RunNow(context.Background()); err != nil {
				log.Printf("Purchase sweep failed: %v", err)
			}
		}
	}
}

// RunNow sweeps immediately and returns how many purchases it rejected.
func (s *Service) RunNow(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.expireDays)
	stale, err := s.purchaseRepo.ListPendingOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	rejected := 0
	for _, purchase := range stale {
		if _, err := s.purchaseService.Reject(ctx, purchase.ID); err != nil {
			log.Printf("Failed to reject stale purchase %d: %v", purchase.ID, err)
			continue
		}
		rejected++
	}

	if rejected > 0 {
		log.Printf("Purchase sweep: rejected %d stale purchases", rejected)
	}
	return rejected, nil
}
