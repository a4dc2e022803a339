package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/events"
	"github.com/smarthogar/smarthogar-server/internal/pkg/lock"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

var ErrNoActiveVip = errors.New("no tienes un paquete VIP activo")

// ProfitLockedError is returned when the daily-profit gate was already
// claimed inside the current window.
type ProfitLockedError struct {
	NextEligibleAt time.Time
}

func (e *ProfitLockedError) Error() string {
	return "ya activaste tus ganancias hoy"
}

// ProfitService is the daily-profit activation gate. Eligibility rolls
// forward a fixed interval (24h by default) from the most recent claim;
// activating a purchase counts as its first claim. The next-eligible
// instant is always derived from last_profit_at, never from read-time
// guessing.
type ProfitService struct {
	db           *gorm.DB
	purchaseRepo *repository.PurchaseRepository
	walletRepo   *repository.WalletRepository
	locker       *lock.Locker
	publisher    *events.Publisher
	cfg          *config.Config
}

func NewProfitService(
	db *gorm.DB,
	purchaseRepo *repository.PurchaseRepository,
	walletRepo *repository.WalletRepository,
	locker *lock.Locker,
	publisher *events.Publisher,
	cfg *config.Config,
) *ProfitService {
	return &ProfitService{
		db:           db,
		purchaseRepo: purchaseRepo,
		walletRepo:   walletRepo,
		locker:       locker,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *ProfitService) interval() time.Duration {
	hours := s.cfg.Profit.IntervalHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Status reports whether the gate is open for the user and, when
// closed, the instant it reopens.
func (s *ProfitService) Status(userID int64) (*dto.ProfitStatus, error) {
	maxLast, err := s.purchaseRepo.MaxLastProfitAt(userID)
	if err != nil {
		return nil, err
	}
	if maxLast == nil {
		// Nothing active, nothing to claim.
		return &dto.ProfitStatus{CanActivate: false}, nil
	}

	next := maxLast.Add(s.interval())
	if time.Now().Before(next) {
		return &dto.ProfitStatus{CanActivate: false, NextEligibleAt: &next}, nil
	}
	return &dto.ProfitStatus{CanActivate: true}, nil
}

// Activate claims the daily profit of every ACTIVE purchase: one
// DAILY_PROFIT ledger entry per purchase plus a last_profit_at stamp,
// all in one transaction. The stamp update carries the eligibility
// cutoff in its WHERE clause, so of two concurrent claims exactly one
// wins; the loser sees zero stamped rows and gets ProfitLockedError.
func (s *ProfitService) Activate(ctx context.Context, userID int64) (*dto.ActivateProfitResult, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lock.UserKey(userID))
		if err != nil {
			if errors.Is(err, lock.ErrLockHeld) {
				return nil, s.lockedError(userID)
			}
			return nil, err
		}
		defer release()
	}

	var (
		total float64
		next  time.Time
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchaseTx := s.purchaseRepo.WithTx(tx)
		walletTx := s.walletRepo.WithTx(tx)

		purchases, err := purchaseTx.ListActiveByUser(userID)
		if err != nil {
			return err
		}
		if len(purchases) == 0 {
			return ErrNoActiveVip
		}

		now := time.Now()
		cutoff := now.Add(-s.interval())
		stamped, err := purchaseTx.StampProfit(userID, cutoff, now)
		if err != nil {
			return err
		}
		if stamped < int64(len(purchases)) {
			// A fresh stamp exists on at least one purchase: the window
			// has not elapsed, or a concurrent claim beat us to it.
			return s.lockedErrorFrom(purchases)
		}

		for _, purchase := range purchases {
			err := walletTx.Append(&model.WalletLedger{
				UserID:      userID,
				Type:        model.LedgerDailyProfit,
				AmountBs:    purchase.DailyProfitBs,
				Description: fmt.Sprintf("Ganancia diaria VIP %d", purchase.PackageLevel),
			})
			if err != nil {
				return err
			}
			total += purchase.DailyProfitBs
		}

		next = now.Add(s.interval())
		return nil
	})
	if err != nil {
		var locked *ProfitLockedError
		if errors.As(err, &locked) || errors.Is(err, ErrNoActiveVip) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if s.publisher != nil {
		event := &events.Event{
			Type:     events.TypeProfitActivated,
			UserID:   userID,
			AmountBs: total,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("Failed to publish %s event: %v", event.Type, err)
		}
	}

	return &dto.ActivateProfitResult{TotalCreditedBs: total, NextEligibleAt: next}, nil
}

func (s *ProfitService) lockedError(userID int64) error {
	maxLast, err := s.purchaseRepo.MaxLastProfitAt(userID)
	if err != nil || maxLast == nil {
		return &ProfitLockedError{NextEligibleAt: time.Now().Add(s.interval())}
	}
	return &ProfitLockedError{NextEligibleAt: maxLast.Add(s.interval())}
}

func (s *ProfitService) lockedErrorFrom(purchases []model.Purchase) error {
	var maxLast time.Time
	for _, p := range purchases {
		if p.LastProfitAt != nil && p.LastProfitAt.After(maxLast) {
			maxLast = *p.LastProfitAt
		}
	}
	return &ProfitLockedError{NextEligibleAt: maxLast.Add(s.interval())}
}
