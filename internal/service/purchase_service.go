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

var (
	ErrPurchaseNotFound  = errors.New("compra no encontrada")
	ErrPurchaseRejected  = errors.New("la compra ya fue rechazada")
	ErrPurchaseActive    = errors.New("la compra ya está activa")
	ErrPackageNotFound   = errors.New("paquete no encontrado")
	ErrPackageDisabled   = errors.New("paquete no disponible")
	ErrTransactionFailed = errors.New("la operación falló, intenta de nuevo")
)

// errLostTransition signals that another request changed the purchase
// status between our read and the compare-and-swap.
var errLostTransition = errors.New("lost status transition")

type PurchaseService struct {
	db           *gorm.DB
	purchaseRepo *repository.PurchaseRepository
	packageRepo  *repository.PackageRepository
	walletRepo   *repository.WalletRepository
	taskRepo     *repository.TaskRepository
	referral     *ReferralService
	locker       *lock.Locker
	publisher    *events.Publisher
	cfg          *config.Config
}

func NewPurchaseService(
	db *gorm.DB,
	purchaseRepo *repository.PurchaseRepository,
	packageRepo *repository.PackageRepository,
	walletRepo *repository.WalletRepository,
	taskRepo *repository.TaskRepository,
	referral *ReferralService,
	locker *lock.Locker,
	publisher *events.Publisher,
	cfg *config.Config,
) *PurchaseService {
	return &PurchaseService{
		db:           db,
		purchaseRepo: purchaseRepo,
		packageRepo:  packageRepo,
		walletRepo:   walletRepo,
		taskRepo:     taskRepo,
		referral:     referral,
		locker:       locker,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// Create records a PENDING purchase request, snapshotting the package
// amounts so later catalog edits never affect this purchase.
func (s *PurchaseService) Create(userID int64, level int) (*dto.PurchaseInfo, error) {
	pkg, err := s.packageRepo.GetByLevel(level)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if !pkg.Enabled {
		return nil, ErrPackageDisabled
	}

	purchase := &model.Purchase{
		UserID:        userID,
		PackageID:     pkg.ID,
		PackageLevel:  pkg.Level,
		InvestmentBs:  pkg.InvestmentBs,
		DailyProfitBs: pkg.DailyProfitBs,
		Status:        model.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	return purchaseInfo(purchase, pkg.Name), nil
}

// ListByUser returns the user's purchases, newest first.
func (s *PurchaseService) ListByUser(userID int64) ([]dto.PurchaseInfo, error) {
	purchases, err := s.purchaseRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PurchaseInfo, 0, len(purchases))
	for i := range purchases {
		infos = append(infos, *purchaseInfo(&purchases[i], ""))
	}
	return infos, nil
}

// ListPending returns purchases awaiting admin review.
func (s *PurchaseService) ListPending() ([]model.Purchase, error) {
	return s.purchaseRepo.ListByStatus(model.PurchaseStatusPending)
}

// Approve activates a PENDING purchase and, in the same transaction,
// pays the upline referral bonuses and converts accumulated TikTok
// tasks on the user's first activation. Approving an already-ACTIVE
// purchase is a no-op success so an admin double-click can never pay
// bonuses twice.
func (s *PurchaseService) Approve(ctx context.Context, purchaseID int64) (*dto.ApproveResult, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	switch purchase.Status {
	case model.PurchaseStatusActive:
		return &dto.ApproveResult{Message: "Compra ya activa"}, nil
	case model.PurchaseStatusRejected:
		return nil, ErrPurchaseRejected
	}

	// Serialize money-moving operations per user across instances.
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lock.UserKey(purchase.UserID))
		if err != nil {
			if errors.Is(err, lock.ErrLockHeld) {
				return nil, ErrTransactionFailed
			}
			return nil, err
		}
		defer release()
	}

	var tiktokBonus float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		purchaseTx := s.purchaseRepo.WithTx(tx)
		walletTx := s.walletRepo.WithTx(tx)
		taskTx := s.taskRepo.WithTx(tx)

		// First activation must be decided before the transition, in the
		// same transaction that applies it.
		activeCount, err := purchaseTx.CountActiveByUser(purchase.UserID)
		if err != nil {
			return err
		}
		isFirstActivation := activeCount == 0

		won, err := purchaseTx.Activate(purchase.ID, time.Now())
		if err != nil {
			return err
		}
		if !won {
			return errLostTransition
		}

		if _, err := s.referral.PayBonuses(tx, purchase.UserID, purchase.InvestmentBs); err != nil {
			return err
		}

		if isFirstActivation {
			tasks, err := taskTx.ListByUser(purchase.UserID)
			if err != nil {
				return err
			}
			if len(tasks) > 0 {
				// Ledger-existence check keeps the conversion idempotent even
				// if task rows somehow survive a previous activation.
				exists, err := walletTx.ExistsByUserAndType(purchase.UserID, model.LedgerTikTokBonus)
				if err != nil {
					return err
				}
				if !exists {
					var sum float64
					for _, task := range tasks {
						sum += task.AmountBs
					}
					err = walletTx.Append(&model.WalletLedger{
						UserID:      purchase.UserID,
						Type:        model.LedgerTikTokBonus,
						AmountBs:    sum,
						Description: fmt.Sprintf("Bono TikTok - %d tareas completadas", len(tasks)),
					})
					if err != nil {
						return err
					}
					tiktokBonus = sum
				}
				if err := taskTx.DeleteByUser(purchase.UserID); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if errors.Is(err, errLostTransition) {
		// Someone else resolved the purchase while we held the stale read.
		current, reloadErr := s.purchaseRepo.GetByID(purchaseID)
		if reloadErr != nil {
			return nil, reloadErr
		}
		if current.Status == model.PurchaseStatusActive {
			return &dto.ApproveResult{Message: "Compra ya activa"}, nil
		}
		return nil, ErrPurchaseRejected
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.publish(ctx, &events.Event{
		Type:     events.TypePurchaseApproved,
		UserID:   purchase.UserID,
		AmountBs: purchase.InvestmentBs,
	})

	message := "Compra activada y bonos pagados"
	if tiktokBonus > 0 {
		message = fmt.Sprintf("Compra activada, bonos pagados y +Bs %.2f de TikTok bonificados", tiktokBonus)
	}
	return &dto.ApproveResult{Message: message, TikTokBonusBs: tiktokBonus}, nil
}

// Reject moves a PENDING purchase to REJECTED. It never touches the
// ledger and refuses to reject an ACTIVE purchase. Rejecting an
// already-REJECTED purchase is a no-op success.
func (s *PurchaseService) Reject(ctx context.Context, purchaseID int64) (*dto.RejectResult, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	switch purchase.Status {
	case model.PurchaseStatusRejected:
		return &dto.RejectResult{Message: "Compra ya rechazada"}, nil
	case model.PurchaseStatusActive:
		return nil, ErrPurchaseActive
	}

	won, err := s.purchaseRepo.Reject(purchaseID)
	if err != nil {
		return nil, err
	}
	if !won {
		current, reloadErr := s.purchaseRepo.GetByID(purchaseID)
		if reloadErr != nil {
			return nil, reloadErr
		}
		if current.Status == model.PurchaseStatusRejected {
			return &dto.RejectResult{Message: "Compra ya rechazada"}, nil
		}
		return nil, ErrPurchaseActive
	}

	s.publish(ctx, &events.Event{
		Type:   events.TypePurchaseRejected,
		UserID: purchase.UserID,
	})

	return &dto.RejectResult{Message: "Compra rechazada"}, nil
}

func (s *PurchaseService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.Type, err)
	}
}

func purchaseInfo(p *model.Purchase, packageName string) *dto.PurchaseInfo {
	return &dto.PurchaseInfo{
		ID:            p.ID,
		PackageLevel:  p.PackageLevel,
		PackageName:   packageName,
		InvestmentBs:  p.InvestmentBs,
		DailyProfitBs: p.DailyProfitBs,
		Status:        p.Status,
		ActivatedAt:   p.ActivatedAt,
		CreatedAt:     p.CreatedAt,
	}
}
