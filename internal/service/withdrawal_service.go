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
	ErrWithdrawalNotFound = errors.New("retiro no encontrado")
	ErrWithdrawalResolved = errors.New("el retiro ya fue procesado")
	ErrInsufficientFunds  = errors.New("saldo insuficiente")
	ErrBelowMinimum       = errors.New("monto menor al mínimo de retiro")
)

type WithdrawalService struct {
	db             *gorm.DB
	withdrawalRepo *repository.WithdrawalRepository
	walletRepo     *repository.WalletRepository
	locker         *lock.Locker
	publisher      *events.Publisher
	cfg            *config.Config
}

func NewWithdrawalService(
	db *gorm.DB,
	withdrawalRepo *repository.WithdrawalRepository,
	walletRepo *repository.WalletRepository,
	locker *lock.Locker,
	publisher *events.Publisher,
	cfg *config.Config,
) *WithdrawalService {
	return &WithdrawalService{
		db:             db,
		withdrawalRepo: withdrawalRepo,
		walletRepo:     walletRepo,
		locker:         locker,
		publisher:      publisher,
		cfg:            cfg,
	}
}

// Request creates a PENDING withdrawal and debits the ledger in the
// same transaction, so the requested amount stops counting as available
// balance immediately.
func (s *WithdrawalService) Request(ctx context.Context, userID int64, req *dto.CreateWithdrawalRequest) (*dto.WithdrawalInfo, error) {
	if req.AmountBs < s.cfg.Withdrawal.MinAmountBs {
		return nil, ErrBelowMinimum
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lock.UserKey(userID))
		if err != nil {
			if errors.Is(err, lock.ErrLockHeld) {
				return nil, ErrTransactionFailed
			}
			return nil, err
		}
		defer release()
	}

	var withdrawal *model.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		walletTx := s.walletRepo.WithTx(tx)

		balance, err := walletTx.SumByUser(userID)
		if err != nil {
			return err
		}
		if balance < req.AmountBs {
			return ErrInsufficientFunds
		}

		withdrawal = &model.Withdrawal{
			UserID:      userID,
			AmountBs:    req.AmountBs,
			Method:      req.Method,
			AccountInfo: req.AccountInfo,
			Status:      model.WithdrawalStatusPending,
		}
		if err := s.withdrawalRepo.WithTx(tx).Create(withdrawal); err != nil {
			return err
		}

		return walletTx.Append(&model.WalletLedger{
			UserID:      userID,
			Type:        model.LedgerWithdrawal,
			AmountBs:    -req.AmountBs,
			Description: fmt.Sprintf("Solicitud de retiro vía %s", req.Method),
		})
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	return withdrawalInfo(withdrawal), nil
}

func (s *WithdrawalService) ListByUser(userID int64) ([]dto.WithdrawalInfo, error) {
	withdrawals, err := s.withdrawalRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return withdrawalInfos(withdrawals), nil
}

func (s *WithdrawalService) ListPending() ([]dto.WithdrawalInfo, error) {
	withdrawals, err := s.withdrawalRepo.ListByStatus(model.WithdrawalStatusPending)
	if err != nil {
		return nil, err
	}
	return withdrawalInfos(withdrawals), nil
}

// Approve marks a PENDING withdrawal as PAID. The ledger was already
// debited at request time, so no entry is written here. Approving an
// already-PAID withdrawal is a no-op success.
func (s *WithdrawalService) Approve(ctx context.Context, withdrawalID int64) (*dto.WithdrawalInfo, error) {
	withdrawal, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}

	switch withdrawal.Status {
	case model.WithdrawalStatusPaid:
		return withdrawalInfo(withdrawal), nil
	case model.WithdrawalStatusRejected:
		return nil, ErrWithdrawalResolved
	}

	won, err := s.withdrawalRepo.Resolve(withdrawalID, model.WithdrawalStatusPaid, time.Now())
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrWithdrawalResolved
	}

	s.publish(ctx, &events.Event{
		Type:     events.TypeWithdrawalResolved,
		UserID:   withdrawal.UserID,
		AmountBs: withdrawal.AmountBs,
		Message:  "retiro pagado",
	})

	updated, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	return withdrawalInfo(updated), nil
}

// Reject refuses a PENDING withdrawal and refunds the held amount with
// a compensating ABONADO entry, both inside one transaction.
func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID int64) (*dto.WithdrawalInfo, error) {
	withdrawal, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}

	switch withdrawal.Status {
	case model.WithdrawalStatusRejected:
		return withdrawalInfo(withdrawal), nil
	case model.WithdrawalStatusPaid:
		return nil, ErrWithdrawalResolved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		won, err := s.withdrawalRepo.WithTx(tx).Resolve(withdrawalID, model.WithdrawalStatusRejected, time.Now())
		if err != nil {
			return err
		}
		if !won {
			return ErrWithdrawalResolved
		}

		return s.walletRepo.WithTx(tx).Append(&model.WalletLedger{
			UserID:      withdrawal.UserID,
			Type:        model.LedgerAbonado,
			AmountBs:    withdrawal.AmountBs,
			Description: fmt.Sprintf("Reembolso por retiro rechazado #%d", withdrawalID),
		})
	})
	if err != nil {
		if errors.Is(err, ErrWithdrawalResolved) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.publish(ctx, &events.Event{
		Type:     events.TypeWithdrawalResolved,
		UserID:   withdrawal.UserID,
		AmountBs: withdrawal.AmountBs,
		Message:  "retiro rechazado",
	})

	updated, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	return withdrawalInfo(updated), nil
}

func (s *WithdrawalService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.Type, err)
	}
}

func withdrawalInfo(w *model.Withdrawal) *dto.WithdrawalInfo {
	return &dto.WithdrawalInfo{
		ID:          w.ID,
		UserID:      w.UserID,
		AmountBs:    w.AmountBs,
		Method:      w.Method,
		AccountInfo: w.AccountInfo,
		Status:      w.Status,
		ResolvedAt:  w.ResolvedAt,
		CreatedAt:   w.CreatedAt,
	}
}

func withdrawalInfos(withdrawals []model.Withdrawal) []dto.WithdrawalInfo {
	infos := make([]dto.WithdrawalInfo, 0, len(withdrawals))
	for i := range withdrawals {
		infos = append(infos, *withdrawalInfo(&withdrawals[i]))
	}
	return infos
}
