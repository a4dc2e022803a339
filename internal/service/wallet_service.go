package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

var ErrInvalidAdjustmentType = errors.New("tipo de ajuste inválido")

type WalletService struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

func NewWalletService(
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
) *WalletService {
	return &WalletService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
	}
}

// Adjust appends a manual admin adjustment: ABONADO credits, DESCUENTO
// debits. The request amount is always positive; the sign comes from
// the type.
func (s *WalletService) Adjust(req *dto.AdjustWalletRequest) (*dto.LedgerEntryInfo, error) {
	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	amount := req.AmountBs
	switch req.Type {
	case model.LedgerAbonado:
	case model.LedgerDescuento:
		amount = -amount
	default:
		return nil, ErrInvalidAdjustmentType
	}

	entry := &model.WalletLedger{
		UserID:      req.UserID,
		Type:        req.Type,
		AmountBs:    amount,
		Description: req.Description,
	}
	if err := s.walletRepo.Append(entry); err != nil {
		return nil, err
	}

	return ledgerEntryInfo(entry), nil
}

// GetWallet returns the user's balance and full ledger history.
func (s *WalletService) GetWallet(userID int64) (*dto.WalletSummary, error) {
	balance, err := s.walletRepo.SumByUser(userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.walletRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.LedgerEntryInfo, 0, len(entries))
	for i := range entries {
		infos = append(infos, *ledgerEntryInfo(&entries[i]))
	}

	return &dto.WalletSummary{BalanceBs: balance, Entries: infos}, nil
}

func ledgerEntryInfo(entry *model.WalletLedger) *dto.LedgerEntryInfo {
	return &dto.LedgerEntryInfo{
		ID:            entry.ID,
		Type:          entry.Type,
		AmountBs:      entry.AmountBs,
		ReferralLevel: entry.ReferralLevel,
		Description:   entry.Description,
		CreatedAt:     entry.CreatedAt,
	}
}
