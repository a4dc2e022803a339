package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

// EarningsService is the read side of the wallet: every figure is
// re-derived from the ledger on each call so the breakdown can never
// drift from the authoritative total.
type EarningsService struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

func NewEarningsService(
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
) *EarningsService {
	return &EarningsService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
	}
}

// GetBreakdown assembles the full earnings report for a user. The
// category figures and TotalEarningsBs are computed independently and
// always reconcile because both come from the same ledger rows.
func (s *EarningsService) GetBreakdown(userID int64) (*dto.EarningsBreakdown, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	dailyTotal, err := s.walletRepo.SumByUserAndType(userID, model.LedgerDailyProfit)
	if err != nil {
		return nil, err
	}
	days, err := s.walletRepo.CountProfitDays(userID)
	if err != nil {
		return nil, err
	}

	adjustmentEntries, err := s.walletRepo.ListByUserAndTypes(userID,
		[]string{model.LedgerAbonado, model.LedgerDescuento})
	if err != nil {
		return nil, err
	}
	adjustmentItems := make([]dto.AdjustmentItem, 0, len(adjustmentEntries))
	var adjustmentTotal float64
	for _, entry := range adjustmentEntries {
		adjustmentItems = append(adjustmentItems, dto.AdjustmentItem{
			Type:        entry.Type,
			AmountBs:    entry.AmountBs,
			Description: entry.Description,
			CreatedAt:   entry.CreatedAt,
		})
		adjustmentTotal += entry.AmountBs
	}

	referralByLevel, err := s.walletRepo.SumReferralByLevel(userID)
	if err != nil {
		return nil, err
	}
	var referralTotal float64
	for _, amount := range referralByLevel {
		referralTotal += amount
	}

	tiktokTotal, err := s.walletRepo.SumByUserAndType(userID, model.LedgerTikTokBonus)
	if err != nil {
		return nil, err
	}

	withdrawalsTotal, err := s.walletRepo.SumByUserAndType(userID, model.LedgerWithdrawal)
	if err != nil {
		return nil, err
	}

	totalEarnings, err := s.walletRepo.SumByUser(userID)
	if err != nil {
		return nil, err
	}

	return &dto.EarningsBreakdown{
		DailyProfit: dto.DailyProfitSummary{TotalBs: dailyTotal, Days: days},
		Adjustments: dto.AdjustmentSummary{Items: adjustmentItems, TotalBs: adjustmentTotal},
		ReferralBonus: dto.ReferralSummary{
			ByLevel: referralByLevel,
			TotalBs: referralTotal,
		},
		TikTokBonusBs:   tiktokTotal,
		WithdrawalsBs:   withdrawalsTotal,
		TotalEarningsBs: totalEarnings,
	}, nil
}
