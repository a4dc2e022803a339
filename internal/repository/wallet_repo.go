package repository

import (
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

// Append inserts a ledger entry. Entries are never updated or deleted.
func (r *WalletRepository) Append(entry *model.WalletLedger) error {
	return r.db.Create(entry).Error
}

func (r *WalletRepository) ListByUser(userID int64) ([]model.WalletLedger, error) {
	var entries []model.WalletLedger
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&entries).Error
	return entries, err
}

func (r *WalletRepository) ListByUserAndTypes(userID int64, types []string) ([]model.WalletLedger, error) {
	var entries []model.WalletLedger
	err := r.db.Where("user_id = ? AND type IN ?", userID, types).
		Order("created_at desc").Find(&entries).Error
	return entries, err
}

// SumByUser returns the user's balance: the signed sum of all entries.
func (r *WalletRepository) SumByUser(userID int64) (float64, error) {
	var total float64
	err := r.db.Model(&model.WalletLedger{}).
		Select("COALESCE(SUM(amount_bs), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *WalletRepository) SumByUserAndType(userID int64, entryType string) (float64, error) {
	var total float64
	err := r.db.Model(&model.WalletLedger{}).
		Select("COALESCE(SUM(amount_bs), 0)").
		Where("user_id = ? AND type = ?", userID, entryType).
		Scan(&total).Error
	return total, err
}

// SumReferralByLevel groups REFERRAL_BONUS totals by upline level.
func (r *WalletRepository) SumReferralByLevel(userID int64) (map[int]float64, error) {
	var rows []struct {
		ReferralLevel int
		Total         float64
	}
	err := r.db.Model(&model.WalletLedger{}).
		Select("referral_level, COALESCE(SUM(amount_bs), 0) as total").
		Where("user_id = ? AND type = ?", userID, model.LedgerReferralBonus).
		Group("referral_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byLevel := make(map[int]float64, len(rows))
	for _, row := range rows {
		byLevel[row.ReferralLevel] = row.Total
	}
	return byLevel, nil
}

// CountProfitDays counts distinct calendar days with a DAILY_PROFIT
// credit. DATE() works on both mysql and sqlite.
func (r *WalletRepository) CountProfitDays(userID int64) (int64, error) {
	var days int64
	err := r.db.Model(&model.WalletLedger{}).
		Select("COUNT(DISTINCT DATE(created_at))").
		Where("user_id = ? AND type = ?", userID, model.LedgerDailyProfit).
		Scan(&days).Error
	return days, err
}

func (r *WalletRepository) ExistsByUserAndType(userID int64, entryType string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WalletLedger{}).
		Where("user_id = ? AND type = ?", userID, entryType).
		Count(&count).Error
	return count > 0, err
}
