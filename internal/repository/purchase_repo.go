package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *PurchaseRepository) WithTx(tx *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: tx}
}

func (r *PurchaseRepository) Create(purchase *model.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *PurchaseRepository) GetByID(id int64) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Where("id = ?", id).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) ListByUser(userID int64) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) ListActiveByUser(userID int64) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("user_id = ? AND status = ?", userID, model.PurchaseStatusActive).
		Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) CountActiveByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND status = ?", userID, model.PurchaseStatusActive).
		Count(&count).Error
	return count, err
}

func (r *PurchaseRepository) ListByStatus(status string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("status = ?", status).Order("created_at asc").Find(&purchases).Error
	return purchases, err
}

// ListPendingOlderThan returns PENDING purchases created before cutoff,
// used by the stale-purchase sweep.
func (r *PurchaseRepository) ListPendingOlderThan(cutoff time.Time) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("status = ? AND created_at < ?", model.PurchaseStatusPending, cutoff).
		Find(&purchases).Error
	return purchases, err
}

// Activate transitions a purchase PENDING → ACTIVE. The status guard in
// the WHERE clause makes the transition a compare-and-swap: it reports
// whether this call won the transition, so a concurrent approve can
// never apply side effects twice.
func (r *PurchaseRepository) Activate(id int64, now time.Time) (bool, error) {
	res := r.db.Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.PurchaseStatusPending).
		Updates(map[string]interface{}{
			"status":         model.PurchaseStatusActive,
			"activated_at":   now,
			"last_profit_at": now,
		})
	return res.RowsAffected > 0, res.Error
}

// Reject transitions a purchase PENDING → REJECTED, same CAS semantics
// as Activate.
func (r *PurchaseRepository) Reject(id int64) (bool, error) {
	res := r.db.Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.PurchaseStatusPending).
		Update("status", model.PurchaseStatusRejected)
	return res.RowsAffected > 0, res.Error
}

// StampProfit advances last_profit_at on every ACTIVE purchase of the
// user whose previous stamp is at or before cutoff. Returns the number
// of rows stamped; a concurrent claim that already stamped them makes
// this zero for the loser.
func (r *PurchaseRepository) StampProfit(userID int64, cutoff, now time.Time) (int64, error) {
	res := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND status = ? AND last_profit_at <= ?",
			userID, model.PurchaseStatusActive, cutoff).
		Update("last_profit_at", now)
	return res.RowsAffected, res.Error
}

// MaxLastProfitAt returns the most recent profit stamp across the
// user's ACTIVE purchases, or nil when the user has none.
func (r *PurchaseRepository) MaxLastProfitAt(userID int64) (*time.Time, error) {
	var result struct {
		Max *time.Time
	}
	err := r.db.Model(&model.Purchase{}).
		Select("MAX(last_profit_at) as max").
		Where("user_id = ? AND status = ?", userID, model.PurchaseStatusActive).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result.Max, nil
}
