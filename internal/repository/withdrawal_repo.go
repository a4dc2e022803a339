package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *WithdrawalRepository) WithTx(tx *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: tx}
}

func (r *WithdrawalRepository) Create(withdrawal *model.Withdrawal) error {
	return r.db.Create(withdrawal).Error
}

func (r *WithdrawalRepository) GetByID(id int64) (*model.Withdrawal, error) {
	var withdrawal model.Withdrawal
	err := r.db.Where("id = ?", id).First(&withdrawal).Error
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func (r *WithdrawalRepository) ListByUser(userID int64) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&withdrawals).Error
	return withdrawals, err
}

func (r *WithdrawalRepository) ListByStatus(status string) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.db.Where("status = ?", status).Order("created_at asc").Find(&withdrawals).Error
	return withdrawals, err
}

// Resolve transitions a withdrawal PENDING → status with the same
// compare-and-swap guard used for purchases.
func (r *WithdrawalRepository) Resolve(id int64, status string, now time.Time) (bool, error) {
	res := r.db.Model(&model.Withdrawal{}).
		Where("id = ? AND status = ?", id, model.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": now,
		})
	return res.RowsAffected > 0, res.Error
}
