package model

import (
	"time"
)

const (
	WithdrawalStatusPending  = "PENDING"
	WithdrawalStatusPaid     = "PAID"
	WithdrawalStatusRejected = "REJECTED"
)

// Withdrawal requests debit the wallet ledger when created, so the
// ledger sum always reflects available balance. A rejected request
// is refunded with a compensating ABONADO entry.
type Withdrawal struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	AmountBs    float64    `gorm:"type:decimal(12,2);not null" json:"amount_bs"`
	Method      string     `gorm:"size:20;not null" json:"method"`
	AccountInfo string     `gorm:"size:255" json:"account_info"`
	Status      string     `gorm:"size:20;default:PENDING;index" json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
