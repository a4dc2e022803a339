package model

import (
	"time"
)

// Purchase states. ACTIVE and REJECTED are terminal.
const (
	PurchaseStatusPending  = "PENDING"
	PurchaseStatusActive   = "ACTIVE"
	PurchaseStatusRejected = "REJECTED"
)

// Purchase snapshots the package amounts at purchase time so later
// package edits never change historical bonus or profit math.
type Purchase struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	UserID        int64      `gorm:"not null;index" json:"user_id"`
	PackageID     int64      `gorm:"not null" json:"package_id"`
	PackageLevel  int        `gorm:"not null" json:"package_level"`
	InvestmentBs  float64    `gorm:"type:decimal(12,2);not null" json:"investment_bs"`
	DailyProfitBs float64    `gorm:"type:decimal(12,2);not null" json:"daily_profit_bs"`
	Status        string     `gorm:"size:20;default:PENDING;index" json:"status"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	LastProfitAt  *time.Time `json:"last_profit_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
