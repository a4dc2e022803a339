package model

import (
	"time"
)

// Ledger entry types. AmountBs is signed: credits positive, debits negative.
const (
	LedgerDailyProfit   = "DAILY_PROFIT"
	LedgerReferralBonus = "REFERRAL_BONUS"
	LedgerAbonado       = "ABONADO"
	LedgerDescuento     = "DESCUENTO"
	LedgerTikTokBonus   = "TIKTOK_BONUS"
	LedgerWithdrawal    = "WITHDRAWAL"
)

// WalletLedger is append-only. The sum of a user's entries is the
// authoritative balance; no other column stores a total.
type WalletLedger struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Type          string    `gorm:"size:20;not null;index" json:"type"`
	AmountBs      float64   `gorm:"type:decimal(12,2);not null" json:"amount_bs"`
	ReferralLevel *int      `json:"referral_level,omitempty"`
	Description   string    `gorm:"size:255" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func (WalletLedger) TableName() string {
	return "wallet_ledger"
}
