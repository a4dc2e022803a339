package dto

import "time"

type AdjustWalletRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=ABONADO DESCUENTO"`
	AmountBs    float64 `json:"amount_bs" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required,max=255"`
}

type LedgerEntryInfo struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	AmountBs      float64   `json:"amount_bs"`
	ReferralLevel *int      `json:"referral_level,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

type WalletSummary struct {
	BalanceBs float64           `json:"balance_bs"`
	Entries   []LedgerEntryInfo `json:"entries"`
}
