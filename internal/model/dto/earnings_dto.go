package dto

import "time"

// EarningsBreakdown is derived entirely from the wallet ledger and
// purchase state on each request; nothing here is cached.
type EarningsBreakdown struct {
	DailyProfit     DailyProfitSummary  `json:"daily_profit"`
	Adjustments     AdjustmentSummary   `json:"adjustments"`
	ReferralBonus   ReferralSummary     `json:"referral_bonus"`
	TikTokBonusBs   float64             `json:"tiktok_bonus_bs"`
	WithdrawalsBs   float64             `json:"withdrawals_bs"`
	TotalEarningsBs float64             `json:"total_earnings_bs"`
}

type DailyProfitSummary struct {
	TotalBs float64 `json:"total_bs"`
	Days    int64   `json:"days"`
}

type AdjustmentSummary struct {
	Items   []AdjustmentItem `json:"items"`
	TotalBs float64          `json:"total_bs"`
}

type AdjustmentItem struct {
	Type        string    `json:"type"`
	AmountBs    float64   `json:"amount_bs"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReferralSummary struct {
	ByLevel map[int]float64 `json:"by_level"`
	TotalBs float64         `json:"total_bs"`
}
