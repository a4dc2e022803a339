package dto

import "time"

type CreatePurchaseRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}

type PurchaseInfo struct {
	ID            int64      `json:"id"`
	PackageLevel  int        `json:"package_level"`
	PackageName   string     `json:"package_name,omitempty"`
	InvestmentBs  float64    `json:"investment_bs"`
	DailyProfitBs float64    `json:"daily_profit_bs"`
	Status        string     `json:"status"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ApproveResult reports the outcome of an admin approval, including
// any TikTok bonus converted on a first activation.
type ApproveResult struct {
	Message       string  `json:"message"`
	TikTokBonusBs float64 `json:"tiktok_bonus_bs"`
}

type RejectResult struct {
	Message string `json:"message"`
}
