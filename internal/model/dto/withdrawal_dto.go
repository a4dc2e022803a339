package dto

import "time"

type CreateWithdrawalRequest struct {
	AmountBs    float64 `json:"amount_bs" binding:"required,gt=0"`
	Method      string  `json:"method" binding:"required,max=20"`
	AccountInfo string  `json:"account_info" binding:"required,max=255"`
}

type WithdrawalInfo struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id,omitempty"`
	AmountBs    float64    `json:"amount_bs"`
	Method      string     `json:"method"`
	AccountInfo string     `json:"account_info"`
	Status      string     `json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
