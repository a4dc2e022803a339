package dto

import "time"

// ProfitStatus tells a user whether the daily-profit gate is open and,
// if not, when it opens again.
type ProfitStatus struct {
	CanActivate    bool       `json:"can_activate"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

type ActivateProfitResult struct {
	TotalCreditedBs float64   `json:"total_profit"`
	NextEligibleAt  time.Time `json:"next_eligible_at"`
}
