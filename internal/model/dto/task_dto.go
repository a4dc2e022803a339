package dto

// TaskStatus mirrors the TikTok task widget: tasks accumulate a bonus
// until the user activates their first VIP package.
type TaskStatus struct {
	HasVip         bool    `json:"has_vip"`
	TasksCompleted int     `json:"tasks_completed"`
	TotalEarnedBs  float64 `json:"total_earned_bs"`
	NextTask       *string `json:"next_task"`
	IsComplete     bool    `json:"is_complete"`
}

type CompleteTaskResult struct {
	Message       string  `json:"message"`
	AmountBs      float64 `json:"amount_bs"`
	TotalEarnedBs float64 `json:"total_earned_bs"`
}
