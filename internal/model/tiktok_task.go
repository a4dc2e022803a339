package model

import (
	"time"
)

// TikTok task types, completed in this order.
const (
	TaskFollow  = "FOLLOW"
	TaskLike    = "LIKE"
	TaskComment = "COMMENT"
	TaskShare   = "SHARE"
)

// TaskOrder lists the task types in completion order.
var TaskOrder = []string{TaskFollow, TaskLike, TaskComment, TaskShare}

// TikTokTask rows exist only before a user's first VIP activation;
// they are converted into one TIKTOK_BONUS ledger entry and deleted
// when the first purchase is approved.
type TikTokTask struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	TaskType  string    `gorm:"size:20;not null" json:"task_type"`
	AmountBs  float64   `gorm:"type:decimal(12,2);not null" json:"amount_bs"`
	CreatedAt time.Time `json:"created_at"`
}

func (TikTokTask) TableName() string {
	return "tiktok_tasks"
}
