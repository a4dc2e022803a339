package repository

import (
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) Create(task *model.TikTokTask) error {
	return r.db.Create(task).Error
}

func (r *TaskRepository) ListByUser(userID int64) ([]model.TikTokTask, error) {
	var tasks []model.TikTokTask
	err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.TikTokTask{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteByUser removes all of a user's task rows after conversion.
func (r *TaskRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.TikTokTask{}).Error
}
