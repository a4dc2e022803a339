package service

import (
	"errors"
	"fmt"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

var (
	ErrTasksNotAvailable = errors.New("las tareas ya no están disponibles")
	ErrTasksComplete     = errors.New("ya completaste todas las tareas")
)

// TaskService manages the pre-VIP TikTok tasks. Tasks only accumulate
// while the user has no ACTIVE purchase; conversion into a ledger entry
// happens exclusively in the purchase activation.
type TaskService struct {
	purchaseRepo *repository.PurchaseRepository
	taskRepo     *repository.TaskRepository
	cfg          *config.Config
}

func NewTaskService(
	purchaseRepo *repository.PurchaseRepository,
	taskRepo *repository.TaskRepository,
	cfg *config.Config,
) *TaskService {
	return &TaskService{
		purchaseRepo: purchaseRepo,
		taskRepo:     taskRepo,
		cfg:          cfg,
	}
}

// Status returns the user's task progress, or a completed marker once
// a VIP is active.
func (s *TaskService) Status(userID int64) (*dto.TaskStatus, error) {
	activeCount, err := s.purchaseRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if activeCount > 0 {
		return &dto.TaskStatus{HasVip: true, IsComplete: true}, nil
	}

	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	var totalEarned float64
	for _, task := range tasks {
		totalEarned += task.AmountBs
	}

	status := &dto.TaskStatus{
		TasksCompleted: len(tasks),
		TotalEarnedBs:  totalEarned,
		IsComplete:     len(tasks) >= len(model.TaskOrder),
	}
	if !status.IsComplete {
		next := model.TaskOrder[len(tasks)]
		status.NextTask = &next
	}
	return status, nil
}

// Complete records the next task in order and accrues its bonus.
func (s *TaskService) Complete(userID int64) (*dto.CompleteTaskResult, error) {
	activeCount, err := s.purchaseRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if activeCount > 0 {
		return nil, ErrTasksNotAvailable
	}

	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) >= len(model.TaskOrder) {
		return nil, ErrTasksComplete
	}

	var totalEarned float64
	for _, task := range tasks {
		totalEarned += task.AmountBs
	}

	amount := s.cfg.TikTok.BonusPerTaskBs
	if max := s.cfg.TikTok.MaxBonusBs; max > 0 && totalEarned+amount > max {
		amount = max - totalEarned
	}
	if amount <= 0 {
		return nil, ErrTasksComplete
	}

	task := &model.TikTokTask{
		UserID:   userID,
		TaskType: model.TaskOrder[len(tasks)],
		AmountBs: amount,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return &dto.CompleteTaskResult{
		Message:       fmt.Sprintf("+Bs %.2f acumulados", amount),
		AmountBs:      amount,
		TotalEarnedBs: totalEarned + amount,
	}, nil
}
