package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Status returns the user's TikTok task progress
// GET /api/v1/tasks
func (h *TaskHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.taskService.Status(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// Complete records the next task completion
// POST /api/v1/tasks/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	result, err := h.taskService.Complete(userID)
	if err != nil {
		if errors.Is(err, service.ErrTasksNotAvailable) || errors.Is(err, service.ErrTasksComplete) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}
