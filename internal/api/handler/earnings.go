package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type EarningsHandler struct {
	earningsService *service.EarningsService
}

func NewEarningsHandler(earningsService *service.EarningsService) *EarningsHandler {
	return &EarningsHandler{
		earningsService: earningsService,
	}
}

// Breakdown returns the full earnings report for the current user
// GET /api/v1/earnings
func (h *EarningsHandler) Breakdown(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	breakdown, err := h.earningsService.GetBreakdown(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, breakdown)
}
