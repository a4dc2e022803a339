package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type ProfitHandler struct {
	profitService *service.ProfitService
}

func NewProfitHandler(profitService *service.ProfitService) *ProfitHandler {
	return &ProfitHandler{
		profitService: profitService,
	}
}

// Status reports whether the daily-profit gate is open
// GET /api/v1/profit/status
func (h *ProfitHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.profitService.Status(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// Activate claims the daily profit of all active purchases
// POST /api/v1/profit/activate
func (h *ProfitHandler) Activate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	result, err := h.profitService.Activate(c.Request.Context(), userID)
	if err != nil {
		var locked *service.ProfitLockedError
		switch {
		case errors.As(err, &locked):
			response.ErrorWithData(c, response.CodeProfitLocked, locked.Error(), dto.ProfitStatus{
				CanActivate:    false,
				NextEligibleAt: &locked.NextEligibleAt,
			})
		case errors.Is(err, service.ErrNoActiveVip):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "ganancias activadas", result)
}
