package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type WithdrawalHandler struct {
	withdrawalService *service.WithdrawalService
}

func NewWithdrawalHandler(withdrawalService *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Create requests a withdrawal
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.withdrawalService.Request(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			response.InsufficientFundsError(c, "")
		case errors.Is(err, service.ErrBelowMinimum):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "solicitud de retiro registrada", info)
}

// List returns the current user's withdrawals
// GET /api/v1/withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	infos, err := h.withdrawalService.ListByUser(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}

// ListPending lists withdrawals awaiting review
// GET /api/v1/admin/withdrawals/pending
func (h *WithdrawalHandler) ListPending(c *gin.Context) {
	infos, err := h.withdrawalService.ListPending()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}

// Approve marks a withdrawal as paid
// POST /api/v1/admin/withdrawals/:id/approve
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	withdrawalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	info, err := h.withdrawalService.Approve(c.Request.Context(), withdrawalID)
	if err != nil {
		h.resolveError(c, err)
		return
	}

	response.SuccessWithMessage(c, "retiro pagado", info)
}

// Reject refuses a withdrawal and refunds the amount
// POST /api/v1/admin/withdrawals/:id/reject
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	withdrawalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	info, err := h.withdrawalService.Reject(c.Request.Context(), withdrawalID)
	if err != nil {
		h.resolveError(c, err)
		return
	}

	response.SuccessWithMessage(c, "retiro rechazado y reembolsado", info)
}

func (h *WithdrawalHandler) resolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWithdrawalNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrWithdrawalResolved):
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
