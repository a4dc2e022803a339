package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type AdminPurchaseHandler struct {
	purchaseService *service.PurchaseService
}

func NewAdminPurchaseHandler(purchaseService *service.PurchaseService) *AdminPurchaseHandler {
	return &AdminPurchaseHandler{
		purchaseService: purchaseService,
	}
}

// ListPending lists purchases awaiting review
// GET /api/v1/admin/purchases/pending
func (h *AdminPurchaseHandler) ListPending(c *gin.Context) {
	purchases, err := h.purchaseService.ListPending()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, purchases)
}

// Approve activates a purchase and pays bonuses
// POST /api/v1/admin/purchases/:id/approve
func (h *AdminPurchaseHandler) Approve(c *gin.Context) {
	purchaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	result, err := h.purchaseService.Approve(c.Request.Context(), purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPurchaseRejected):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrTransactionFailed):
			response.ServerError(c, service.ErrTransactionFailed.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}

// Reject refuses a pending purchase
// POST /api/v1/admin/purchases/:id/reject
func (h *AdminPurchaseHandler) Reject(c *gin.Context) {
	purchaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	result, err := h.purchaseService.Reject(c.Request.Context(), purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPurchaseActive):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}
