package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// Create requests a VIP package purchase
// POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.purchaseService.Create(userID, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPackageDisabled):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "compra registrada, pendiente de aprobación", info)
}

// List returns the user's purchases
// GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	infos, err := h.purchaseService.ListByUser(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, infos)
}
