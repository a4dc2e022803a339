package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/api/middleware"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/service"
)

type WalletHandler struct {
	walletService *service.WalletService
}

func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Get returns the current user's balance and ledger history
// GET /api/v1/wallet
func (h *WalletHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	summary, err := h.walletService.GetWallet(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, summary)
}

// Adjust applies a manual admin adjustment to a user's wallet
// POST /api/v1/admin/wallet/adjust
func (h *WalletHandler) Adjust(c *gin.Context) {
	var req dto.AdjustWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	entry, err := h.walletService.Adjust(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidAdjustmentType):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "ajuste aplicado", entry)
}
