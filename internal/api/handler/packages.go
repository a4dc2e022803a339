package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

type PackageHandler struct {
	packageRepo *repository.PackageRepository
}

func NewPackageHandler(packageRepo *repository.PackageRepository) *PackageHandler {
	return &PackageHandler{
		packageRepo: packageRepo,
	}
}

// List returns the enabled VIP packages
// GET /api/v1/packages
func (h *PackageHandler) List(c *gin.Context) {
	pkgs, err := h.packageRepo.ListEnabled()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, pkgs)
}
