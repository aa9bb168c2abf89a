package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/middleware"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

// ReferenceHandler serves the read-only reference lists the order
// creation flow needs: carriers with their services, warehouses,
// materials and accounts.
type ReferenceHandler struct {
	refRepo    repository.ReferenceRepository
	log        *logger.Logger
	production bool
}

func NewReferenceHandler(refRepo repository.ReferenceRepository, log *logger.Logger, production bool) *ReferenceHandler {
	return &ReferenceHandler{
		refRepo:    refRepo,
		log:        log.With("handler", "ReferenceHandler"),
		production: production,
	}
}

func (h *ReferenceHandler) ListCarriers(c *gin.Context) {
	carriers, err := h.refRepo.ListCarriers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carriers": carriers})
}

func (h *ReferenceHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.refRepo.ListWarehouses(c.Request.Context())
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
}

func (h *ReferenceHandler) ListMaterials(c *gin.Context) {
	materials, err := h.refRepo.ListMaterials(c.Request.Context())
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// ListAccounts is tenant-scoped for clients; admins see every account.
func (h *ReferenceHandler) ListAccounts(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	var customerID *uint
	if !identity.IsAdmin() {
		customerID = identity.CustomerID
	}
	accounts, err := h.refRepo.ListAccounts(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
