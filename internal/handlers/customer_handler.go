package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/middleware"
	"github.com/juliomeza/sales-orders-system-sub001/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
	log             *logger.Logger
	production      bool
}

func NewCustomerHandler(customerService services.CustomerService, log *logger.Logger, production bool) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		log:             log.With("handler", "CustomerHandler"),
		production:      production,
	}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	identity := middleware.GetIdentity(c)
	customer, err := h.customerService.Create(c.Request.Context(), req, identity)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	query := services.CustomerListQuery{
		Keyword: c.Query("keyword"),
		Page:    page,
		Limit:   limit,
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be an integer"})
			return
		}
		query.Status = &status
	}
	customers, total, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	customer, svcErr := h.customerService.GetByID(c.Request.Context(), uint(id))
	if svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	identity := middleware.GetIdentity(c)
	customer, svcErr := h.customerService.Update(c.Request.Context(), uint(id), req, identity)
	if svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	if svcErr := h.customerService.Delete(c.Request.Context(), uint(id)); svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}
