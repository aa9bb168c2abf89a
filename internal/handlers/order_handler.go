package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/middleware"
	"github.com/juliomeza/sales-orders-system-sub001/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
	statsService services.StatsService
	log          *logger.Logger
	production   bool
}

func NewOrderHandler(orderService services.OrderService, statsService services.StatsService, log *logger.Logger, production bool) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		statsService: statsService,
		log:          log.With("handler", "OrderHandler"),
		production:   production,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	identity := middleware.GetIdentity(c)
	order, err := h.orderService.Create(c.Request.Context(), req, identity)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	query := services.OrderListQuery{Page: page, Limit: limit}

	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be an integer"})
			return
		}
		query.Status = &status
	}
	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be a valid date (YYYY-MM-DD)"})
			return
		}
		query.FromDate = &from
	}
	if raw := c.Query("toDate"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must be a valid date (YYYY-MM-DD)"})
			return
		}
		// Include the whole end day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		query.ToDate = &to
	}

	identity := middleware.GetIdentity(c)
	orders, total, err := h.orderService.List(c.Request.Context(), query, identity)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": newPagination(total, page, limit),
	})
}

func (h *OrderHandler) Stats(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	stats, err := h.statsService.GetOrderStats(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	identity := middleware.GetIdentity(c)
	order, svcErr := h.orderService.GetByID(c.Request.Context(), uint(id), identity)
	if svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	identity := middleware.GetIdentity(c)
	order, svcErr := h.orderService.Update(c.Request.Context(), uint(id), req, identity)
	if svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	identity := middleware.GetIdentity(c)
	if svcErr := h.orderService.Delete(c.Request.Context(), uint(id), identity); svcErr != nil {
		respondError(c, h.log, h.production, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}
