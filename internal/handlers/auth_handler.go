package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	log         *logger.Logger
	production  bool
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With("handler", "AuthHandler"),
		production:  production,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
