package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
)

// Pagination is the envelope every list endpoint returns alongside rows.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(total int64, page, limit int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// respondError maps an engine error onto the HTTP taxonomy. Unexpected
// errors are logged and, outside production, their message is passed
// through to help debugging.
func respondError(c *gin.Context, log *logger.Logger, production bool, err error) {
	status := apperrors.StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("unexpected error", "path", c.FullPath(), "error", err)
		message := "internal server error"
		if !production {
			message = err.Error()
		}
		c.JSON(status, gin.H{"error": message})
		return
	}
	body := gin.H{"error": err.Error()}
	if details := apperrors.DetailsFor(err); len(details) > 0 {
		body["details"] = details
	}
	c.JSON(status, body)
}
