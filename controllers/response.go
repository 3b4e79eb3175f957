package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-api/pkg/apperrors"
)

// respondError writes the uniform failure envelope. Internal details stay
// inside the wrapped error and are never sent to the client.
func respondError(c *gin.Context, err *apperrors.Error) {
	c.JSON(err.Code, gin.H{"success": false, "message": err.Message})
}

// parsePagination extracts page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	const maxLimit = 100

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
