package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseID reads the numeric :id route param.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// paginate applies optional limit/offset query params to a list query.
func paginate(c *gin.Context, q *gorm.DB) *gorm.DB {
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q = q.Limit(limit)
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
