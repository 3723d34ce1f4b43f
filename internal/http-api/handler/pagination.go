package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds the list-endpoint page defaults from configuration.
type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

// parse reads page and page_size query parameters, falling back to the
// configured defaults on absent or out-of-range values.
func (p Pagination) parse(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = p.DefaultPageSize

	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if v := c.Query("page_size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= p.MaxPageSize {
			pageSize = parsed
		}
	}
	return page, pageSize
}
