package api

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// pageParams reads ?page and ?limit; missing or invalid values fall back to the defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page = positiveQuery(c, "page", defaultPage)
	limit = positiveQuery(c, "limit", defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func positiveQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func skipFor(page, limit int) int {
	return (page - 1) * limit
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
