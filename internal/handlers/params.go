package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// pathID reads a positive integer path parameter. On failure it has
// already written the 400.
func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		httperr.BadRequest(c, "missing_"+name, name+" is required")
		return 0, false
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// pageParams reads page and limit, falling back to page 1 and def when they
// are missing or out of range.
func pageParams(c *gin.Context, def, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > maxLimit {
		limit = def
	}
	return page, limit
}
