package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// uintParam reads a positive numeric path parameter. On failure it has
// already written the 400.
func uintParam(c *gin.Context, name, code string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, code, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

// actorID is the authenticated employee, for audit entries.
func actorID(c *gin.Context) *uint {
	id, ok := middleware.EmployeeID(c)
	if !ok {
		return nil
	}
	return &id
}

// optionalDate parses ?<name>=YYYY-MM-DD; a missing value yields nil.
func optionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}
