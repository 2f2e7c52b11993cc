package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if raw := c.Query("employee_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			v := uint(id)
			f.EmployeeID = &v
		}
	}

	if from, err := models.ParseDate(c.Query("from")); err == nil {
		f.From = &from
	}

	if to, err := models.ParseDate(c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
