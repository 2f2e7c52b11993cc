package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/dto"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/httpresp"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	set    *schedule.SetAvailableHours
	list   *schedule.ListAvailableHours
	remove *schedule.DeleteSegment
}

func NewScheduleHandler(
	set *schedule.SetAvailableHours,
	list *schedule.ListAvailableHours,
	remove *schedule.DeleteSegment,
) *ScheduleHandler {
	return &ScheduleHandler{set: set, list: list, remove: remove}
}

// ======================================================
// REQUESTS
// ======================================================

type SetAvailableHoursRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime       string `json:"start_time" binding:"required"`
	LunchBreakStart string `json:"lunch_break_start" binding:"required"`
	LunchBreakEnd   string `json:"lunch_break_end" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
}

func (r SetAvailableHoursRequest) workingHours() (domain.WorkingHours, error) {
	var (
		wh  domain.WorkingHours
		err error
	)
	if wh.StartTime, err = models.ParseTimeOfDay(r.StartTime); err != nil {
		return wh, err
	}
	if wh.LunchBreakStart, err = models.ParseTimeOfDay(r.LunchBreakStart); err != nil {
		return wh, err
	}
	if wh.LunchBreakEnd, err = models.ParseTimeOfDay(r.LunchBreakEnd); err != nil {
		return wh, err
	}
	if wh.EndTime, err = models.ParseTimeOfDay(r.EndTime); err != nil {
		return wh, err
	}
	return wh, nil
}

// ======================================================
// AVAILABLE HOURS
// ======================================================

func (h *ScheduleHandler) SetAvailableHours(c *gin.Context) {
	employeeID, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	var req SetAvailableHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	wh, err := req.workingHours()
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Times must be HH:mm.")
		return
	}

	segments, err := h.set.Execute(c.Request.Context(), schedule.SetAvailableHoursInput{
		EmployeeID: employeeID,
		ServiceID:  req.ServiceID,
		Date:       date,
		Hours:      wh,
		ActorID:    actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":  dto.AvailableHoursFrom(segments),
		"total": len(segments),
	})
}

// ListAvailableHours returns every segment of the employee's services,
// optionally narrowed by ?date=YYYY-MM-DD.
func (h *ScheduleHandler) ListAvailableHours(c *gin.Context) {
	employeeID, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}

	segments, err := h.list.Execute(c.Request.Context(), schedule.ListAvailableHoursInput{
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AvailableHoursFrom(segments))
}

func (h *ScheduleHandler) DeleteAvailableHour(c *gin.Context) {
	hourID, ok := uintParam(c, "hourId", "invalid_hour_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), schedule.DeleteSegmentInput{
		SegmentID: hourID,
		ActorID:   actorID(c),
	}); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
