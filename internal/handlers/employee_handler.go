package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/dto"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/httpresp"
	"github.com/BruksfildServices01/booking-api/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-api/internal/usecase/staff"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	list            *staff.ListEmployees
	get             *staff.GetEmployee
	remove          *staff.DeleteEmployee
	listServices    *staff.ListServices
	replaceServices *staff.ReplaceServices
	listBookings    *booking.ListBookings
	imageURL        func(string) string
}

type EmployeeHandlerDeps struct {
	List            *staff.ListEmployees
	Get             *staff.GetEmployee
	Delete          *staff.DeleteEmployee
	ListServices    *staff.ListServices
	ReplaceServices *staff.ReplaceServices
	ListBookings    *booking.ListBookings
	ImageURL        func(string) string
}

func NewEmployeeHandler(deps EmployeeHandlerDeps) *EmployeeHandler {
	return &EmployeeHandler{
		list:            deps.List,
		get:             deps.Get,
		remove:          deps.Delete,
		listServices:    deps.ListServices,
		replaceServices: deps.ReplaceServices,
		listBookings:    deps.ListBookings,
		imageURL:        deps.ImageURL,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name              string `json:"name"`
	DurationInMinutes int    `json:"duration_in_minutes"`
}

// ======================================================
// EMPLOYEES
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.EmployeeFrom(e, h.imageURL))
	}
	httpresp.List(c, out)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	emp, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.EmployeeFrom(*emp, h.imageURL))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, actorID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// SERVICES
// ======================================================

func (h *EmployeeHandler) ListServices(c *gin.Context) {
	id, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	services, err := h.listServices.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.ServicesFrom(services))
}

// ReplaceServices swaps the employee's whole service list.
func (h *EmployeeHandler) ReplaceServices(c *gin.Context) {
	id, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	var req []ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := make([]staff.ServiceInput, 0, len(req))
	for _, s := range req {
		in = append(in, staff.ServiceInput{Name: s.Name, DurationInMinutes: s.DurationInMinutes})
	}

	services, err := h.replaceServices.Execute(c.Request.Context(), id, in, actorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.ServicesFrom(services))
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *EmployeeHandler) ListBookings(c *gin.Context) {
	id, ok := uintParam(c, "employeeId", "invalid_employee_id")
	if !ok {
		return
	}

	bookings, err := h.listBookings.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.BookingsFrom(bookings))
}
