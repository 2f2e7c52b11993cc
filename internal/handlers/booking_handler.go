package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/dto"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-api/internal/usecase/verification"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingHandler struct {
	book     *booking.BookAppointment
	sendCode *verification.SendCode
	verify   *verification.VerifyCode
}

func NewBookingHandler(
	book *booking.BookAppointment,
	sendCode *verification.SendCode,
	verify *verification.VerifyCode,
) *BookingHandler {
	return &BookingHandler{book: book, sendCode: sendCode, verify: verify}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type BookAppointmentRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:mm
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type SendCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

////////////////////////////////////////////////////////
// BOOK
////////////////////////////////////////////////////////

func (h *BookingHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	start, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Start time must be HH:mm.")
		return
	}

	b, err := h.book.Execute(c.Request.Context(), booking.BookAppointmentInput{
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       date,
		StartTime:  start,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		// committed, only the confirmation failed
		var be httperr.BusinessError
		if b != nil && errors.As(err, &be) {
			c.JSON(httperr.StatusFor(err), gin.H{
				"error_code": be.Code,
				"message":    be.Message,
				"booking":    dto.BookingFrom(*b),
			})
			_ = c.Error(err)
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking": dto.BookingFrom(*b),
	})
}

////////////////////////////////////////////////////////
// VERIFICATION
////////////////////////////////////////////////////////

func (h *BookingHandler) SendVerificationCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.sendCode.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent."})
}

func (h *BookingHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.verify.Execute(c.Request.Context(), verification.VerifyCodeInput{
		Email: req.Email,
		Code:  req.Code,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}
