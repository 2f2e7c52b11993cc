package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/usecase/contact"
)

type ContactHandler struct {
	send *contact.SendMessage
}

func NewContactHandler(send *contact.SendMessage) *ContactHandler {
	return &ContactHandler{send: send}
}

type SendMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.send.Execute(c.Request.Context(), contact.SendMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent."})
}
