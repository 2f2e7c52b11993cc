package notify

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

func BookingConfirmation(b models.BookingRequest, employeeName, serviceName string) EmailMessage {
	when := fmt.Sprintf("%s at %s", b.Date.Format(models.DateLayout), b.StartTime)
	return EmailMessage{
		To:      b.Email,
		ToName:  b.Name,
		Subject: "Your appointment is confirmed",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour appointment for %s with %s is booked for %s.\n",
			b.Name, serviceName, employeeName, when,
		),
	}
}

func VerificationCode(email, code string) EmailMessage {
	return EmailMessage{
		To:      email,
		Subject: "Your verification code",
		Body:    fmt.Sprintf("Your verification code is %s.\n", code),
	}
}

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func ContactForward(inbox string, m ContactMessage) EmailMessage {
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		subject = "New contact message"
	}
	return EmailMessage{
		To:      inbox,
		Subject: subject,
		ReplyTo: m.Email,
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", m.Name, m.Email, m.Message),
	}
}
