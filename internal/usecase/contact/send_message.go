package contact

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/notify"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

type SendMessageInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type SendMessage struct {
	sender notify.EmailSender
	inbox  string
}

func NewSendMessage(sender notify.EmailSender, inbox string) *SendMessage {
	return &SendMessage{sender: sender, inbox: inbox}
}

// Execute forwards a visitor's message to the business inbox.
func (uc *SendMessage) Execute(ctx context.Context, in SendMessageInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if !validators.IsEmail(in.Email) {
		return httperr.Validation("invalid_email", "A valid email address is required.")
	}
	if in.Message == "" {
		return httperr.Validation("message_required", "Message is required.")
	}

	msg := notify.ContactForward(uc.inbox, notify.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err := uc.sender.Send(ctx, msg); err != nil {
		return httperr.Dependency("notification_failed", "The message could not be sent.", err)
	}
	return nil
}
