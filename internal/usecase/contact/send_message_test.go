package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/notify"
)

func TestSendMessage(t *testing.T) {
	sender := notify.NewStubEmailSender(zerolog.Nop())
	uc := NewSendMessage(sender, "inbox@shop.example")

	require.NoError(t, uc.Execute(context.Background(), SendMessageInput{
		Name: "Ana", Email: "ana@example.com", Subject: "Hours", Message: "Open on Sunday?",
	}))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "inbox@shop.example", sent[0].To)
	assert.Equal(t, "ana@example.com", sent[0].ReplyTo)
	assert.Equal(t, "Hours", sent[0].Subject)
}

func TestSendMessageErrors(t *testing.T) {
	sender := notify.NewStubEmailSender(zerolog.Nop())
	uc := NewSendMessage(sender, "inbox@shop.example")

	err := uc.Execute(context.Background(), SendMessageInput{Email: "bad", Message: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))

	err = uc.Execute(context.Background(), SendMessageInput{Email: "a@b.co", Message: "  "})
	assert.True(t, httperr.IsBusiness(err, "message_required"))

	sender.Err = errors.New("down")
	err = uc.Execute(context.Background(), SendMessageInput{Email: "a@b.co", Message: "hi"})
	assert.True(t, httperr.IsBusiness(err, "notification_failed"))
}
