package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a ResendSender with the given API key and default from address.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send sends a single email via Resend.
// PRE: msg has at least one recipient and a subject
// POST: Email is queued for delivery; returns the Resend message ID
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	from := msg.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("email_send_failed", "provider", "resend", "error", err, "subject", msg.Subject)
		return Receipt{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_sent", "provider", "resend", "message_id", sent.Id, "subject", msg.Subject)
	return Receipt{MessageID: sent.Id, SentAt: time.Now()}, nil
}
