// Package email delivers transactional mail such as the signup welcome.
package email

import (
	"context"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      []string
	From    string // overrides the sender default when set
	Subject string
	HTML    string
	ReplyTo string
}

// Receipt is what the provider reports after accepting a message.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers messages through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
