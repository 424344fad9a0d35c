package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoopSender logs messages instead of delivering them and keeps a copy of
// each one so tests can inspect what would have been sent.
type NoopSender struct {
	mu   sync.Mutex
	sent []Message
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send records msg without delivering it.
func (s *NoopSender) Send(_ context.Context, msg Message) (Receipt, error) {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	slog.Info("email_sent", "provider", "noop", "subject", msg.Subject)
	return Receipt{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// Sent returns a copy of every recorded message.
func (s *NoopSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
