// Package scan checks uploads for malware before they are stored.
package scan

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dutchcoders/go-clamd"

	"usdh/internal/domain/apperr"
)

// ErrInfected is returned when the scanner flags an upload.
var ErrInfected = apperr.Validation("file rejected by virus scan")

// Scanner inspects upload bytes.
type Scanner interface {
	Scan(ctx context.Context, data []byte) error
}

// Noop accepts every upload. Used when no clamd address is configured.
type Noop struct{}

// Scan always succeeds.
func (Noop) Scan(context.Context, []byte) error { return nil }

// Clamd streams uploads to a clamd daemon.
type Clamd struct {
	client *clamd.Clamd
}

// NewClamd returns a scanner for the daemon at addr (e.g. tcp://localhost:3310).
func NewClamd(addr string) *Clamd {
	return &Clamd{client: clamd.NewClamd(addr)}
}

// Scan returns ErrInfected if clamd reports anything but OK.
func (c *Clamd) Scan(ctx context.Context, data []byte) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := c.client.ScanStream(bytes.NewReader(data), abort)
	if err != nil {
		return apperr.Storage("clamd scan", fmt.Errorf("scan stream: %w", err))
	}
	for {
		select {
		case <-ctx.Done():
			return apperr.Storage("clamd scan", ctx.Err())
		case result, ok := <-results:
			if !ok {
				return nil
			}
			if result.Status != clamd.RES_OK {
				return ErrInfected
			}
		}
	}
}
