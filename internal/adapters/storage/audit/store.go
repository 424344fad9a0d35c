package audit

import (
	"context"

	domain "usdh/internal/domain/audit"
)

// Filter narrows Recent. Zero values match everything.
type Filter struct {
	Entity  string
	ActorID int64
}

// Store persists the admin activity log.
type Store interface {
	// Save appends an event.
	// POST: Returns the new event id
	Save(ctx context.Context, event domain.Event) (int64, error)

	// Recent returns at most limit events matching filter, newest first.
	// PRE: limit > 0
	Recent(ctx context.Context, filter Filter, limit int) ([]domain.Event, error)
}
