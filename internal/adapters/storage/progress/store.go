package progress

import (
	"context"
	"time"

	domain "usdh/internal/domain/progress"
)

// Store persists per-user course progress.
type Store interface {
	Start(ctx context.Context, userID, courseID int64, now time.Time) error
	Complete(ctx context.Context, userID, courseID int64, now time.Time) error
	Get(ctx context.Context, userID, courseID int64) (domain.Progress, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Progress, error)
}
