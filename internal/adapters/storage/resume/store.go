package resume

import (
	"context"

	domain "usdh/internal/domain/resume"
)

// Store persists the resume download history.
type Store interface {
	Create(ctx context.Context, d domain.Download) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (domain.Download, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Download, error)
	Count(ctx context.Context) (int, error)
}
