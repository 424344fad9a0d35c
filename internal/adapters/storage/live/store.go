package live

import (
	"context"

	domain "usdh/internal/domain/live"
)

// Store persists live class links.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Class, error)
	ListByGrade(ctx context.Context, grade string) ([]domain.Class, error)
	Create(ctx context.Context, c domain.Class) (int64, error)
	Update(ctx context.Context, c domain.Class) error
	Delete(ctx context.Context, id int64) error
}
