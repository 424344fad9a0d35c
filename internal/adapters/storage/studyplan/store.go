package studyplan

import (
	"context"

	domain "usdh/internal/domain/studyplan"
)

// Store persists saved study plans.
type Store interface {
	Create(ctx context.Context, p domain.Plan) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (domain.Plan, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Plan, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
	Count(ctx context.Context) (int, error)
}
