package certificate

import (
	"context"

	domain "usdh/internal/domain/certificate"
)

// Store persists certificates.
type Store interface {
	Create(ctx context.Context, c domain.Certificate) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (domain.Certificate, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Certificate, error)
	ListByIDs(ctx context.Context, userID int64, ids []int64) ([]domain.Certificate, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
	Count(ctx context.Context) (int, error)
}
