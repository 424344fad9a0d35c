package resource

import (
	"context"

	domain "usdh/internal/domain/resource"
)

// Store persists e-resources.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.EResource, error)
	Create(ctx context.Context, e domain.EResource) (int64, error)
	Update(ctx context.Context, e domain.EResource) error
	Delete(ctx context.Context, id int64) error
}
