package scheme

import (
	"context"

	domain "usdh/internal/domain/scheme"
)

// Store persists scholarship schemes.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Scheme, error)
	Create(ctx context.Context, s domain.Scheme) (int64, error)
	Update(ctx context.Context, s domain.Scheme) error
	Delete(ctx context.Context, id int64) error
}
