package account

import (
	"context"

	domain "usdh/internal/domain/account"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (int64, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
