package userfile

import (
	"context"

	domain "usdh/internal/domain/userfile"
)

// Store persists uploaded file metadata. Blob bytes live in the files adapter.
type Store interface {
	Create(ctx context.Context, f domain.File) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (domain.File, error)
	ListByOwner(ctx context.Context, userID int64, kind string) ([]domain.File, error)
	Folders(ctx context.Context, userID int64) ([]string, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
	CountByKind(ctx context.Context) (map[string]int, error)
}
