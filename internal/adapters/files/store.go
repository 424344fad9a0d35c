// Package files stores uploaded blobs under per-user keys such as
// documents/<user_id>/<file>. Metadata rows live in SQLite; this package
// only moves bytes.
package files

import (
	"context"

	"usdh/internal/domain/apperr"
)

// ErrNotExist is returned when a key has no stored blob.
var ErrNotExist = apperr.NotFound("stored file not found")

// Store reads and writes blobs by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete returns ErrNotExist if the key was already gone.
	Delete(ctx context.Context, key string) error
}
