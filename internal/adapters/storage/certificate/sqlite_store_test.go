package certificate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	"usdh/internal/domain/apperr"
	domain "usdh/internal/domain/certificate"
)

func TestSQLiteStore_ListByIDs(t *testing.T) {
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "certs.db"), 4)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	for _, name := range []string{"asha", "ravi"} {
		db.Exec(`INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, 'x', 'user', '2026-01-01T00:00:00Z')`,
			name, name+"@example.com")
	}
	s := NewSQLiteStore(db)
	ctx := context.Background()
	now := time.Now()

	a, _ := s.Create(ctx, domain.Certificate{UserID: 1, Name: "AWS", Organization: "Amazon", IssueDate: "2025-05-01", UploadedAt: now})
	b, _ := s.Create(ctx, domain.Certificate{UserID: 1, Name: "CKA", UploadedAt: now.Add(time.Minute)})
	c, _ := s.Create(ctx, domain.Certificate{UserID: 2, Name: "Other", UploadedAt: now})

	got, err := s.ListByIDs(ctx, 1, []int64{a, b, c, 999})
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != b || got[1].Organization != "Amazon" {
		t.Errorf("got %+v", got)
	}
	if got, _ := s.ListByIDs(ctx, 1, nil); got != nil {
		t.Errorf("empty ids = %+v", got)
	}

	if _, err := s.GetForOwner(ctx, 1, c); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign GetForOwner = %v", err)
	}
	if err := s.DeleteForOwner(ctx, 1, a); err != nil {
		t.Fatalf("DeleteForOwner: %v", err)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
