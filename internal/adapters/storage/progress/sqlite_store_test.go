package progress

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/progress"
)

func TestSQLiteStore_StartComplete(t *testing.T) {
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "progress.db"), 4)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	db.Exec(`INSERT INTO users (username, email, password_hash, role, created_at) VALUES ('asha', 'asha@example.com', 'x', 'user', '2026-01-01T00:00:00Z')`)
	db.Exec(`INSERT INTO courses (name, website) VALUES ('Intro to AI', 'edX')`)
	s := NewSQLiteStore(db)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	if err := s.Complete(ctx, 1, 1, now); err != domain.ErrNotStarted {
		t.Errorf("Complete before Start = %v", err)
	}
	if err := s.Start(ctx, 1, 1, now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(ctx, 1, 1, now.Add(time.Hour)); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	p, err := s.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Status != domain.StatusOngoing || p.CourseName != "Intro to AI" || !p.StartDate.Equal(now) {
		t.Errorf("got %+v", p)
	}

	done := now.Add(48 * time.Hour)
	if err := s.Complete(ctx, 1, 1, done); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	list, _ := s.ListByOwner(ctx, 1)
	if len(list) != 1 || !list[0].IsCompleted() || !list[0].CompletionDate.Equal(done) {
		t.Errorf("list = %+v", list)
	}
}
