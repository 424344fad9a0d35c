package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/audit"
)

func TestSQLiteStore_SaveRecent(t *testing.T) {
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "audit.db"), 4)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	s := NewSQLiteStore(db)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	events := []domain.Event{
		domain.NewEvent(1, "asha", domain.ActionCreate, "course", 1, now),
		domain.NewEvent(1, "asha", domain.ActionUpdate, "course", 1, now.Add(time.Minute)),
		domain.NewEvent(2, "ravi", domain.ActionDelete, "scheme", 7, now.Add(2*time.Minute)),
	}
	for _, e := range events {
		if _, err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := s.Recent(ctx, Filter{}, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 || all[0].Entity != "scheme" || all[2].Action != domain.ActionCreate {
		t.Fatalf("Recent = %+v", all)
	}
	if !all[0].Timestamp.Equal(now.Add(2 * time.Minute)) {
		t.Errorf("timestamp = %v", all[0].Timestamp)
	}

	courses, _ := s.Recent(ctx, Filter{Entity: "course"}, 10)
	if len(courses) != 2 {
		t.Errorf("course events = %d, want 2", len(courses))
	}
	byRavi, _ := s.Recent(ctx, Filter{ActorID: 2}, 10)
	if len(byRavi) != 1 || byRavi[0].ActorName != "ravi" {
		t.Errorf("ravi events = %+v", byRavi)
	}
	limited, _ := s.Recent(ctx, Filter{}, 1)
	if len(limited) != 1 || limited[0].EntityID != 7 {
		t.Errorf("limit 1 = %+v", limited)
	}
}
