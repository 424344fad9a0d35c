package studyplan

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	"usdh/internal/domain/apperr"
	domain "usdh/internal/domain/studyplan"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "plans.db"), 4)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	db.Exec(`INSERT INTO users (username, email, password_hash, role, created_at) VALUES ('asha', 'asha@example.com', 'x', 'user', '2026-01-01T00:00:00Z')`)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	req := domain.Request{Subject: "Math", Topics: "Algebra, Geometry", DurationDays: 2, HoursPerDay: 2, Preferences: []string{"morning", "breaks"}}
	plan := domain.NewPlan(1, req, "revise *formulas*", time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	id, err := s.Create(ctx, plan)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.GetForOwner(ctx, 1, id)
	if err != nil {
		t.Fatalf("GetForOwner: %v", err)
	}
	if !reflect.DeepEqual(got.Topics, []string{"Algebra", "Geometry"}) {
		t.Errorf("Topics = %v", got.Topics)
	}
	if !reflect.DeepEqual(got.Preferences, []string{"morning", "breaks"}) {
		t.Errorf("Preferences = %v", got.Preferences)
	}
	if got.Notes != "revise *formulas*" || got.DurationDays != 2 || !got.CreatedAt.Equal(plan.CreatedAt) {
		t.Errorf("got %+v", got)
	}

	list, _ := s.ListByOwner(ctx, 1)
	if len(list) != 1 {
		t.Fatalf("ListByOwner len = %d", len(list))
	}
	if err := s.DeleteForOwner(ctx, 2, id); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign delete = %v", err)
	}
	if err := s.DeleteForOwner(ctx, 1, id); err != nil {
		t.Fatalf("DeleteForOwner: %v", err)
	}
	if _, err := s.GetForOwner(ctx, 1, id); err != domain.ErrNotFound {
		t.Errorf("after delete = %v", err)
	}
}
