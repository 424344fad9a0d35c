package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"usdh/internal/domain/apperr"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()
	key := "folders/7/physics/notes.pdf"

	if err := s.Put(ctx, key, []byte("pdf bytes"), "application/pdf"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "folders", "7", "physics", "notes.pdf")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || string(got) != "pdf bytes" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, key); err != ErrNotExist {
		t.Errorf("second Delete = %v, want ErrNotExist", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	s, _ := NewLocalStore(t.TempDir())
	for _, key := range []string{"../outside.txt", "documents/../../x", "/etc/passwd", ""} {
		if err := s.Put(context.Background(), key, []byte("x"), ""); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Put(%q) = %v, want validation error", key, err)
		}
	}
}
