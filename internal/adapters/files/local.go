package files

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"usdh/internal/domain/apperr"
)

// LocalStore keeps blobs on the local filesystem under Root.
type LocalStore struct {
	Root string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates root if needed and returns a store rooted there.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, apperr.Storage("create upload root", err)
	}
	return &LocalStore{Root: root}, nil
}

// Put writes data to key, creating parent directories.
func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return apperr.Storage("create upload dir", err)
	}
	if err := os.WriteFile(p, data, 0o640); err != nil {
		return apperr.Storage("write upload", err)
	}
	return nil
}

// Get reads the blob at key.
func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, apperr.Storage("read upload", err)
	}
	return data, nil
}

// Delete removes the blob at key.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotExist
	}
	if err != nil {
		return apperr.Storage("remove upload", err)
	}
	return nil
}

// path resolves key under Root and rejects keys that escape it.
func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperr.Validation("invalid file key")
	}
	return filepath.Join(s.Root, clean), nil
}
