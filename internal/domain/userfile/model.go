package userfile

import (
	"path"
	"strconv"
	"strings"
	"time"

	"usdh/internal/domain/apperr"
)

// Kind constants name the per-user upload areas.
const (
	KindDocument      = "document"
	KindStudyMaterial = "study_material"
	KindFolder        = "folder"
)

// ValidKinds contains all valid kind values.
var ValidKinds = []string{KindDocument, KindStudyMaterial, KindFolder}

// MaxFileSize bounds a single upload; uploads are held in memory.
const MaxFileSize = 20 << 20

// Domain errors
var (
	ErrInvalidKind   = apperr.Validation("unknown upload area")
	ErrEmptyName     = apperr.Validation("name is required")
	ErrEmptyFolder   = apperr.Validation("folder name is required")
	ErrInvalidFolder = apperr.Validation("folder name may not contain slashes or dots")
	ErrEmptyFile     = apperr.Validation("please choose a file to upload")
	ErrFileTooLarge  = apperr.Validation("file exceeds the 20 MB limit")
	ErrNotFound      = apperr.NotFound("file not found")
)

// File is an uploaded document, study material or folder item owned by one user.
type File struct {
	ID          int64
	UserID      int64
	Kind        string
	Folder      string
	Name        string
	Description string
	FileName    string
	UploadedAt  time.Time
}

// Validate checks if the File has valid data.
// PRE: File struct is populated
// POST: Returns nil if valid, error otherwise
func (f *File) Validate() error {
	if !IsValidKind(f.Kind) {
		return ErrInvalidKind
	}
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if f.Kind == KindFolder {
		if strings.TrimSpace(f.Folder) == "" {
			return ErrEmptyFolder
		}
		if !isSafeSegment(f.Folder) {
			return ErrInvalidFolder
		}
	}
	return nil
}

// Key returns the blob key the file content is stored under.
// The directory is derived from kind and owner, never stored.
// INVARIANT: File fields are not mutated
func (f *File) Key() string {
	owner := strconv.FormatInt(f.UserID, 10)
	switch f.Kind {
	case KindStudyMaterial:
		return path.Join("study_materials", owner, f.FileName)
	case KindFolder:
		return path.Join("folders", owner, f.Folder, f.FileName)
	default:
		return path.Join("documents", owner, f.FileName)
	}
}

// IsValidKind reports whether kind is one of ValidKinds.
func IsValidKind(kind string) bool {
	for _, k := range ValidKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// SanitizeFileName reduces an uploaded file name to a safe single path segment.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

func isSafeSegment(s string) bool {
	return !strings.ContainsAny(s, `/\`) && s != "." && s != ".." && !strings.HasPrefix(s, ".")
}
