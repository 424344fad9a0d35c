package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"usdh/internal/adapters/files"
	"usdh/internal/adapters/scan"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/userfile"
)

// FileStoreForFiles defines the store interface needed by the file actions.
type FileStoreForFiles interface {
	Create(ctx context.Context, f userfile.File) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (userfile.File, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
}

// UploadDeps holds dependencies shared by file and certificate uploads.
type UploadDeps struct {
	Blobs   files.Store
	Scanner scan.Scanner // optional
	Now     func() time.Time
	NewID   func() string // optional; defaults to uuid.NewString
}

// FileDeps holds dependencies for the user file actions.
type FileDeps struct {
	FileStore FileStoreForFiles
	UploadDeps
}

// Upload is the content part of a multipart upload, already read into memory.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadFileInput carries input for UploadFile.
type UploadFileInput struct {
	UserID      int64
	Kind        string
	Folder      string
	Name        string // defaults to the uploaded file name
	Description string
	Upload      Upload
}

// ExecuteUploadFile scans and stores an upload and records its metadata.
// PRE: UserID identifies the session user
// POST: Blob stored under the kind/owner directory and the row created, or neither
func ExecuteUploadFile(ctx context.Context, input UploadFileInput, deps FileDeps) (userfile.File, error) {
	f := userfile.File{
		UserID:      input.UserID,
		Kind:        input.Kind,
		Folder:      strings.TrimSpace(input.Folder),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		UploadedAt:  now(deps.Now),
	}
	if f.Name == "" {
		f.Name = input.Upload.FileName
	}
	if err := checkUpload(input.Upload); err != nil {
		return userfile.File{}, err
	}
	if err := f.Validate(); err != nil {
		return userfile.File{}, err
	}
	if err := scanUpload(ctx, deps.Scanner, input.UserID, input.Upload); err != nil {
		return userfile.File{}, err
	}

	f.FileName = storedName(deps.NewID, input.Upload.FileName)
	if err := deps.Blobs.Put(ctx, f.Key(), input.Upload.Data, input.Upload.ContentType); err != nil {
		return userfile.File{}, err
	}
	id, err := deps.FileStore.Create(ctx, f)
	if err != nil {
		removeOrphan(ctx, deps.Blobs, f.Key())
		return userfile.File{}, err
	}
	f.ID = id
	slog.Info("file_event", "event", "uploaded", "user_id", f.UserID, "kind", f.Kind, "file_id", id, "bytes", len(input.Upload.Data))
	return f, nil
}

// ExecuteDownloadFile returns an owned file and its content.
// PRE: none
// POST: Returns userfile.ErrNotFound if the row or blob is missing or owned by someone else
func ExecuteDownloadFile(ctx context.Context, userID, id int64, deps FileDeps) (userfile.File, []byte, error) {
	f, err := deps.FileStore.GetForOwner(ctx, userID, id)
	if err != nil {
		return userfile.File{}, nil, err
	}
	data, err := deps.Blobs.Get(ctx, f.Key())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			slog.Warn("file_event", "event", "blob_missing", "file_id", id, "key", f.Key())
			return userfile.File{}, nil, userfile.ErrNotFound
		}
		return userfile.File{}, nil, err
	}
	return f, data, nil
}

// ExecuteDeleteFile removes an owned file row and then its blob.
// PRE: none
// POST: Row removed; a blob that cannot be removed is logged and left behind
func ExecuteDeleteFile(ctx context.Context, userID, id int64, deps FileDeps) error {
	f, err := deps.FileStore.GetForOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := deps.FileStore.DeleteForOwner(ctx, userID, id); err != nil {
		return err
	}
	deleteBlob(ctx, deps.Blobs, f.Key())
	slog.Info("file_event", "event", "deleted", "user_id", userID, "file_id", id)
	return nil
}

func checkUpload(u Upload) error {
	if len(u.Data) == 0 {
		return userfile.ErrEmptyFile
	}
	if len(u.Data) > userfile.MaxFileSize {
		return userfile.ErrFileTooLarge
	}
	return nil
}

func scanUpload(ctx context.Context, scanner scan.Scanner, userID int64, u Upload) error {
	if scanner == nil {
		return nil
	}
	if err := scanner.Scan(ctx, u.Data); err != nil {
		slog.Warn("file_event", "event", "scan_rejected", "user_id", userID, "file_name", u.FileName, "error", err)
		return err
	}
	return nil
}

// storedName prefixes the sanitized original name with a unique id.
func storedName(newID func() string, original string) string {
	id := ""
	if newID != nil {
		id = newID()
	}
	if id == "" {
		id = uuid.NewString()
	}
	return id + "_" + userfile.SanitizeFileName(original)
}

// deleteBlob removes the blob behind an already deleted row. Failures are
// logged only; the row is the source of truth.
func deleteBlob(ctx context.Context, blobs files.Store, key string) {
	err := blobs.Delete(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNotFound):
		slog.Warn("file_event", "event", "blob_already_missing", "key", key)
	default:
		slog.Error("file_event", "event", "blob_delete_failed", "key", key, "error", err)
	}
}

func removeOrphan(ctx context.Context, blobs files.Store, key string) {
	if err := blobs.Delete(ctx, key); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		slog.Error("file_event", "event", "orphan_cleanup_failed", "key", key, "error", err)
	}
}
