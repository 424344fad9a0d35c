package orchestrators

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"usdh/internal/adapters/files"
	"usdh/internal/adapters/scan"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/certificate"
	"usdh/internal/domain/userfile"
)

// memFileStore keeps file rows in memory, scoped by owner.
type memFileStore struct {
	rows   map[int64]userfile.File
	nextID int64
}

func newMemFileStore() *memFileStore {
	return &memFileStore{rows: make(map[int64]userfile.File)}
}

// Create stores f under a new id.
func (s *memFileStore) Create(_ context.Context, f userfile.File) (int64, error) {
	s.nextID++
	f.ID = s.nextID
	s.rows[f.ID] = f
	return f.ID, nil
}

// GetForOwner returns the row if userID owns it.
func (s *memFileStore) GetForOwner(_ context.Context, userID, id int64) (userfile.File, error) {
	f, ok := s.rows[id]
	if !ok || f.UserID != userID {
		return userfile.File{}, userfile.ErrNotFound
	}
	return f, nil
}

// DeleteForOwner removes the row if userID owns it.
func (s *memFileStore) DeleteForOwner(ctx context.Context, userID, id int64) error {
	if _, err := s.GetForOwner(ctx, userID, id); err != nil {
		return err
	}
	delete(s.rows, id)
	return nil
}

// rejectScanner flags every upload as infected.
type rejectScanner struct{}

// Scan returns scan.ErrInfected.
func (rejectScanner) Scan(context.Context, []byte) error { return scan.ErrInfected }

func newFileDeps(t *testing.T) (FileDeps, *memFileStore, string) {
	t.Helper()
	root := t.TempDir()
	blobs, err := files.NewLocalStore(root)
	if err != nil {
		t.Fatal(err)
	}
	store := newMemFileStore()
	return FileDeps{
		FileStore: store,
		UploadDeps: UploadDeps{
			Blobs:   blobs,
			Scanner: scan.Noop{},
			Now:     testNow,
			NewID:   func() string { return "fixed-id" },
		},
	}, store, root
}

// TestExecuteUploadFile_Document writes under documents/<user_id>/.
func TestExecuteUploadFile_Document(t *testing.T) {
	deps, store, root := newFileDeps(t)
	f, err := ExecuteUploadFile(context.Background(), UploadFileInput{
		UserID: 7,
		Kind:   userfile.KindDocument,
		Upload: Upload{FileName: "My Notes (v2).pdf", Data: []byte("%PDF-1.4")},
	}, deps)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if f.Name != "My Notes (v2).pdf" {
		t.Errorf("Name should default to the file name, got %q", f.Name)
	}
	if f.FileName != "fixed-id_My_Notes_v2.pdf" {
		t.Errorf("FileName = %q", f.FileName)
	}
	if _, err := os.Stat(filepath.Join(root, "documents", "7", f.FileName)); err != nil {
		t.Errorf("blob not written: %v", err)
	}
	if len(store.rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(store.rows))
	}
}

// TestExecuteUploadFile_Folder places folder items under their folder.
func TestExecuteUploadFile_Folder(t *testing.T) {
	deps, _, root := newFileDeps(t)
	f, err := ExecuteUploadFile(context.Background(), UploadFileInput{
		UserID: 3,
		Kind:   userfile.KindFolder,
		Folder: "Physics",
		Name:   "Optics notes",
		Upload: Upload{FileName: "optics.txt", Data: []byte("lens")},
	}, deps)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "folders", "3", "Physics", f.FileName)); err != nil {
		t.Errorf("blob not in folder: %v", err)
	}

	_, err = ExecuteUploadFile(context.Background(), UploadFileInput{
		UserID: 3, Kind: userfile.KindFolder, Folder: "../x", Name: "n",
		Upload: Upload{FileName: "a.txt", Data: []byte("a")},
	}, deps)
	if err != userfile.ErrInvalidFolder {
		t.Errorf("escaping folder: err = %v", err)
	}
}

// TestExecuteUploadFile_Rejects covers empty, oversized and infected uploads.
func TestExecuteUploadFile_Rejects(t *testing.T) {
	deps, store, _ := newFileDeps(t)
	ctx := context.Background()

	_, err := ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Name: "x"}, deps)
	if err != userfile.ErrEmptyFile {
		t.Errorf("empty: err = %v", err)
	}

	big := make([]byte, userfile.MaxFileSize+1)
	_, err = ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Upload: Upload{FileName: "big.bin", Data: big}}, deps)
	if err != userfile.ErrFileTooLarge {
		t.Errorf("too large: err = %v", err)
	}

	deps.Scanner = rejectScanner{}
	_, err = ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Upload: Upload{FileName: "eicar.com", Data: []byte("X5O")}}, deps)
	if !errors.Is(err, scan.ErrInfected) {
		t.Errorf("infected: err = %v", err)
	}
	if len(store.rows) != 0 {
		t.Errorf("rejected uploads must not create rows, got %d", len(store.rows))
	}
}

// TestExecuteDownloadFile_OwnerOnly hides other users' files.
func TestExecuteDownloadFile_OwnerOnly(t *testing.T) {
	deps, _, _ := newFileDeps(t)
	ctx := context.Background()
	f, err := ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindStudyMaterial, Upload: Upload{FileName: "a.txt", Data: []byte("hello")}}, deps)
	if err != nil {
		t.Fatal(err)
	}

	_, data, err := ExecuteDownloadFile(ctx, 1, f.ID, deps)
	if err != nil || string(data) != "hello" {
		t.Errorf("owner download: data=%q err=%v", data, err)
	}
	if _, _, err := ExecuteDownloadFile(ctx, 2, f.ID, deps); err != userfile.ErrNotFound {
		t.Errorf("foreign download: err = %v", err)
	}
}

// TestExecuteDeleteFile_MissingBlob deletes the row even when the blob is already gone.
func TestExecuteDeleteFile_MissingBlob(t *testing.T) {
	deps, store, root := newFileDeps(t)
	ctx := context.Background()
	f, err := ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Upload: Upload{FileName: "a.txt", Data: []byte("x")}}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, filepath.FromSlash(f.Key()))); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ExecuteDownloadFile(ctx, 1, f.ID, deps); err != userfile.ErrNotFound {
		t.Errorf("download of missing blob: err = %v", err)
	}
	if err := ExecuteDeleteFile(ctx, 1, f.ID, deps); err != nil {
		t.Fatalf("delete with missing blob: %v", err)
	}
	if len(store.rows) != 0 {
		t.Error("row should be removed")
	}
	if err := ExecuteDeleteFile(ctx, 1, f.ID, deps); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

// stuckBlobs refuses every delete.
type stuckBlobs struct{ files.Store }

// Delete always fails.
func (stuckBlobs) Delete(context.Context, string) error { return errors.New("disk is read-only") }

// lockedFileStore refuses to delete rows.
type lockedFileStore struct{ *memFileStore }

// DeleteForOwner always fails with a storage error.
func (lockedFileStore) DeleteForOwner(context.Context, int64, int64) error {
	return apperr.Storage("delete file", errors.New("database is locked"))
}

// TestExecuteDeleteFile_RowGoesFirst keeps rows and blobs consistent when one side fails.
func TestExecuteDeleteFile_RowGoesFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("blob delete fails after row is removed", func(t *testing.T) {
		deps, store, root := newFileDeps(t)
		f, err := ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Upload: Upload{FileName: "a.txt", Data: []byte("x")}}, deps)
		if err != nil {
			t.Fatal(err)
		}
		deps.Blobs = stuckBlobs{deps.Blobs}
		if err := ExecuteDeleteFile(ctx, 1, f.ID, deps); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if len(store.rows) != 0 {
			t.Error("row should be removed")
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(f.Key()))); err != nil {
			t.Errorf("blob should be left behind, stat err = %v", err)
		}
	})

	t.Run("row delete fails and blob is kept", func(t *testing.T) {
		deps, store, root := newFileDeps(t)
		f, err := ExecuteUploadFile(ctx, UploadFileInput{UserID: 1, Kind: userfile.KindDocument, Upload: Upload{FileName: "a.txt", Data: []byte("x")}}, deps)
		if err != nil {
			t.Fatal(err)
		}
		deps.FileStore = lockedFileStore{store}
		if err := ExecuteDeleteFile(ctx, 1, f.ID, deps); !errors.Is(err, apperr.ErrStorage) {
			t.Fatalf("delete: err = %v, want storage error", err)
		}
		if _, _, err := ExecuteDownloadFile(ctx, 1, f.ID, deps); err != nil {
			t.Errorf("file should still download: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(f.Key()))); err != nil {
			t.Errorf("blob should be kept, stat err = %v", err)
		}
	})
}

// memCertificateStore keeps certificates in memory.
type memCertificateStore struct {
	rows   map[int64]certificate.Certificate
	nextID int64
}

// Create stores c under a new id.
func (s *memCertificateStore) Create(_ context.Context, c certificate.Certificate) (int64, error) {
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = c
	return c.ID, nil
}

// GetForOwner returns the certificate if userID owns it.
func (s *memCertificateStore) GetForOwner(_ context.Context, userID, id int64) (certificate.Certificate, error) {
	c, ok := s.rows[id]
	if !ok || c.UserID != userID {
		return certificate.Certificate{}, certificate.ErrNotFound
	}
	return c, nil
}

// DeleteForOwner removes the certificate if userID owns it.
func (s *memCertificateStore) DeleteForOwner(ctx context.Context, userID, id int64) error {
	if _, err := s.GetForOwner(ctx, userID, id); err != nil {
		return err
	}
	delete(s.rows, id)
	return nil
}

// TestCertificateLifecycle adds, downloads and deletes a certificate.
func TestCertificateLifecycle(t *testing.T) {
	fileDeps, _, root := newFileDeps(t)
	store := &memCertificateStore{rows: make(map[int64]certificate.Certificate)}
	deps := CertificateDeps{CertificateStore: store, UploadDeps: fileDeps.UploadDeps}
	ctx := context.Background()

	if _, err := ExecuteAddCertificate(ctx, AddCertificateInput{UserID: 1, Name: "AWS", IssueDate: "May 2024"}, deps); err != certificate.ErrInvalidIssueDate {
		t.Errorf("bad date: err = %v", err)
	}

	noFile, err := ExecuteAddCertificate(ctx, AddCertificateInput{UserID: 1, Name: "First Aid"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ExecuteDownloadCertificate(ctx, 1, noFile.ID, deps); err != certificate.ErrNotFound {
		t.Errorf("download without file: err = %v", err)
	}

	c, err := ExecuteAddCertificate(ctx, AddCertificateInput{
		UserID: 1, Name: "Cloud Practitioner", Organization: "AWS", IssueDate: "2024-05-01",
		Upload: Upload{FileName: "cert.pdf", Data: []byte("pdf")},
	}, deps)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(c.Key(), "certificates/1/") {
		t.Errorf("Key = %q", c.Key())
	}
	if _, data, err := ExecuteDownloadCertificate(ctx, 1, c.ID, deps); err != nil || string(data) != "pdf" {
		t.Errorf("download: %q %v", data, err)
	}
	if err := ExecuteDeleteCertificate(ctx, 2, c.ID, deps); err != certificate.ErrNotFound {
		t.Errorf("foreign delete: err = %v", err)
	}
	if err := ExecuteDeleteCertificate(ctx, 1, c.ID, deps); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(c.Key()))); !os.IsNotExist(err) {
		t.Errorf("file should be removed, stat err = %v", err)
	}

	stuck, err := ExecuteAddCertificate(ctx, AddCertificateInput{
		UserID: 1, Name: "CPR", IssueDate: "2024-06-01",
		Upload: Upload{FileName: "cpr.pdf", Data: []byte("pdf")},
	}, deps)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	deps.Blobs = stuckBlobs{deps.Blobs}
	if err := ExecuteDeleteCertificate(ctx, 1, stuck.ID, deps); err != nil {
		t.Fatalf("delete with stuck file: %v", err)
	}
	if _, ok := store.rows[stuck.ID]; ok {
		t.Error("certificate row should be removed even if its file is not")
	}
}
