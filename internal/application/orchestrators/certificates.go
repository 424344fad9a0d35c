package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"usdh/internal/domain/apperr"
	"usdh/internal/domain/certificate"
)

// CertificateStoreForActions defines the store interface needed by the certificate actions.
type CertificateStoreForActions interface {
	Create(ctx context.Context, c certificate.Certificate) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (certificate.Certificate, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
}

// CertificateDeps holds dependencies for the certificate actions.
type CertificateDeps struct {
	CertificateStore CertificateStoreForActions
	UploadDeps
}

// AddCertificateInput carries the certificate form. The file is optional.
type AddCertificateInput struct {
	UserID       int64
	Name         string
	Organization string
	IssueDate    string
	Upload       Upload
}

// ExecuteAddCertificate records a certificate and stores its file if one was attached.
// PRE: UserID identifies the session user
// POST: Row created; blob stored under certificates/<user_id>/ when a file was given
func ExecuteAddCertificate(ctx context.Context, input AddCertificateInput, deps CertificateDeps) (certificate.Certificate, error) {
	c := certificate.Certificate{
		UserID:       input.UserID,
		Name:         strings.TrimSpace(input.Name),
		Organization: strings.TrimSpace(input.Organization),
		IssueDate:    strings.TrimSpace(input.IssueDate),
		UploadedAt:   now(deps.Now),
	}
	if err := c.Validate(); err != nil {
		return certificate.Certificate{}, err
	}

	hasFile := len(input.Upload.Data) > 0
	if hasFile {
		if err := checkUpload(input.Upload); err != nil {
			return certificate.Certificate{}, err
		}
		if err := scanUpload(ctx, deps.Scanner, input.UserID, input.Upload); err != nil {
			return certificate.Certificate{}, err
		}
		c.FileName = storedName(deps.NewID, input.Upload.FileName)
		if err := deps.Blobs.Put(ctx, c.Key(), input.Upload.Data, input.Upload.ContentType); err != nil {
			return certificate.Certificate{}, err
		}
	}

	id, err := deps.CertificateStore.Create(ctx, c)
	if err != nil {
		if hasFile {
			removeOrphan(ctx, deps.Blobs, c.Key())
		}
		return certificate.Certificate{}, err
	}
	c.ID = id
	slog.Info("file_event", "event", "certificate_added", "user_id", c.UserID, "certificate_id", id, "with_file", hasFile)
	return c, nil
}

// ExecuteDownloadCertificate returns an owned certificate file.
// POST: certificate.ErrNotFound when the row, its file, or ownership is missing
func ExecuteDownloadCertificate(ctx context.Context, userID, id int64, deps CertificateDeps) (certificate.Certificate, []byte, error) {
	c, err := deps.CertificateStore.GetForOwner(ctx, userID, id)
	if err != nil {
		return certificate.Certificate{}, nil, err
	}
	if c.Key() == "" {
		return certificate.Certificate{}, nil, certificate.ErrNotFound
	}
	data, err := deps.Blobs.Get(ctx, c.Key())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return certificate.Certificate{}, nil, certificate.ErrNotFound
		}
		return certificate.Certificate{}, nil, err
	}
	return c, data, nil
}

// ExecuteDeleteCertificate removes an owned certificate and its file.
// POST: Row removed; a file that cannot be removed is logged and left behind
func ExecuteDeleteCertificate(ctx context.Context, userID, id int64, deps CertificateDeps) error {
	c, err := deps.CertificateStore.GetForOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := deps.CertificateStore.DeleteForOwner(ctx, userID, id); err != nil {
		return err
	}
	if key := c.Key(); key != "" {
		deleteBlob(ctx, deps.Blobs, key)
	}
	slog.Info("file_event", "event", "certificate_deleted", "user_id", userID, "certificate_id", id)
	return nil
}
