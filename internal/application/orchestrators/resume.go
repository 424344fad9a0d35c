package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"usdh/internal/adapters/files"
	"usdh/internal/adapters/pdf"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/certificate"
	"usdh/internal/domain/resume"
)

// CertificateStoreForResume defines the certificate lookups needed by the resume builder.
type CertificateStoreForResume interface {
	ListByIDs(ctx context.Context, userID int64, ids []int64) ([]certificate.Certificate, error)
}

// ResumeStoreForActions defines the download history store needed by the resume builder.
type ResumeStoreForActions interface {
	Create(ctx context.Context, d resume.Download) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (resume.Download, error)
}

// ResumeDeps holds dependencies for the resume actions.
type ResumeDeps struct {
	Certificates CertificateStoreForResume
	Downloads    ResumeStoreForActions
	Blobs        files.Store
	PDF          pdf.Renderer // nil disables export
	PDFTimeout   time.Duration
	Now          func() time.Time
	NewID        func() string // optional; defaults to uuid.NewString
}

// ResumeForm is the resume builder form.
type ResumeForm struct {
	Template       string
	Personal       resume.PersonalInfo
	Education      []resume.Education
	Experience     []resume.Experience
	Skills         string
	Certifications []resume.Certification
	CertificateIDs []int64 // saved certificates to cite
}

// GenerateResumeResult carries the preview and, when export worked, the stored PDF.
type GenerateResumeResult struct {
	Template     string
	HTML         string
	PDFAvailable bool
	Download     resume.Download
	Notice       string // informational message when the PDF could not be produced
}

// PDFUnavailableNotice is shown when export fails and only the preview is offered.
const PDFUnavailableNotice = "PDF export is unavailable right now. Your resume preview is shown below."

// ExecuteGenerateResume renders the resume preview and attempts a PDF export.
// PRE: UserID identifies the session user
// POST: HTML is always returned for valid input; PDF failures only clear PDFAvailable
// INVARIANT: export problems are logged and never returned as errors
func ExecuteGenerateResume(ctx context.Context, userID int64, form ResumeForm, deps ResumeDeps) (GenerateResumeResult, error) {
	data, err := assembleResume(ctx, userID, form, deps)
	if err != nil {
		return GenerateResumeResult{}, err
	}
	tmpl := resume.NormalizeTemplate(form.Template)
	html, err := resume.Render(tmpl, data)
	if err != nil {
		return GenerateResumeResult{}, err
	}

	result := GenerateResumeResult{Template: tmpl, HTML: html}
	dl, ok := exportResume(ctx, userID, tmpl, html, deps)
	if !ok {
		result.Notice = PDFUnavailableNotice
		return result, nil
	}
	result.PDFAvailable = true
	result.Download = dl
	return result, nil
}

// ExecuteDownloadResume returns an owned resume PDF.
// POST: resume.ErrNotFound for missing, foreign, or blob-less downloads
func ExecuteDownloadResume(ctx context.Context, userID, id int64, deps ResumeDeps) (resume.Download, []byte, error) {
	dl, err := deps.Downloads.GetForOwner(ctx, userID, id)
	if err != nil {
		return resume.Download{}, nil, err
	}
	data, err := deps.Blobs.Get(ctx, dl.Key())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return resume.Download{}, nil, resume.ErrNotFound
		}
		return resume.Download{}, nil, err
	}
	return dl, data, nil
}

func assembleResume(ctx context.Context, userID int64, form ResumeForm, deps ResumeDeps) (resume.Data, error) {
	data := resume.Data{
		Personal:       form.Personal,
		Education:      append([]resume.Education(nil), form.Education...),
		Experience:     append([]resume.Experience(nil), form.Experience...),
		Skills:         resume.ParseSkills(form.Skills),
		Certifications: append([]resume.Certification(nil), form.Certifications...),
		GeneratedAt:    now(deps.Now),
	}
	data.Compact()
	if err := data.Validate(); err != nil {
		return resume.Data{}, err
	}

	if len(form.CertificateIDs) > 0 && deps.Certificates != nil {
		saved, err := deps.Certificates.ListByIDs(ctx, userID, form.CertificateIDs)
		if err != nil {
			return resume.Data{}, err
		}
		for _, c := range saved {
			data.Certifications = append(data.Certifications, resume.Certification{
				Name:         c.Name,
				Organization: c.Organization,
				Date:         c.IssueDate,
			})
		}
	}
	return data, nil
}

// exportResume renders, stores and records the PDF. Any failure is logged
// and reported through ok=false.
func exportResume(ctx context.Context, userID int64, tmpl, html string, deps ResumeDeps) (resume.Download, bool) {
	if deps.PDF == nil {
		return resume.Download{}, false
	}
	timeout := deps.PDFTimeout
	if timeout <= 0 {
		timeout = pdf.DefaultTimeout
	}
	renderCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	data, err := deps.PDF.Render(renderCtx, html)
	if err != nil {
		slog.Warn("resume_event", "event", "pdf_failed", "user_id", userID, "template", tmpl, "error", err)
		return resume.Download{}, false
	}

	id := ""
	if deps.NewID != nil {
		id = deps.NewID()
	}
	if id == "" {
		id = uuid.NewString()
	}
	dl := resume.Download{
		UserID:    userID,
		Template:  tmpl,
		FileName:  "resume_" + tmpl + "_" + id + ".pdf",
		CreatedAt: now(deps.Now),
	}
	if err := deps.Blobs.Put(ctx, dl.Key(), data, "application/pdf"); err != nil {
		slog.Error("resume_event", "event", "pdf_store_failed", "user_id", userID, "error", err)
		return resume.Download{}, false
	}
	dlID, err := deps.Downloads.Create(ctx, dl)
	if err != nil {
		slog.Error("resume_event", "event", "pdf_record_failed", "user_id", userID, "error", err)
		removeOrphan(ctx, deps.Blobs, dl.Key())
		return resume.Download{}, false
	}
	dl.ID = dlID
	slog.Info("resume_event", "event", "pdf_generated", "user_id", userID, "template", tmpl,
		"bytes", len(data), "duration_ms", time.Since(start).Milliseconds())
	return dl, true
}
