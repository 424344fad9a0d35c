package projections

import (
	"context"

	domainCertificate "usdh/internal/domain/certificate"
	domainResume "usdh/internal/domain/resume"
)

// ResumeBuilderQuery carries query parameters.
type ResumeBuilderQuery struct {
	UserID int64
}

// ResumeBuilderResult carries the query result.
type ResumeBuilderResult struct {
	Templates    []string
	Certificates []domainCertificate.Certificate
	History      []domainResume.Download
}

// ResumeBuilderDeps holds dependencies for ResumeBuilder.
type ResumeBuilderDeps struct {
	Certificates CertificateStore
	Resumes      ResumeStore
}

// QueryResumeBuilder loads the saved certificates and download history for the builder form.
// POST: History holds at most resume.HistoryLimit rows
func QueryResumeBuilder(ctx context.Context, query ResumeBuilderQuery, deps ResumeBuilderDeps) (ResumeBuilderResult, error) {
	certs, err := deps.Certificates.ListByOwner(ctx, query.UserID)
	if err != nil {
		return ResumeBuilderResult{}, err
	}
	history, err := deps.Resumes.ListRecent(ctx, query.UserID, domainResume.HistoryLimit)
	if err != nil {
		return ResumeBuilderResult{}, err
	}
	return ResumeBuilderResult{
		Templates:    domainResume.Templates,
		Certificates: certs,
		History:      history,
	}, nil
}
