package projections

import (
	"context"
	"time"

	"usdh/internal/adapters/http/perf"
	"usdh/internal/adapters/storage/catalog"
	domainCertificate "usdh/internal/domain/certificate"
	domainProgress "usdh/internal/domain/progress"
	domainResume "usdh/internal/domain/resume"
	domainStudyPlan "usdh/internal/domain/studyplan"
	domainUserFile "usdh/internal/domain/userfile"
)

// CatalogReader interface for catalog queries.
type CatalogReader interface {
	List(ctx context.Context, table string, q catalog.Query) ([]catalog.Row, error)
	Get(ctx context.Context, table string, id int64) (catalog.Row, error)
	Distinct(ctx context.Context, table, column string, q catalog.Query) ([]string, error)
	Count(ctx context.Context, table string) (int, error)
	GroupCount(ctx context.Context, table, column string) ([]catalog.GroupCount, error)
	Stats(ctx context.Context, table string) (catalog.Stats, error)
}

// ProgressStore interface for course progress queries.
type ProgressStore interface {
	Get(ctx context.Context, userID, courseID int64) (domainProgress.Progress, error)
	ListByOwner(ctx context.Context, userID int64) ([]domainProgress.Progress, error)
}

// FileStore interface for user file queries.
type FileStore interface {
	ListByOwner(ctx context.Context, userID int64, kind string) ([]domainUserFile.File, error)
	Folders(ctx context.Context, userID int64) ([]string, error)
}

// CertificateStore interface for certificate queries.
type CertificateStore interface {
	ListByOwner(ctx context.Context, userID int64) ([]domainCertificate.Certificate, error)
}

// ResumeStore interface for resume download history.
type ResumeStore interface {
	ListRecent(ctx context.Context, userID int64, limit int) ([]domainResume.Download, error)
}

// StudyPlanStore interface for saved plan queries.
type StudyPlanStore interface {
	ListByOwner(ctx context.Context, userID int64) ([]domainStudyPlan.Plan, error)
}

// Counter reports the number of rows in a store.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// AccountCounter reports user totals.
type AccountCounter interface {
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// FileCounter reports uploaded file totals by kind.
type FileCounter interface {
	CountByKind(ctx context.Context) (map[string]int, error)
}

// PerfSource provides request and query timing snapshots.
type PerfSource interface {
	Snapshot(since time.Time, topN int) perf.Snapshot
}
