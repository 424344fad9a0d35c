package projections

import (
	"context"
	"time"

	"usdh/internal/adapters/chart"
	"usdh/internal/adapters/http/perf"
	"usdh/internal/adapters/storage/catalog"
	domainAccount "usdh/internal/domain/account"
	domainUserFile "usdh/internal/domain/userfile"
)

// PerfWindow is how far back the latency snapshot looks.
const PerfWindow = time.Hour

// CatalogCount is the row total of one catalog table.
type CatalogCount struct {
	Table string
	Label string
	Count int
}

// GroupSection is one group-by breakdown shown on the analytics page.
type GroupSection struct {
	Title  string
	Groups []catalog.GroupCount
}

// ContentCounts totals what users have created.
type ContentCounts struct {
	Certificates    int
	ResumeDownloads int
	StudyPlans      int
	Documents       int
	StudyMaterials  int
	FolderFiles     int
}

// AnalyticsResult carries the query result.
type AnalyticsResult struct {
	Catalogs []CatalogCount
	Users    int
	Admins   int
	Sections []GroupSection
	Content  ContentCounts
	Perf     perf.Snapshot
}

// AnalyticsDeps holds dependencies for Analytics.
type AnalyticsDeps struct {
	Reader       CatalogReader
	Accounts     AccountCounter
	Files        FileCounter
	Certificates Counter
	Resumes      Counter
	StudyPlans   Counter
	Perf         PerfSource // optional
	Now          func() time.Time
}

var analyticsGroups = []struct {
	title, table, column string
}{
	{"Courses by discipline", catalog.TableCourses, "discipline"},
	{"School courses by subject", catalog.TableSchoolCourses, "subject"},
	{"E-resources by state", catalog.TableEResources, "state"},
	{"E-resources by level", catalog.TableEResources, "preference"},
}

// QueryAnalytics gathers the admin analytics page.
// PRE: schema exists
// POST: Catalogs lists every registered table in name order
func QueryAnalytics(ctx context.Context, deps AnalyticsDeps) (AnalyticsResult, error) {
	var result AnalyticsResult

	for _, name := range catalog.Tables() {
		t, _ := catalog.Lookup(name)
		n, err := deps.Reader.Count(ctx, name)
		if err != nil {
			return AnalyticsResult{}, err
		}
		result.Catalogs = append(result.Catalogs, CatalogCount{Table: name, Label: t.Label, Count: n})
	}

	var err error
	if result.Users, err = deps.Accounts.Count(ctx); err != nil {
		return AnalyticsResult{}, err
	}
	if result.Admins, err = deps.Accounts.CountByRole(ctx, domainAccount.RoleAdmin); err != nil {
		return AnalyticsResult{}, err
	}

	for _, g := range analyticsGroups {
		groups, err := deps.Reader.GroupCount(ctx, g.table, g.column)
		if err != nil {
			return AnalyticsResult{}, err
		}
		result.Sections = append(result.Sections, GroupSection{Title: g.title, Groups: groups})
	}

	if result.Content, err = contentCounts(ctx, deps); err != nil {
		return AnalyticsResult{}, err
	}

	if deps.Perf != nil {
		now := time.Now
		if deps.Now != nil {
			now = deps.Now
		}
		result.Perf = deps.Perf.Snapshot(now().Add(-PerfWindow), 5)
	}
	return result, nil
}

func contentCounts(ctx context.Context, deps AnalyticsDeps) (ContentCounts, error) {
	var c ContentCounts
	var err error
	if c.Certificates, err = deps.Certificates.Count(ctx); err != nil {
		return c, err
	}
	if c.ResumeDownloads, err = deps.Resumes.Count(ctx); err != nil {
		return c, err
	}
	if c.StudyPlans, err = deps.StudyPlans.Count(ctx); err != nil {
		return c, err
	}
	byKind, err := deps.Files.CountByKind(ctx)
	if err != nil {
		return c, err
	}
	c.Documents = byKind[domainUserFile.KindDocument]
	c.StudyMaterials = byKind[domainUserFile.KindStudyMaterial]
	c.FolderFiles = byKind[domainUserFile.KindFolder]
	return c, nil
}

// ChartBars returns one bar per catalog table for the analytics chart.
func (r AnalyticsResult) ChartBars() []chart.Bar {
	bars := make([]chart.Bar, 0, len(r.Catalogs))
	for _, c := range r.Catalogs {
		bars = append(bars, chart.Bar{Label: c.Label, Value: c.Count})
	}
	return bars
}
