package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"usdh/internal/adapters/http/perf"
	"usdh/internal/adapters/storage/catalog"
	domainCertificate "usdh/internal/domain/certificate"
	domainLive "usdh/internal/domain/live"
	domainProgress "usdh/internal/domain/progress"
	domainResume "usdh/internal/domain/resume"
	domainStudyPlan "usdh/internal/domain/studyplan"
	domainUserFile "usdh/internal/domain/userfile"
)

type mockFileStore struct {
	files []domainUserFile.File
}

// ListByOwner returns the seeded files of one kind owned by userID.
// PRE: kind is a known file kind
// POST: Returns only rows owned by userID
func (m *mockFileStore) ListByOwner(_ context.Context, userID int64, kind string) ([]domainUserFile.File, error) {
	var out []domainUserFile.File
	for _, f := range m.files {
		if f.UserID == userID && f.Kind == kind {
			out = append(out, f)
		}
	}
	return out, nil
}

// Folders returns the distinct folder names owned by userID.
// PRE: none
// POST: Returns names in first-seen order
func (m *mockFileStore) Folders(_ context.Context, userID int64) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range m.files {
		if f.UserID == userID && f.Kind == domainUserFile.KindFolder && !seen[f.Folder] {
			seen[f.Folder] = true
			out = append(out, f.Folder)
		}
	}
	return out, nil
}

// CountByKind totals the seeded files by kind.
// PRE: none
// POST: Returns a count per kind present
func (m *mockFileStore) CountByKind(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, f := range m.files {
		out[f.Kind]++
	}
	return out, nil
}

type mockCertificateStore struct {
	certs []domainCertificate.Certificate
}

// ListByOwner returns the seeded certificates owned by userID.
// PRE: none
// POST: Returns only rows owned by userID
func (m *mockCertificateStore) ListByOwner(_ context.Context, userID int64) ([]domainCertificate.Certificate, error) {
	var out []domainCertificate.Certificate
	for _, c := range m.certs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Count returns the number of seeded certificates.
// PRE: none
// POST: Returns count >= 0
func (m *mockCertificateStore) Count(_ context.Context) (int, error) {
	return len(m.certs), nil
}

// TestQueryMySpace lists by kind and folder for one owner.
func TestQueryMySpace(t *testing.T) {
	files := &mockFileStore{files: []domainUserFile.File{
		{ID: 1, UserID: 1, Kind: domainUserFile.KindDocument, Name: "Aadhaar"},
		{ID: 2, UserID: 1, Kind: domainUserFile.KindStudyMaterial, Name: "Optics"},
		{ID: 3, UserID: 1, Kind: domainUserFile.KindFolder, Folder: "Physics", Name: "Lens"},
		{ID: 4, UserID: 1, Kind: domainUserFile.KindFolder, Folder: "Maths", Name: "Calculus"},
		{ID: 5, UserID: 2, Kind: domainUserFile.KindDocument, Name: "Not mine"},
	}}
	certs := &mockCertificateStore{certs: []domainCertificate.Certificate{{ID: 1, UserID: 1, Name: "AWS"}}}
	deps := MySpaceDeps{Files: files, Certificates: certs}

	res, err := QueryMySpace(context.Background(), MySpaceQuery{UserID: 1, Folder: "Physics"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Documents) != 1 || res.Documents[0].Name != "Aadhaar" {
		t.Errorf("Documents = %+v", res.Documents)
	}
	if len(res.StudyMaterials) != 1 || len(res.Certificates) != 1 {
		t.Errorf("StudyMaterials=%d Certificates=%d", len(res.StudyMaterials), len(res.Certificates))
	}
	if len(res.Folders) != 2 {
		t.Errorf("Folders = %v", res.Folders)
	}
	if len(res.FolderFiles) != 1 || res.FolderFiles[0].Name != "Lens" {
		t.Errorf("FolderFiles = %+v", res.FolderFiles)
	}

	res, err = QueryMySpace(context.Background(), MySpaceQuery{UserID: 1}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.FolderFiles) != 0 {
		t.Error("no folder selected, FolderFiles should be empty")
	}
}

type mockProgressStore struct {
	rows []domainProgress.Progress
	err  error
}

// Get returns the seeded progress row for the pair.
// PRE: none
// POST: Returns ErrNotStarted when absent
func (m *mockProgressStore) Get(_ context.Context, userID, courseID int64) (domainProgress.Progress, error) {
	for _, p := range m.rows {
		if p.UserID == userID && p.CourseID == courseID {
			return p, nil
		}
	}
	return domainProgress.Progress{}, domainProgress.ErrNotStarted
}

// ListByOwner returns the seeded rows or the configured error.
// PRE: none
// POST: Returns rows in seed order
func (m *mockProgressStore) ListByOwner(_ context.Context, _ int64) ([]domainProgress.Progress, error) {
	return m.rows, m.err
}

type mockResumeStore struct {
	downloads []domainResume.Download
	count     int
}

// ListRecent returns at most limit seeded downloads.
// PRE: limit > 0
// POST: Returns len <= limit
func (m *mockResumeStore) ListRecent(_ context.Context, _ int64, limit int) ([]domainResume.Download, error) {
	if len(m.downloads) > limit {
		return m.downloads[:limit], nil
	}
	return m.downloads, nil
}

// Count returns the configured total.
// PRE: none
// POST: Returns count >= 0
func (m *mockResumeStore) Count(_ context.Context) (int, error) {
	return m.count, nil
}

type mockStudyPlanStore struct {
	plans []domainStudyPlan.Plan
}

// ListByOwner returns the seeded plans.
// PRE: none
// POST: Returns plans in seed order
func (m *mockStudyPlanStore) ListByOwner(_ context.Context, _ int64) ([]domainStudyPlan.Plan, error) {
	return m.plans, nil
}

// Count returns the number of seeded plans.
// PRE: none
// POST: Returns count >= 0
func (m *mockStudyPlanStore) Count(_ context.Context) (int, error) {
	return len(m.plans), nil
}

// TestQueryUserDashboard counts course states and caps resume history.
func TestQueryUserDashboard(t *testing.T) {
	var downloads []domainResume.Download
	for i := 1; i <= 7; i++ {
		downloads = append(downloads, domainResume.Download{ID: int64(i)})
	}
	deps := UserDashboardDeps{
		Progress: &mockProgressStore{rows: []domainProgress.Progress{
			{CourseID: 1, Status: domainProgress.StatusOngoing},
			{CourseID: 2, Status: domainProgress.StatusCompleted},
			{CourseID: 3, Status: domainProgress.StatusCompleted},
		}},
		Resumes:    &mockResumeStore{downloads: downloads},
		StudyPlans: &mockStudyPlanStore{plans: []domainStudyPlan.Plan{{ID: 1, Subject: "Physics"}}},
	}

	res, err := QueryUserDashboard(context.Background(), UserDashboardQuery{UserID: 1}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ongoing != 1 || res.Completed != 2 {
		t.Errorf("Ongoing=%d Completed=%d", res.Ongoing, res.Completed)
	}
	if len(res.RecentResumes) != domainResume.HistoryLimit {
		t.Errorf("RecentResumes = %d, want %d", len(res.RecentResumes), domainResume.HistoryLimit)
	}
	if len(res.StudyPlans) != 1 {
		t.Errorf("StudyPlans = %d", len(res.StudyPlans))
	}

	deps.Progress = &mockProgressStore{err: errors.New("db down")}
	if _, err := QueryUserDashboard(context.Background(), UserDashboardQuery{UserID: 1}, deps); err == nil {
		t.Error("expected store error")
	}
}

// TestQueryResumeBuilder returns templates, certificates and capped history.
func TestQueryResumeBuilder(t *testing.T) {
	deps := ResumeBuilderDeps{
		Certificates: &mockCertificateStore{certs: []domainCertificate.Certificate{{ID: 1, UserID: 3, Name: "GATE"}}},
		Resumes:      &mockResumeStore{downloads: make([]domainResume.Download, 9)},
	}
	res, err := QueryResumeBuilder(context.Background(), ResumeBuilderQuery{UserID: 3}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Templates) != 3 || len(res.Certificates) != 1 || len(res.History) != domainResume.HistoryLimit {
		t.Errorf("res = %+v", res)
	}
}

// mockCatalogReader serves fixed counts and distinct values.
type mockCatalogReader struct {
	counts   map[string]int
	groups   map[string][]catalog.GroupCount
	distinct []string
}

// List is a stub to satisfy the CatalogReader interface.
// PRE: none
// POST: Returns no rows
func (m *mockCatalogReader) List(context.Context, string, catalog.Query) ([]catalog.Row, error) {
	return nil, nil
}

// Get is a stub to satisfy the CatalogReader interface.
// PRE: none
// POST: Returns NotFound
func (m *mockCatalogReader) Get(context.Context, string, int64) (catalog.Row, error) {
	return catalog.Row{}, domainLive.ErrNotFound
}

// Distinct returns the seeded values.
// PRE: none
// POST: Returns the same values for every column
func (m *mockCatalogReader) Distinct(context.Context, string, string, catalog.Query) ([]string, error) {
	return m.distinct, nil
}

// Count returns the seeded count for table.
// PRE: none
// POST: Returns 0 for unseeded tables
func (m *mockCatalogReader) Count(_ context.Context, table string) (int, error) {
	return m.counts[table], nil
}

// GroupCount returns the seeded groups for table.column.
// PRE: none
// POST: Returns nil for unseeded keys
func (m *mockCatalogReader) GroupCount(_ context.Context, table, column string) ([]catalog.GroupCount, error) {
	return m.groups[table+"."+column], nil
}

// Stats is a stub to satisfy the CatalogReader interface.
// PRE: none
// POST: Returns the seeded total
func (m *mockCatalogReader) Stats(_ context.Context, table string) (catalog.Stats, error) {
	return catalog.Stats{Table: table, Total: m.counts[table]}, nil
}

type mockAccountCounter struct{ users, admins int }

// Count returns the user total.
// PRE: none
// POST: Returns count >= 0
func (m mockAccountCounter) Count(context.Context) (int, error) { return m.users, nil }

// CountByRole returns the admin total for any role.
// PRE: none
// POST: Returns count >= 0
func (m mockAccountCounter) CountByRole(context.Context, string) (int, error) { return m.admins, nil }

// TestQueryAnalytics aggregates catalog, user and content counts.
func TestQueryAnalytics(t *testing.T) {
	reader := &mockCatalogReader{
		counts: map[string]int{catalog.TableCourses: 6, catalog.TableSchemes: 3},
		groups: map[string][]catalog.GroupCount{
			"courses.discipline": {{Value: "Commerce", Count: 4}, {Value: "Science", Count: 2}},
		},
	}
	collector := perf.NewCollector(16)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	collector.Record(perf.Entry{Kind: perf.KindRequest, Label: "GET /user", DurationMs: 12, Status: 200, At: now.Add(-time.Minute)})

	deps := AnalyticsDeps{
		Reader:       reader,
		Accounts:     mockAccountCounter{users: 10, admins: 2},
		Files:        &mockFileStore{files: []domainUserFile.File{{Kind: domainUserFile.KindDocument}, {Kind: domainUserFile.KindFolder}}},
		Certificates: &mockCertificateStore{certs: make([]domainCertificate.Certificate, 4)},
		Resumes:      &mockResumeStore{count: 7},
		StudyPlans:   &mockStudyPlanStore{plans: make([]domainStudyPlan.Plan, 2)},
		Perf:         collector,
		Now:          func() time.Time { return now },
	}
	res, err := QueryAnalytics(context.Background(), deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Catalogs) != len(catalog.Tables()) {
		t.Errorf("Catalogs = %d", len(res.Catalogs))
	}
	if res.Users != 10 || res.Admins != 2 {
		t.Errorf("Users=%d Admins=%d", res.Users, res.Admins)
	}
	if len(res.Sections) != 4 || len(res.Sections[0].Groups) != 2 {
		t.Errorf("Sections = %+v", res.Sections)
	}
	want := ContentCounts{Certificates: 4, ResumeDownloads: 7, StudyPlans: 2, Documents: 1, FolderFiles: 1}
	if res.Content != want {
		t.Errorf("Content = %+v, want %+v", res.Content, want)
	}
	if res.Perf.Requests != 1 {
		t.Errorf("Perf.Requests = %d", res.Perf.Requests)
	}

	bars := res.ChartBars()
	var total int
	for _, b := range bars {
		total += b.Value
	}
	if len(bars) != len(res.Catalogs) || total != 9 {
		t.Errorf("bars = %+v", bars)
	}
}

type mockClassStore struct {
	classes []domainLive.Class
}

// ListByGrade returns the seeded classes of one grade.
// PRE: grade is non-empty
// POST: Returns only matching rows
func (m *mockClassStore) ListByGrade(_ context.Context, grade string) ([]domainLive.Class, error) {
	var out []domainLive.Class
	for _, c := range m.classes {
		if c.Grade == grade {
			out = append(out, c)
		}
	}
	return out, nil
}

// TestQueryLiveClasses lists grades and embeds the chosen grade's classes.
func TestQueryLiveClasses(t *testing.T) {
	deps := LiveClassesDeps{
		Reader: &mockCatalogReader{distinct: []string{"10", "12"}},
		Classes: &mockClassStore{classes: []domainLive.Class{
			{ID: 1, Grade: "10", Link: "https://youtu.be/abc123XYZ", Schedule: "Mon 5pm"},
			{ID: 2, Grade: "12", Link: "https://meet.example.com/x"},
		}},
	}

	res, err := QueryLiveClasses(context.Background(), LiveClassesQuery{}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Grades) != 2 || len(res.Classes) != 0 {
		t.Errorf("no grade: %+v", res)
	}

	res, err = QueryLiveClasses(context.Background(), LiveClassesQuery{Grade: "10"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Classes) != 1 || res.Classes[0].Player != "https://www.youtube.com/embed/abc123XYZ" {
		t.Errorf("classes = %+v", res.Classes)
	}
}
