package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	"usdh/internal/adapters/storage/catalog"
	courseStore "usdh/internal/adapters/storage/course"
	progressStore "usdh/internal/adapters/storage/progress"
	"usdh/internal/application/listutil"
	"usdh/internal/domain/apperr"
	domainCourse "usdh/internal/domain/course"
	domainProgress "usdh/internal/domain/progress"
)

func openCatalogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "projections.db"), 4)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedCourses inserts n Commerce courses on NPTEL and two Science courses on SWAYAM.
func seedCourses(t *testing.T, db *sql.DB, n int) {
	t.Helper()
	store := courseStore.NewSQLiteStore(db)
	ctx := context.Background()
	for i := 0; i < n; i++ {
		c := domainCourse.Course{Name: fmt.Sprintf("Accounting %02d", i), Website: "NPTEL", Discipline: "Commerce", Level: domainCourse.LevelUG}
		if _, err := store.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"Organic Chemistry", "Quantum Physics"} {
		c := domainCourse.Course{Name: name, Website: "SWAYAM", Discipline: "Science", Level: domainCourse.LevelPG}
		if _, err := store.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
}

// TestQueryCatalogPage_PaginatesAndFilters checks the page size and filter narrowing.
func TestQueryCatalogPage_PaginatesAndFilters(t *testing.T) {
	db := openCatalogDB(t)
	seedCourses(t, db, 12)
	deps := CatalogPageDeps{Reader: catalog.NewReader(db)}
	ctx := context.Background()
	table, _ := catalog.Lookup(catalog.TableCourses)

	params := listutil.ParseListParams(url.Values{"page": {"2"}}, table.FilterColumns())
	res, err := QueryCatalogPage(ctx, CatalogPageQuery{Table: catalog.TableCourses, Params: params}, deps)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if res.Page.Total != 14 || res.Page.TotalPages != 2 || len(res.Cards) != 4 {
		t.Errorf("page = %+v, cards = %d", res.Page, len(res.Cards))
	}
	if res.Stats.Total != 14 {
		t.Errorf("Stats.Total = %d", res.Stats.Total)
	}

	params = listutil.ParseListParams(url.Values{"discipline": {"Science"}}, table.FilterColumns())
	res, err = QueryCatalogPage(ctx, CatalogPageQuery{Table: catalog.TableCourses, Params: params}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cards) != 2 {
		t.Errorf("expected 2 science cards, got %d", len(res.Cards))
	}
	for _, f := range res.Filters {
		switch f.Column {
		case "website":
			if len(f.Values) != 1 || f.Values[0] != "SWAYAM" {
				t.Errorf("website options should narrow by discipline, got %v", f.Values)
			}
		case "discipline":
			if len(f.Values) != 2 || f.Selected != "Science" {
				t.Errorf("discipline options = %v selected %q", f.Values, f.Selected)
			}
		}
	}
}

// TestQueryCatalogPage_SearchIsCaseInsensitive matches any searchable column.
func TestQueryCatalogPage_SearchIsCaseInsensitive(t *testing.T) {
	db := openCatalogDB(t)
	seedCourses(t, db, 3)
	deps := CatalogPageDeps{Reader: catalog.NewReader(db)}

	params := listutil.ListParams{Page: 1, FilterParams: listutil.FilterParams{Search: "quantum"}}
	res, err := QueryCatalogPage(context.Background(), CatalogPageQuery{Table: catalog.TableCourses, Params: params}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cards) != 1 || res.Cards[0].Title != "Quantum Physics" {
		t.Errorf("cards = %+v", res.Cards)
	}

	params.Search = "no such course"
	res, err = QueryCatalogPage(context.Background(), CatalogPageQuery{Table: catalog.TableCourses, Params: params}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Empty() {
		t.Error("expected empty result")
	}
}

// TestQueryCatalogPage_UnknownTable returns NotFound.
func TestQueryCatalogPage_UnknownTable(t *testing.T) {
	db := openCatalogDB(t)
	_, err := QueryCatalogPage(context.Background(), CatalogPageQuery{Table: "users"}, CatalogPageDeps{Reader: catalog.NewReader(db)})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

// TestQueryCourseDetail covers progress lookup and unknown ids.
func TestQueryCourseDetail(t *testing.T) {
	db := openCatalogDB(t)
	seedCourses(t, db, 1)
	ctx := context.Background()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, created_at) VALUES ('asha', 'asha@example.com', 'x', 'user', ?)`,
		storage.FormatTime(time.Now())); err != nil {
		t.Fatal(err)
	}
	progress := progressStore.NewSQLiteStore(db)
	deps := CourseDetailDeps{Reader: catalog.NewReader(db), Progress: progress}

	res, err := QueryCourseDetail(ctx, CourseDetailQuery{UserID: 1, Table: catalog.TableCourses, ID: 1}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Trackable || res.Progress != nil {
		t.Errorf("before start: %+v", res)
	}

	if err := progress.Start(ctx, 1, 1, time.Now()); err != nil {
		t.Fatal(err)
	}
	res, err = QueryCourseDetail(ctx, CourseDetailQuery{UserID: 1, Table: catalog.TableCourses, ID: 1}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.Progress == nil || res.Progress.Status != domainProgress.StatusOngoing {
		t.Errorf("after start: %+v", res.Progress)
	}

	if _, err := QueryCourseDetail(ctx, CourseDetailQuery{UserID: 1, Table: catalog.TableCourses, ID: 99}, deps); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown id: err = %v", err)
	}
	if _, err := QueryCourseDetail(ctx, CourseDetailQuery{UserID: 1, Table: catalog.TableSchemes, ID: 1}, deps); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("wrong table: err = %v", err)
	}
}
