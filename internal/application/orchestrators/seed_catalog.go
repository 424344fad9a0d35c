package orchestrators

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/domain/course"
	"usdh/internal/domain/live"
	"usdh/internal/domain/resource"
	"usdh/internal/domain/scheme"
)

//go:embed fixtures/catalog.yaml
var catalogFixture []byte

// CatalogFixture is the shape of the starter catalog file.
type CatalogFixture struct {
	Courses       []CourseForm       `yaml:"courses"`
	SchoolCourses []SchoolCourseForm `yaml:"school_courses"`
	EResources    []EResourceForm    `yaml:"eresources"`
	Schemes       []SchemeForm       `yaml:"schemes"`
	LiveClasses   []LiveClassForm    `yaml:"live_classes"`
}

// CatalogCounter reports how many rows a catalog table holds.
type CatalogCounter interface {
	Count(ctx context.Context, table string) (int, error)
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	Counter       CatalogCounter
	Courses       EntryStore[course.Course]
	SchoolCourses EntryStore[course.SchoolCourse]
	EResources    EntryStore[resource.EResource]
	Schemes       EntryStore[scheme.Scheme]
	LiveClasses   EntryStore[live.Class]
	Fixture       []byte // optional; defaults to the bundled catalog
}

// ParseCatalogFixture decodes a catalog fixture.
func ParseCatalogFixture(data []byte) (CatalogFixture, error) {
	var f CatalogFixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return CatalogFixture{}, fmt.Errorf("parse catalog fixture: %w", err)
	}
	return f, nil
}

// ExecuteSeedCatalog loads the fixture into every catalog table that is empty.
// Tables that already hold rows are left alone.
// PRE: schema exists
// POST: Returns the number of rows inserted per table
func ExecuteSeedCatalog(ctx context.Context, deps SeedCatalogDeps) (map[string]int, error) {
	data := deps.Fixture
	if data == nil {
		data = catalogFixture
	}
	fx, err := ParseCatalogFixture(data)
	if err != nil {
		return nil, err
	}

	inserted := make(map[string]int)
	steps := []struct {
		table string
		load  func() (int, error)
	}{
		{catalog.TableCourses, func() (int, error) { return seedEntries(ctx, fx.Courses, deps.Courses) }},
		{catalog.TableSchoolCourses, func() (int, error) { return seedEntries(ctx, fx.SchoolCourses, deps.SchoolCourses) }},
		{catalog.TableEResources, func() (int, error) { return seedEntries(ctx, fx.EResources, deps.EResources) }},
		{catalog.TableSchemes, func() (int, error) { return seedEntries(ctx, fx.Schemes, deps.Schemes) }},
		{catalog.TableLiveClasses, func() (int, error) { return seedEntries(ctx, fx.LiveClasses, deps.LiveClasses) }},
	}
	for _, step := range steps {
		n, err := deps.Counter.Count(ctx, step.table)
		if err != nil {
			return inserted, err
		}
		if n > 0 {
			continue
		}
		added, err := step.load()
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", step.table, err)
		}
		inserted[step.table] = added
		slog.Info("seed_event", "event", "catalog_seeded", "table", step.table, "rows", added)
	}
	return inserted, nil
}

func seedEntries[F EntryForm[T], T any](ctx context.Context, forms []F, store EntryStore[T]) (int, error) {
	if store == nil {
		return 0, nil
	}
	for i, f := range forms {
		entry, err := buildEntry[T](f, 0)
		if err != nil {
			return i, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if _, err := store.Create(ctx, entry); err != nil {
			return i, err
		}
	}
	return len(forms), nil
}
