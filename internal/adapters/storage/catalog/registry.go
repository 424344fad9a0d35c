package catalog

import (
	"sort"

	"usdh/internal/domain/apperr"
)

// Table names served by the Reader.
const (
	TableCourses       = "courses"
	TableSchoolCourses = "school_courses"
	TableEResources    = "eresources"
	TableSchemes       = "schemes"
	TableLiveClasses   = "live_classes"
)

// Column describes one readable column of a catalog table.
type Column struct {
	Name   string
	Label  string
	Search bool // included in free-text search; every text column except level
	Filter bool // usable as an equality filter and for Distinct
	Stat   bool // distinct count reported by Stats
}

// Table describes a catalog table. Identifiers used in SQL come only from here.
type Table struct {
	Name    string
	Label   string
	Columns []Column
	OrderBy string
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// FilterColumns returns the names of the filterable columns.
func (t Table) FilterColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Filter {
			names = append(names, c.Name)
		}
	}
	return names
}

var registry = map[string]Table{
	TableCourses: {
		Name:  TableCourses,
		Label: "UG/PG Courses",
		Columns: []Column{
			{Name: "name", Label: "Course", Search: true},
			{Name: "description", Label: "Description", Search: true},
			{Name: "website", Label: "Website", Search: true, Filter: true, Stat: true},
			{Name: "discipline", Label: "Discipline", Search: true, Filter: true, Stat: true},
			{Name: "duration", Label: "Duration", Search: true},
			{Name: "level", Label: "Level", Filter: true},
			{Name: "link", Label: "Link", Search: true},
			{Name: "trailer", Label: "Trailer", Search: true},
		},
		OrderBy: "name",
	},
	TableSchoolCourses: {
		Name:  TableSchoolCourses,
		Label: "School Courses",
		Columns: []Column{
			{Name: "subject", Label: "Subject", Search: true, Filter: true, Stat: true},
			{Name: "grade", Label: "Grade", Search: true, Filter: true, Stat: true},
			{Name: "website", Label: "Website", Search: true, Filter: true},
			{Name: "video_link", Label: "Video", Search: true},
		},
		OrderBy: "subject",
	},
	TableEResources: {
		Name:  TableEResources,
		Label: "E-Resources",
		Columns: []Column{
			{Name: "website", Label: "Website", Search: true, Filter: true},
			{Name: "preference", Label: "Level", Search: true, Filter: true, Stat: true},
			{Name: "subject", Label: "Subject", Search: true, Filter: true, Stat: true},
			{Name: "state", Label: "State", Search: true, Filter: true, Stat: true},
			{Name: "link", Label: "Link", Search: true},
		},
		OrderBy: "website",
	},
	TableSchemes: {
		Name:  TableSchemes,
		Label: "Scholarship Schemes",
		Columns: []Column{
			{Name: "name", Label: "Scheme", Search: true},
			{Name: "benefits", Label: "Benefits", Search: true},
			{Name: "eligibility", Label: "Eligibility", Search: true},
			{Name: "link", Label: "More info", Search: true},
		},
		OrderBy: "name",
	},
	TableLiveClasses: {
		Name:  TableLiveClasses,
		Label: "Live Classes",
		Columns: []Column{
			{Name: "grade", Label: "Grade", Search: true, Filter: true, Stat: true},
			{Name: "link", Label: "Class link", Search: true},
			{Name: "schedule", Label: "Schedule", Search: true},
		},
		OrderBy: "grade",
	},
}

// Lookup returns the registered table or a NotFound error.
func Lookup(name string) (Table, error) {
	t, ok := registry[name]
	if !ok {
		return Table{}, apperr.NotFound("unknown catalog: " + name)
	}
	return t, nil
}

// Tables returns all registered table names, sorted.
func Tables() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
