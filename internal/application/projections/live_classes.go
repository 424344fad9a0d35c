package projections

import (
	"context"

	"usdh/internal/adapters/storage/catalog"
	domainLive "usdh/internal/domain/live"
)

// LiveClassesQuery carries query parameters.
type LiveClassesQuery struct {
	Grade string // optional
}

// LiveClassView is a class with its embeddable player URL.
type LiveClassView struct {
	domainLive.Class
	Player string // "" when the link is not a YouTube video
}

// LiveClassesResult carries the query result.
type LiveClassesResult struct {
	Grades  []string
	Grade   string
	Classes []LiveClassView
}

// ClassStore interface for live class queries.
type ClassStore interface {
	ListByGrade(ctx context.Context, grade string) ([]domainLive.Class, error)
}

// LiveClassesDeps holds dependencies for LiveClasses.
type LiveClassesDeps struct {
	Reader  CatalogReader
	Classes ClassStore
}

// QueryLiveClasses lists the grades and, once a grade is chosen, its classes.
// POST: Classes is empty when Grade is empty
func QueryLiveClasses(ctx context.Context, query LiveClassesQuery, deps LiveClassesDeps) (LiveClassesResult, error) {
	grades, err := deps.Reader.Distinct(ctx, catalog.TableLiveClasses, "grade", catalog.Query{})
	if err != nil {
		return LiveClassesResult{}, err
	}
	result := LiveClassesResult{Grades: grades, Grade: query.Grade}
	if query.Grade == "" {
		return result, nil
	}

	classes, err := deps.Classes.ListByGrade(ctx, query.Grade)
	if err != nil {
		return LiveClassesResult{}, err
	}
	for _, c := range classes {
		result.Classes = append(result.Classes, LiveClassView{Class: c, Player: c.EmbedURL()})
	}
	return result, nil
}
