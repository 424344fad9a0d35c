package projections

import (
	"context"
	"errors"

	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/application/views"
	"usdh/internal/domain/apperr"
	domainProgress "usdh/internal/domain/progress"
)

// CourseDetailQuery carries query parameters.
type CourseDetailQuery struct {
	UserID int64
	Table  string // catalog.TableCourses or catalog.TableSchoolCourses
	ID     int64
}

// CourseDetailResult carries the query result.
type CourseDetailResult struct {
	Card      views.Card
	Trackable bool                     // UG/PG courses support start/complete
	Progress  *domainProgress.Progress // nil until the user starts the course
}

// CourseDetailDeps holds dependencies for CourseDetail.
type CourseDetailDeps struct {
	Reader   CatalogReader
	Progress ProgressStore
}

// QueryCourseDetail loads one course card and the user's progress on it.
// POST: Returns NotFound for unknown ids or tables other than the two course catalogs
func QueryCourseDetail(ctx context.Context, query CourseDetailQuery, deps CourseDetailDeps) (CourseDetailResult, error) {
	if query.Table != catalog.TableCourses && query.Table != catalog.TableSchoolCourses {
		return CourseDetailResult{}, apperr.NotFound("unknown course catalog")
	}
	row, err := deps.Reader.Get(ctx, query.Table, query.ID)
	if err != nil {
		return CourseDetailResult{}, err
	}
	cards := views.Format(query.Table, []catalog.Row{row})
	result := CourseDetailResult{Card: cards[0], Trackable: query.Table == catalog.TableCourses}

	if result.Trackable && deps.Progress != nil {
		p, err := deps.Progress.Get(ctx, query.UserID, query.ID)
		switch {
		case err == nil:
			result.Progress = &p
		case !errors.Is(err, apperr.ErrNotFound):
			return CourseDetailResult{}, err
		}
	}
	return result, nil
}
