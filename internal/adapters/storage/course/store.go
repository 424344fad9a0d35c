package course

import (
	"context"

	domain "usdh/internal/domain/course"
)

// Store persists UG/PG courses.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Course, error)
	Create(ctx context.Context, c domain.Course) (int64, error)
	Update(ctx context.Context, c domain.Course) error
	Delete(ctx context.Context, id int64) error
}

// SchoolStore persists school courses.
type SchoolStore interface {
	GetByID(ctx context.Context, id int64) (domain.SchoolCourse, error)
	Create(ctx context.Context, c domain.SchoolCourse) (int64, error)
	Update(ctx context.Context, c domain.SchoolCourse) error
	Delete(ctx context.Context, id int64) error
}
