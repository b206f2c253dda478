package repository

import (
	"context"
	"fmt"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
}

type courseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourseRepository(db database.PgxIface, log *zap.Logger) CourseRepository {
	return &courseRepository{
		db:  db,
		log: log.With(zap.String("repository", "course")),
	}
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM courses WHERE id = $1`

	var course entity.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.IsActive,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course by ID",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return nil, fmt.Errorf("find course by ID %s: %w", id.String(), err)
	}

	return &course, nil
}
