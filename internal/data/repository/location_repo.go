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

type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
}

type locationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLocationRepository(db database.PgxIface, log *zap.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log.With(zap.String("repository", "location")),
	}
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	query := `SELECT id, name, is_active, created_at, updated_at FROM locations WHERE id = $1`

	var location entity.Location
	err := r.db.QueryRow(ctx, query, id).Scan(
		&location.ID,
		&location.Name,
		&location.IsActive,
		&location.CreatedAt,
		&location.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find location by ID",
			zap.Error(err),
			zap.String("location_id", id.String()),
		)
		return nil, fmt.Errorf("find location by ID %s: %w", id.String(), err)
	}

	return &location, nil
}
