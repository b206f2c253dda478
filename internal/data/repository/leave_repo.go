package repository

import (
	"context"
	"fmt"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave *entity.CoachLeave) error
	FindByCoachAndDate(ctx context.Context, coachID uuid.UUID, date time.Time) ([]*entity.CoachLeave, error)
}

type leaveRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLeaveRepository(db database.PgxIface, log *zap.Logger) LeaveRepository {
	return &leaveRepository{
		db:  db,
		log: log.With(zap.String("repository", "leave")),
	}
}

func (r *leaveRepository) Create(ctx context.Context, leave *entity.CoachLeave) error {
	query := `
		INSERT INTO coach_leaves (id, coach_id, date, whole_day, start_min, end_min, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		leave.ID,
		leave.CoachID,
		leave.Date,
		leave.WholeDay,
		leave.StartMin,
		leave.EndMin,
		leave.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create coach leave",
			zap.Error(err),
			zap.String("coach_id", leave.CoachID.String()),
			zap.Time("date", leave.Date),
		)
		return fmt.Errorf("create leave for coach %s: %w", leave.CoachID.String(), err)
	}

	return nil
}

func (r *leaveRepository) FindByCoachAndDate(ctx context.Context, coachID uuid.UUID, date time.Time) ([]*entity.CoachLeave, error) {
	query := `
		SELECT id, coach_id, date, whole_day, start_min, end_min, created_at
		FROM coach_leaves
		WHERE coach_id = $1 AND date = $2
		ORDER BY start_min
	`

	rows, err := r.db.Query(ctx, query, coachID, date)
	if err != nil {
		r.log.Error("Failed to find leaves by coach and date",
			zap.Error(err),
			zap.String("coach_id", coachID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find leaves for coach %s: %w", coachID.String(), err)
	}
	defer rows.Close()

	var leaves []*entity.CoachLeave
	for rows.Next() {
		var leave entity.CoachLeave
		err := rows.Scan(
			&leave.ID,
			&leave.CoachID,
			&leave.Date,
			&leave.WholeDay,
			&leave.StartMin,
			&leave.EndMin,
			&leave.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan leave row", zap.Error(err))
			return nil, fmt.Errorf("scan leave row: %w", err)
		}
		leaves = append(leaves, &leave)
	}

	return leaves, nil
}
