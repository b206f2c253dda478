package repository

import (
	"context"
	"fmt"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.ScheduleSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleSlot, error)
	Update(ctx context.Context, slot *entity.ScheduleSlot) error
	MarkCancelled(ctx context.Context, id uuid.UUID) error

	// FindActiveByResourceAndDate lists active slots occupying the given coach
	// or location on one date, ordered by start time.
	FindActiveByResourceAndDate(ctx context.Context, resource entity.ResourceType, resourceID uuid.UUID, date time.Time) ([]*entity.ScheduleSlot, error)

	// FindActiveEndedBefore lists active slots whose end instant is at or
	// before the cutoff, for the completion sweep.
	FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ScheduleSlot, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, coach_id, course_id, location_id, date, start_min, end_min, max_participants, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.ScheduleSlot, error) {
	var slot entity.ScheduleSlot
	err := row.Scan(
		&slot.ID,
		&slot.CoachID,
		&slot.CourseID,
		&slot.LocationID,
		&slot.Date,
		&slot.StartMin,
		&slot.EndMin,
		&slot.MaxParticipants,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (` + slotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.CoachID,
		slot.CourseID,
		slot.LocationID,
		slot.Date,
		slot.StartMin,
		slot.EndMin,
		slot.MaxParticipants,
		slot.Status,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule slot",
			zap.Error(err),
			zap.String("coach_id", slot.CoachID.String()),
			zap.String("location_id", slot.LocationID.String()),
			zap.Time("date", slot.Date),
		)
		return fmt.Errorf("create schedule slot for coach %s: %w", slot.CoachID.String(), err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *entity.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET coach_id = $2, course_id = $3, location_id = $4, date = $5, start_min = $6,
		    end_min = $7, max_participants = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.CoachID,
		slot.CourseID,
		slot.LocationID,
		slot.Date,
		slot.StartMin,
		slot.EndMin,
		slot.MaxParticipants,
		slot.Status,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update schedule slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update schedule slot %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule slot %s: %w", slot.ID.String(), entity.ErrSlotNotFound)
	}

	return nil
}

func (r *slotRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE schedule_slots SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, entity.SlotStatusCancelled)
	if err != nil {
		r.log.Error("Failed to cancel schedule slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("cancel schedule slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule slot %s: %w", id.String(), entity.ErrSlotNotFound)
	}

	return nil
}

func (r *slotRepository) FindActiveByResourceAndDate(ctx context.Context, resource entity.ResourceType, resourceID uuid.UUID, date time.Time) ([]*entity.ScheduleSlot, error) {
	column := "coach_id"
	if resource == entity.ResourceLocation {
		column = "location_id"
	}

	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE ` + column + ` = $1 AND date = $2 AND status = $3
		ORDER BY start_min
	`

	rows, err := r.db.Query(ctx, query, resourceID, date, entity.SlotStatusActive)
	if err != nil {
		r.log.Error("Failed to find slots by resource and date",
			zap.Error(err),
			zap.String("resource", string(resource)),
			zap.String("resource_id", resourceID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find slots by %s %s: %w", string(resource), resourceID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ScheduleSlot, error) {
	// end instant = midnight of date + end_min minutes
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE status = $1 AND date + (end_min * interval '1 minute') <= $2
		ORDER BY date, end_min
	`

	rows, err := r.db.Query(ctx, query, entity.SlotStatusActive, cutoff)
	if err != nil {
		r.log.Error("Failed to find ended slots",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return nil, fmt.Errorf("find slots ended before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var slots []*entity.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
