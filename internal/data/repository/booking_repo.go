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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBySlot(ctx context.Context, slotID uuid.UUID, status *entity.BookingStatus) ([]*entity.Booking, error)
	CountBySlotAndStatus(ctx context.Context, slotID uuid.UUID, status entity.BookingStatus) (int, error)

	// UpdateStatus transitions a booking from one status to another. The
	// conditional WHERE backs the state machine's single-transition rule at
	// the storage layer; it reports whether a row actually changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (bool, error)

	// UpdateStatusBySlot bulk-transitions every booking of a slot in the
	// given status, returning the number changed.
	UpdateStatusBySlot(ctx context.Context, slotID uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, schedule_slot_id, member_id, status, decided_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ScheduleSlotID,
		&booking.MemberID,
		&booking.Status,
		&booking.DecidedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ScheduleSlotID,
		booking.MemberID,
		booking.Status,
		booking.DecidedAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("slot_id", booking.ScheduleSlotID.String()),
			zap.String("member_id", booking.MemberID.String()),
		)
		return fmt.Errorf("create booking for member %s: %w", booking.MemberID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindBySlot(ctx context.Context, slotID uuid.UUID, status *entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE schedule_slot_id = $1`
	args := []any{slotID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings by slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find bookings by slot %s: %w", slotID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountBySlotAndStatus(ctx context.Context, slotID uuid.UUID, status entity.BookingStatus) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE schedule_slot_id = $1 AND status = $2`

	var count int
	err := r.db.QueryRow(ctx, query, slotID, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count %s bookings for slot %s: %w", string(status), slotID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, decided_at = $4, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, decidedAt)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) UpdateStatusBySlot(ctx context.Context, slotID uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $3, decided_at = $4, updated_at = $4
		WHERE schedule_slot_id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, slotID, from, to, decidedAt)
	if err != nil {
		r.log.Error("Failed to bulk update booking status",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return 0, fmt.Errorf("update bookings for slot %s to %s: %w", slotID.String(), string(to), err)
	}

	return result.RowsAffected(), nil
}
