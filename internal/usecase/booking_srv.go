package usecase

import (
	"context"
	"fmt"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/data/repository"
	"gym-scheduling/internal/dto/request"
	"gym-scheduling/internal/dto/response"
	"gym-scheduling/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// RequestBooking admits a member into a slot. The booking is decided
	// synchronously: Confirmed when a seat was reserved, Rejected when the
	// slot is full. A full slot is a normal outcome, not an error.
	RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// CancelBooking is valid only for Confirmed bookings and frees one seat.
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetSlotBookings(ctx context.Context, slotID string, status string) ([]response.BookingResponse, error)

	// CompleteEndedSlots moves confirmed bookings of ended slots to
	// Completed. Runs from the periodic sweep; capacity is left untouched.
	CompleteEndedSlots(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo   *repository.Repository
	ledger *CapacityLedger
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingService(repo *repository.Repository, ledger *CapacityLedger, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		ledger: ledger,
		log:    log.With(zap.String("service", "booking")),
		now:    time.Now,
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("invalid member ID format %s: %w", req.MemberID, err)
	}

	slotID, err := uuid.Parse(req.ScheduleSlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", req.ScheduleSlotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("request booking: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", req.ScheduleSlotID, entity.ErrSlotNotFound)
	}
	if slot.Status != entity.SlotStatusActive {
		return nil, fmt.Errorf("slot %s: %w", req.ScheduleSlotID, entity.ErrSlotCancelled)
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ScheduleSlotID: slotID,
		MemberID:       memberID,
		Status:         entity.BookingStatusRequested,
	}

	result, err := s.ledger.Reserve(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reserve seat: %w", err)
	}

	decidedAt := s.now()
	booking.DecidedAt = &decidedAt
	switch result {
	case ReservationGranted:
		booking.Status = entity.BookingStatusConfirmed
	case ReservationSlotFull:
		booking.Status = entity.BookingStatusRejected
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if result == ReservationGranted {
			s.ledger.Release(slotID)
		}
		s.log.Error("Failed to persist booking",
			zap.Error(err),
			zap.String("slot_id", req.ScheduleSlotID),
			zap.String("member_id", req.MemberID),
		)
		return nil, fmt.Errorf("request booking: %w", err)
	}

	s.log.Info("Booking decided",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", req.ScheduleSlotID),
		zap.String("member_id", req.MemberID),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s status is %s: %w", bookingID, string(booking.Status), entity.ErrInvalidTransition)
	}

	now := s.now()
	changed, err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled, now)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !changed {
		// Lost a race with another transition on the same booking.
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrInvalidTransition)
	}

	s.ledger.Release(booking.ScheduleSlotID)

	booking.Status = entity.BookingStatusCancelled
	booking.DecidedAt = &now
	booking.UpdatedAt = now

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("slot_id", booking.ScheduleSlotID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrBookingNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetSlotBookings(ctx context.Context, slotID string, status string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	var filter *entity.BookingStatus
	if status != "" {
		st := entity.BookingStatus(status)
		switch st {
		case entity.BookingStatusConfirmed, entity.BookingStatusRejected,
			entity.BookingStatusCancelled, entity.BookingStatusCompleted:
			filter = &st
		default:
			return nil, fmt.Errorf("unknown booking status %s: %w", status, entity.ErrValidationFailed)
		}
	}

	bookings, err := s.repo.Booking.FindBySlot(ctx, id, filter)
	if err != nil {
		return nil, fmt.Errorf("list slot bookings: %w", err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingToResponse(b)
	}
	return out, nil
}

func (s *bookingService) CompleteEndedSlots(ctx context.Context) (int64, error) {
	cutoff := s.now()

	slots, err := s.repo.Slot.FindActiveEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("complete ended slots: %w", err)
	}

	var total int64
	for _, slot := range slots {
		n, err := s.repo.Booking.UpdateStatusBySlot(ctx, slot.ID, entity.BookingStatusConfirmed, entity.BookingStatusCompleted, cutoff)
		if err != nil {
			return total, fmt.Errorf("complete bookings for slot %s: %w", slot.ID.String(), err)
		}
		total += n

		// The slot is over; its counter has no further use.
		s.ledger.Forget(slot.ID)
	}

	if total > 0 {
		s.log.Info("Completed bookings for ended slots",
			zap.Int("slots", len(slots)),
			zap.Int64("bookings", total),
		)
	}

	return total, nil
}
