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

type ScheduleService interface {
	// ProposeSchedule validates a candidate slot and writes it unless a
	// blocking conflict exists and force is false. The full conflict list is
	// returned either way.
	ProposeSchedule(ctx context.Context, req *request.ProposeScheduleRequest) (*response.ScheduleDecisionResponse, error)

	// UpdateSchedule replaces a slot's assignment, excluding the slot itself
	// from overlap checks. maxParticipants cannot drop below the confirmed
	// booking count.
	UpdateSchedule(ctx context.Context, slotID string, req *request.UpdateScheduleRequest) (*response.ScheduleDecisionResponse, error)

	// CancelSchedule marks a slot cancelled and cascade-cancels its
	// confirmed bookings.
	CancelSchedule(ctx context.Context, slotID string) error

	GetScheduleByID(ctx context.Context, slotID string) (*response.ScheduleSlotResponse, error)
	ListSchedules(ctx context.Context, req *request.ListSchedulesRequest) ([]response.ScheduleSlotResponse, error)
	RegisterLeave(ctx context.Context, req *request.CreateLeaveRequest) error
}

type scheduleService struct {
	repo     *repository.Repository
	calendar *CalendarIndex
	detector *ConflictDetector
	ledger   *CapacityLedger
	log      *zap.Logger
	now      func() time.Time
}

func NewScheduleService(repo *repository.Repository, calendar *CalendarIndex, detector *ConflictDetector, ledger *CapacityLedger, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:     repo,
		calendar: calendar,
		detector: detector,
		ledger:   ledger,
		log:      log.With(zap.String("service", "schedule")),
		now:      time.Now,
	}
}

// buildCandidate parses the shared propose/update fields into a slot entity.
func buildCandidate(coachID string, courseID *string, locationID, date, startTime, endTime string, maxParticipants int) (*entity.ScheduleSlot, error) {
	coach, err := uuid.Parse(coachID)
	if err != nil {
		return nil, fmt.Errorf("invalid coach ID format %s: %w", coachID, err)
	}

	location, err := uuid.Parse(locationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location ID format %s: %w", locationID, err)
	}

	var course *uuid.UUID
	if courseID != nil {
		parsed, err := uuid.Parse(*courseID)
		if err != nil {
			return nil, fmt.Errorf("invalid course ID format %s: %w", *courseID, err)
		}
		course = &parsed
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", date, err)
	}

	start, err := entity.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := entity.ParseClock(endTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("start time %s not before end time %s: %w", start, end, entity.ErrValidationFailed)
	}

	return &entity.ScheduleSlot{
		CoachID:         coach,
		CourseID:        course,
		LocationID:      location,
		Date:            day,
		StartMin:        start,
		EndMin:          end,
		MaxParticipants: maxParticipants,
		Status:          entity.SlotStatusActive,
	}, nil
}

func (s *scheduleService) ProposeSchedule(ctx context.Context, req *request.ProposeScheduleRequest) (*response.ScheduleDecisionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Propose schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	candidate, err := buildCandidate(req.CoachID, req.CourseID, req.LocationID, req.Date, req.StartTime, req.EndTime, req.MaxParticipants)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidate.ID = uuid.New()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	conflicts, err := s.detector.Detect(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("propose schedule: %w", err)
	}

	decision := &response.ScheduleDecisionResponse{
		Conflicts: response.ConflictsToResponse(conflicts),
	}

	if entity.HasBlocking(conflicts) && !req.Force {
		s.log.Info("Schedule proposal blocked",
			zap.String("coach_id", req.CoachID),
			zap.String("location_id", req.LocationID),
			zap.String("date", req.Date),
			zap.Int("conflicts", len(conflicts)),
		)
		return decision, nil
	}

	if err := s.repo.Slot.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("propose schedule: %w", err)
	}
	s.calendar.Invalidate(candidate)

	s.log.Info("Schedule slot created",
		zap.String("slot_id", candidate.ID.String()),
		zap.String("coach_id", req.CoachID),
		zap.String("location_id", req.LocationID),
		zap.String("date", req.Date),
		zap.Bool("forced", req.Force && entity.HasBlocking(conflicts)),
	)

	slot := response.SlotToResponse(candidate)
	decision.Created = true
	decision.Slot = &slot
	return decision, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, slotID string, req *request.UpdateScheduleRequest) (*response.ScheduleDecisionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	existing, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, entity.ErrSlotNotFound)
	}
	if existing.Status != entity.SlotStatusActive {
		return nil, fmt.Errorf("slot %s: %w", slotID, entity.ErrSlotCancelled)
	}

	candidate, err := buildCandidate(req.CoachID, req.CourseID, req.LocationID, req.Date, req.StartTime, req.EndTime, req.MaxParticipants)
	if err != nil {
		return nil, err
	}
	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = s.now()

	// The ledger is the serialization point; its count includes seats
	// granted but not yet persisted, which a repository count would miss.
	confirmed, err := s.ledger.CurrentCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	if req.MaxParticipants < confirmed {
		return nil, fmt.Errorf("slot %s has %d confirmed bookings: %w", slotID, confirmed, entity.ErrCapacityBelowConfirmed)
	}

	conflicts, err := s.detector.Detect(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	decision := &response.ScheduleDecisionResponse{
		Conflicts: response.ConflictsToResponse(conflicts),
	}

	if entity.HasBlocking(conflicts) && !req.Force {
		s.log.Info("Schedule update blocked",
			zap.String("slot_id", slotID),
			zap.Int("conflicts", len(conflicts)),
		)
		return decision, nil
	}

	if err := s.repo.Slot.Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	// The move may change coach, location, or day; evict both old and new.
	s.calendar.Invalidate(existing)
	s.calendar.Invalidate(candidate)
	// maxParticipants may have changed; rewrite the capacity in place so
	// seats reserved but not yet persisted stay counted.
	s.ledger.SetMax(id, req.MaxParticipants)

	s.log.Info("Schedule slot updated",
		zap.String("slot_id", slotID),
		zap.String("coach_id", req.CoachID),
		zap.String("date", req.Date),
	)

	slot := response.SlotToResponse(candidate)
	decision.Created = true
	decision.Slot = &slot
	return decision, nil
}

func (s *scheduleService) CancelSchedule(ctx context.Context, slotID string) error {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel schedule: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("slot %s: %w", slotID, entity.ErrSlotNotFound)
	}
	if slot.Status != entity.SlotStatusActive {
		return fmt.Errorf("slot %s: %w", slotID, entity.ErrSlotCancelled)
	}

	if err := s.repo.Slot.MarkCancelled(ctx, id); err != nil {
		return fmt.Errorf("cancel schedule: %w", err)
	}

	cancelled, err := s.repo.Booking.UpdateStatusBySlot(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled, s.now())
	if err != nil {
		return fmt.Errorf("cancel schedule bookings: %w", err)
	}

	s.ledger.Forget(id)
	s.calendar.Invalidate(slot)

	s.log.Info("Schedule slot cancelled",
		zap.String("slot_id", slotID),
		zap.Int64("bookings_cancelled", cancelled),
	)

	return nil
}

func (s *scheduleService) GetScheduleByID(ctx context.Context, slotID string) (*response.ScheduleSlotResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, entity.ErrSlotNotFound)
	}

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context, req *request.ListSchedulesRequest) ([]response.ScheduleSlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidationFailed, utils.FormatValidationErrors(errs))
	}
	if (req.CoachID == "") == (req.LocationID == "") {
		return nil, fmt.Errorf("exactly one of coach_id or location_id is required: %w", entity.ErrValidationFailed)
	}

	resource := entity.ResourceCoach
	idStr := req.CoachID
	if req.LocationID != "" {
		resource = entity.ResourceLocation
		idStr = req.LocationID
	}

	resourceID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", idStr, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	slots, err := s.calendar.DaySlots(ctx, resource, resourceID, date)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	out := make([]response.ScheduleSlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = response.SlotToResponse(slot)
	}
	return out, nil
}

func (s *scheduleService) RegisterLeave(ctx context.Context, req *request.CreateLeaveRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", entity.ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	coachID, err := uuid.Parse(req.CoachID)
	if err != nil {
		return fmt.Errorf("invalid coach ID format %s: %w", req.CoachID, err)
	}

	coach, err := s.repo.Coach.FindByID(ctx, coachID)
	if err != nil {
		return fmt.Errorf("register leave: %w", err)
	}
	if coach == nil {
		return fmt.Errorf("coach %s: %w", req.CoachID, entity.ErrValidationFailed)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	leave := &entity.CoachLeave{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		CoachID:  coachID,
		Date:     date,
		WholeDay: req.WholeDay,
	}

	if !req.WholeDay {
		if req.StartTime == "" || req.EndTime == "" {
			return fmt.Errorf("leave window requires start and end times: %w", entity.ErrValidationFailed)
		}
		start, err := entity.ParseClock(req.StartTime)
		if err != nil {
			return err
		}
		end, err := entity.ParseClock(req.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("start time %s not before end time %s: %w", start, end, entity.ErrValidationFailed)
		}
		leave.StartMin = start
		leave.EndMin = end
	}

	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		return fmt.Errorf("register leave: %w", err)
	}

	s.log.Info("Coach leave registered",
		zap.String("coach_id", req.CoachID),
		zap.String("date", req.Date),
		zap.Bool("whole_day", req.WholeDay),
	)

	return nil
}
