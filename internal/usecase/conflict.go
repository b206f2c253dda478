package usecase

import (
	"context"
	"fmt"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/data/repository"

	"go.uber.org/zap"
)

// ConflictDetector classifies every reason a candidate slot cannot be safely
// created or updated. A conflict is a normal result, never an error; errors
// are reserved for unresolved references and repository failures.
type ConflictDetector struct {
	calendar *CalendarIndex
	repo     *repository.Repository

	// dailyLimitMinutes caps a coach's scheduled minutes per day.
	// Zero means no limit.
	dailyLimitMinutes int

	log *zap.Logger
}

func NewConflictDetector(calendar *CalendarIndex, repo *repository.Repository, dailyLimitMinutes int, log *zap.Logger) *ConflictDetector {
	return &ConflictDetector{
		calendar:          calendar,
		repo:              repo,
		dailyLimitMinutes: dailyLimitMinutes,
		log:               log.With(zap.String("component", "conflict_detector")),
	}
}

// Detect returns the candidate's conflicts in a fixed order: coach leave,
// coach overlap, location overlap, daily minutes threshold. The candidate's
// own ID is always excluded from overlap checks, so updates never conflict
// with themselves.
func (d *ConflictDetector) Detect(ctx context.Context, candidate *entity.ScheduleSlot) ([]entity.Conflict, error) {
	if err := d.resolveReferences(ctx, candidate); err != nil {
		return nil, err
	}

	var conflicts []entity.Conflict

	leaves, err := d.repo.Leave.FindByCoachAndDate(ctx, candidate.CoachID, candidate.Date)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}
	for _, leave := range leaves {
		if !leave.Blocks(candidate.StartMin, candidate.EndMin) {
			continue
		}
		conflicts = append(conflicts, entity.Conflict{
			Type:       entity.ConflictCoachOnLeave,
			Severity:   entity.SeverityBlocking,
			CoachID:    candidate.CoachID,
			LocationID: candidate.LocationID,
			Date:       candidate.Date,
			StartMin:   leave.StartMin,
			EndMin:     leave.EndMin,
		})
	}

	coachOverlaps, err := d.calendar.FindOverlapping(ctx, entity.ResourceCoach, candidate.CoachID, candidate.Date, candidate.StartMin, candidate.EndMin, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}
	for _, other := range coachOverlaps {
		otherID := other.ID
		conflicts = append(conflicts, entity.Conflict{
			Type:              entity.ConflictCoachTimeOverlap,
			Severity:          entity.SeverityBlocking,
			ConflictingSlotID: &otherID,
			CoachID:           candidate.CoachID,
			LocationID:        other.LocationID,
			Date:              candidate.Date,
			StartMin:          other.StartMin,
			EndMin:            other.EndMin,
		})
	}

	locationOverlaps, err := d.calendar.FindOverlapping(ctx, entity.ResourceLocation, candidate.LocationID, candidate.Date, candidate.StartMin, candidate.EndMin, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}
	for _, other := range locationOverlaps {
		otherID := other.ID
		conflicts = append(conflicts, entity.Conflict{
			Type:              entity.ConflictLocationTimeOverlap,
			Severity:          entity.SeverityBlocking,
			ConflictingSlotID: &otherID,
			CoachID:           other.CoachID,
			LocationID:        candidate.LocationID,
			Date:              candidate.Date,
			StartMin:          other.StartMin,
			EndMin:            other.EndMin,
		})
	}

	if d.dailyLimitMinutes > 0 {
		daySlots, err := d.calendar.DaySlots(ctx, entity.ResourceCoach, candidate.CoachID, candidate.Date)
		if err != nil {
			return nil, fmt.Errorf("detect conflicts: %w", err)
		}

		total := candidate.DurationMinutes()
		for _, slot := range daySlots {
			if slot.ID == candidate.ID {
				continue
			}
			total += slot.DurationMinutes()
		}

		if total > d.dailyLimitMinutes {
			conflicts = append(conflicts, entity.Conflict{
				Type:              entity.ConflictDailyMinutesThreshold,
				Severity:          entity.SeverityAdvisory,
				CoachID:           candidate.CoachID,
				LocationID:        candidate.LocationID,
				Date:              candidate.Date,
				StartMin:          candidate.StartMin,
				EndMin:            candidate.EndMin,
				DailyMinutes:      total,
				DailyLimitMinutes: d.dailyLimitMinutes,
			})
		}
	}

	return conflicts, nil
}

// resolveReferences verifies the candidate's coach, location, and optional
// course exist. A missing reference is a validation failure, not a conflict.
func (d *ConflictDetector) resolveReferences(ctx context.Context, candidate *entity.ScheduleSlot) error {
	coach, err := d.repo.Coach.FindByID(ctx, candidate.CoachID)
	if err != nil {
		return fmt.Errorf("resolve coach: %w", err)
	}
	if coach == nil {
		return fmt.Errorf("coach %s: %w", candidate.CoachID.String(), entity.ErrValidationFailed)
	}

	location, err := d.repo.Location.FindByID(ctx, candidate.LocationID)
	if err != nil {
		return fmt.Errorf("resolve location: %w", err)
	}
	if location == nil {
		return fmt.Errorf("location %s: %w", candidate.LocationID.String(), entity.ErrValidationFailed)
	}

	if candidate.CourseID != nil {
		course, err := d.repo.Course.FindByID(ctx, *candidate.CourseID)
		if err != nil {
			return fmt.Errorf("resolve course: %w", err)
		}
		if course == nil {
			return fmt.Errorf("course %s: %w", candidate.CourseID.String(), entity.ErrValidationFailed)
		}
	}

	return nil
}
