package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusActive    SlotStatus = "active"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// ResourceType keys calendar lookups: a slot occupies both its coach and its location.
type ResourceType string

const (
	ResourceCoach    ResourceType = "coach"
	ResourceLocation ResourceType = "location"
)

// ScheduleSlot assigns a coach to a location for a bounded interval on one date,
// optionally tied to a course, with a seat limit.
type ScheduleSlot struct {
	Base
	CoachID         uuid.UUID   `db:"coach_id"`
	CourseID        *uuid.UUID  `db:"course_id"`
	LocationID      uuid.UUID   `db:"location_id"`
	Date            time.Time   `db:"date"`
	StartMin        ClockMinute `db:"start_min"`
	EndMin          ClockMinute `db:"end_min"`
	MaxParticipants int         `db:"max_participants"`
	Status          SlotStatus  `db:"status"`
}

func (s *ScheduleSlot) DurationMinutes() int {
	return int(s.EndMin - s.StartMin)
}

// EndAt is the absolute instant the slot ends, used by the completion sweep.
func (s *ScheduleSlot) EndAt() time.Time {
	return s.EndMin.On(s.Date)
}
