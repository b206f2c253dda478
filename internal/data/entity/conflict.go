package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConflictType string

const (
	ConflictCoachOnLeave          ConflictType = "coach_on_leave"
	ConflictCoachTimeOverlap      ConflictType = "coach_time_overlap"
	ConflictLocationTimeOverlap   ConflictType = "location_time_overlap"
	ConflictDailyMinutesThreshold ConflictType = "daily_minutes_threshold_exceeded"
)

type ConflictSeverity string

const (
	SeverityBlocking ConflictSeverity = "blocking"
	SeverityAdvisory ConflictSeverity = "advisory"
)

// Conflict is a detected reason a candidate slot cannot coexist with existing
// state. It carries ids and raw fields only; message formatting belongs to the
// presentation layer.
type Conflict struct {
	Type              ConflictType
	Severity          ConflictSeverity
	ConflictingSlotID *uuid.UUID
	CoachID           uuid.UUID
	LocationID        uuid.UUID
	Date              time.Time
	StartMin          ClockMinute
	EndMin            ClockMinute

	// Filled only for ConflictDailyMinutesThreshold.
	DailyMinutes      int
	DailyLimitMinutes int
}

// HasBlocking reports whether any conflict in the list is blocking.
func HasBlocking(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}
