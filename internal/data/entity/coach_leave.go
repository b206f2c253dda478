package entity

import (
	"time"

	"github.com/google/uuid"
)

// CoachLeave is a coach's declared unavailability: either a whole day
// or a clock window on one date. Read-only for the conflict detector.
type CoachLeave struct {
	BaseSimple
	CoachID  uuid.UUID   `db:"coach_id"`
	Date     time.Time   `db:"date"`
	WholeDay bool        `db:"whole_day"`
	StartMin ClockMinute `db:"start_min"`
	EndMin   ClockMinute `db:"end_min"`
}

// Blocks reports whether the leave makes the coach unavailable for [start,end).
func (l *CoachLeave) Blocks(start, end ClockMinute) bool {
	if l.WholeDay {
		return true
	}
	return Overlaps(l.StartMin, l.EndMin, start, end)
}
