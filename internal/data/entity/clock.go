package entity

import (
	"fmt"
	"time"
)

// ClockMinute is a time of day in minutes since midnight (0..1439).
type ClockMinute int

// ParseClock parses a "15:04" clock string into a ClockMinute.
func ParseClock(s string) (ClockMinute, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return ClockMinute(t.Hour()*60 + t.Minute()), nil
}

func (m ClockMinute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// On returns the absolute instant of this clock minute on the given date.
func (m ClockMinute) On(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, int(m)/60, int(m)%60, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
// Back-to-back intervals ([09:00,10:00) and [10:00,11:00)) do not overlap.
func Overlaps(s1, e1, s2, e2 ClockMinute) bool {
	return s1 < e2 && s2 < e1
}
