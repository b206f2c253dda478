package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Terminal reports whether the status admits no further transition.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Booking is a member's claim on one seat of a ScheduleSlot.
// Requested is the in-memory initial state; persisted bookings are always decided.
type Booking struct {
	Base
	ScheduleSlotID uuid.UUID     `db:"schedule_slot_id"`
	MemberID       uuid.UUID     `db:"member_id"`
	Status         BookingStatus `db:"status"`
	DecidedAt      *time.Time    `db:"decided_at"`
}
