package entity

import "errors"

var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidTransition      = errors.New("invalid booking transition")
	ErrSlotNotFound           = errors.New("schedule slot not found")
	ErrSlotCancelled          = errors.New("schedule slot cancelled")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrCapacityBelowConfirmed = errors.New("max participants below confirmed bookings")
)
