package response

import (
	"time"

	"gym-scheduling/internal/data/entity"
)

type BookingResponse struct {
	ID             string     `json:"id"`
	ScheduleSlotID string     `json:"schedule_slot_id"`
	MemberID       string     `json:"member_id"`
	Status         string     `json:"status"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		ScheduleSlotID: booking.ScheduleSlotID.String(),
		MemberID:       booking.MemberID.String(),
		Status:         string(booking.Status),
		DecidedAt:      booking.DecidedAt,
		CreatedAt:      booking.CreatedAt,
	}
}
