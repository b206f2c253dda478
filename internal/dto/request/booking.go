package request

type CreateBookingRequest struct {
	MemberID       string `json:"member_id" validate:"required,uuid4"`
	ScheduleSlotID string `json:"schedule_slot_id" validate:"required,uuid4"`
}
