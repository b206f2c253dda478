package response

import (
	"time"

	"gym-scheduling/internal/data/entity"
)

type ScheduleSlotResponse struct {
	ID              string    `json:"id"`
	CoachID         string    `json:"coach_id"`
	CourseID        *string   `json:"course_id,omitempty"`
	LocationID      string    `json:"location_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	MaxParticipants int       `json:"max_participants"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type ConflictResponse struct {
	Type              string  `json:"type"`
	Severity          string  `json:"severity"`
	ConflictingSlotID *string `json:"conflicting_slot_id,omitempty"`
	CoachID           string  `json:"coach_id"`
	LocationID        string  `json:"location_id"`
	Date              string  `json:"date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	DailyMinutes      int     `json:"daily_minutes,omitempty"`
	DailyLimitMinutes int     `json:"daily_limit_minutes,omitempty"`
}

// ScheduleDecisionResponse is the outcome of a propose/update: the full
// conflict list plus the written slot when the write went through.
type ScheduleDecisionResponse struct {
	Created   bool                  `json:"created"`
	Conflicts []ConflictResponse    `json:"conflicts"`
	Slot      *ScheduleSlotResponse `json:"slot,omitempty"`
}

func SlotToResponse(slot *entity.ScheduleSlot) ScheduleSlotResponse {
	resp := ScheduleSlotResponse{
		ID:              slot.ID.String(),
		CoachID:         slot.CoachID.String(),
		LocationID:      slot.LocationID.String(),
		Date:            slot.Date.Format("2006-01-02"),
		StartTime:       slot.StartMin.String(),
		EndTime:         slot.EndMin.String(),
		MaxParticipants: slot.MaxParticipants,
		Status:          string(slot.Status),
		CreatedAt:       slot.CreatedAt,
	}
	if slot.CourseID != nil {
		courseID := slot.CourseID.String()
		resp.CourseID = &courseID
	}
	return resp
}

func ConflictToResponse(c entity.Conflict) ConflictResponse {
	resp := ConflictResponse{
		Type:              string(c.Type),
		Severity:          string(c.Severity),
		CoachID:           c.CoachID.String(),
		LocationID:        c.LocationID.String(),
		Date:              c.Date.Format("2006-01-02"),
		StartTime:         c.StartMin.String(),
		EndTime:           c.EndMin.String(),
		DailyMinutes:      c.DailyMinutes,
		DailyLimitMinutes: c.DailyLimitMinutes,
	}
	if c.ConflictingSlotID != nil {
		id := c.ConflictingSlotID.String()
		resp.ConflictingSlotID = &id
	}
	return resp
}

func ConflictsToResponse(conflicts []entity.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		out[i] = ConflictToResponse(c)
	}
	return out
}
