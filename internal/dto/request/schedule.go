package request

type ProposeScheduleRequest struct {
	CoachID         string  `json:"coach_id" validate:"required,uuid4"`
	CourseID        *string `json:"course_id,omitempty" validate:"omitempty,uuid4"`
	LocationID      string  `json:"location_id" validate:"required,uuid4"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	MaxParticipants int     `json:"max_participants" validate:"required,min=1"`

	// Force writes the slot even when blocking conflicts are detected.
	// Advisory conflicts never block regardless of this flag.
	Force bool `json:"force"`
}

type UpdateScheduleRequest struct {
	CoachID         string  `json:"coach_id" validate:"required,uuid4"`
	CourseID        *string `json:"course_id,omitempty" validate:"omitempty,uuid4"`
	LocationID      string  `json:"location_id" validate:"required,uuid4"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	MaxParticipants int     `json:"max_participants" validate:"required,min=1"`
	Force           bool    `json:"force"`
}

type CreateLeaveRequest struct {
	CoachID   string `json:"coach_id" validate:"required,uuid4"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	WholeDay  bool   `json:"whole_day"`
	StartTime string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
}

type ListSchedulesRequest struct {
	CoachID    string `json:"coach_id" validate:"omitempty,uuid4"`
	LocationID string `json:"location_id" validate:"omitempty,uuid4"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}
