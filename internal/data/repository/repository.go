package repository

import (
	"gym-scheduling/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Slot     SlotRepository
	Leave    LeaveRepository
	Booking  BookingRepository
	Coach    CoachRepository
	Location LocationRepository
	Course   CourseRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Slot:     NewSlotRepository(db, log),
		Leave:    NewLeaveRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Coach:    NewCoachRepository(db, log),
		Location: NewLocationRepository(db, log),
		Course:   NewCourseRepository(db, log),
	}
}
