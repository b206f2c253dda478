package wire

import (
	"gym-scheduling/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, scheduleHandler *adaptor.ScheduleHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/schedules", func(r chi.Router) {
		// POST /api/schedules - propose a coach/location/time assignment
		r.Post("/", scheduleHandler.ProposeSchedule)

		// GET /api/schedules?coach_id=…&date=… - day listing per resource
		r.Get("/", scheduleHandler.ListSchedules)

		r.Get("/{id}", scheduleHandler.GetSchedule)
		r.Put("/{id}", scheduleHandler.UpdateSchedule)

		// DELETE cascades to cancellation of the slot's active bookings
		r.Delete("/{id}", scheduleHandler.CancelSchedule)

		// GET /api/schedules/{id}/bookings?status=… - slot roster
		r.Get("/{id}/bookings", bookingHandler.GetSlotBookings)
	})

	// POST /api/leaves - register coach unavailability
	r.Post("/api/leaves", scheduleHandler.RegisterLeave)
}
