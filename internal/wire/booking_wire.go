package wire

import (
	"gym-scheduling/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - book a member into a slot; a full slot comes
		// back as a rejected booking, not an error
		r.Post("/", bookingHandler.CreateBooking)

		r.Get("/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/cancel - valid only for confirmed bookings
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
