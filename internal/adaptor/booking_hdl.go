package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-scheduling/internal/dto/request"
	"gym-scheduling/internal/usecase"
	"gym-scheduling/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.RequestBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	// A rejected booking (slot full) is still a created record.
	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetSlotBookings handles GET /api/schedules/{id}/bookings?status=&limit=
func (h *BookingHandler) GetSlotBookings(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Schedule slot ID is required", nil)
		return
	}

	bookings, err := h.service.GetSlotBookings(r.Context(), slotID, r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "get slot bookings")
		return
	}

	if limit := utils.ParseInt(r.URL.Query().Get("limit"), 0); limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}

	utils.ResponseSuccess(w, "success", bookings)
}
