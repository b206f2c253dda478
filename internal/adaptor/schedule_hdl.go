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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// ProposeSchedule handles POST /api/schedules
func (h *ScheduleHandler) ProposeSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.ProposeScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	decision, err := h.service.ProposeSchedule(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "propose schedule")
		return
	}

	if !decision.Created {
		// Blocking conflicts, nothing written; the full list goes back for display.
		utils.ResponseSuccess(w, "conflicts detected", decision)
		return
	}

	utils.ResponseCreated(w, "success", decision)
}

// UpdateSchedule handles PUT /api/schedules/{id}
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Schedule slot ID is required", nil)
		return
	}

	var req request.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	decision, err := h.service.UpdateSchedule(r.Context(), slotID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "success", decision)
}

// CancelSchedule handles DELETE /api/schedules/{id}
func (h *ScheduleHandler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Schedule slot ID is required", nil)
		return
	}

	if err := h.service.CancelSchedule(r.Context(), slotID); err != nil {
		handleServiceError(w, h.log, err, "cancel schedule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetSchedule handles GET /api/schedules/{id}
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Schedule slot ID is required", nil)
		return
	}

	slot, err := h.service.GetScheduleByID(r.Context(), slotID)
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// ListSchedules handles GET /api/schedules?coach_id=…&date=… or ?location_id=…&date=…
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.ListSchedulesRequest{
		CoachID:    query.Get("coach_id"),
		LocationID: query.Get("location_id"),
		Date:       query.Get("date"),
	}

	slots, err := h.service.ListSchedules(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list schedules")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// RegisterLeave handles POST /api/leaves
func (h *ScheduleHandler) RegisterLeave(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RegisterLeave(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "register leave")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}
