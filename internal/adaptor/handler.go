package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/usecase"
	"gym-scheduling/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Schedule *ScheduleHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Schedule: NewScheduleHandler(service.Schedule, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps domain errors to HTTP responses. Conflicts and
// full slots never reach here: both are normal payloads, not errors.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrSlotNotFound), errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrValidationFailed):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, entity.ErrSlotCancelled),
		errors.Is(err, entity.ErrCapacityBelowConfirmed):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "invalid"):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
