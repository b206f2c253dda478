package usecase

import (
	"gym-scheduling/internal/data/repository"
	"gym-scheduling/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Schedule ScheduleService
	Booking  BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	calendar := NewCalendarIndex(repo.Slot, log)
	detector := NewConflictDetector(calendar, repo, config.Schedule.DailyLimitMinutes, log)
	ledger := NewCapacityLedger(repo.Slot, repo.Booking, log)

	return &Service{
		Schedule: NewScheduleService(repo, calendar, detector, ledger, log),
		Booking:  NewBookingService(repo, ledger, log),
	}
}
