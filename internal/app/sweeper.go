package app

import (
	"context"
	"fmt"

	"gym-scheduling/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically moves confirmed bookings of ended slots to Completed.
// It has no ordering dependency on live booking traffic.
type Sweeper struct {
	bookings usecase.BookingService
	cron     *cron.Cron
	spec     string
	log      *zap.Logger
}

func NewSweeper(bookings usecase.BookingService, spec string, log *zap.Logger) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		cron:     cron.New(),
		spec:     spec,
		log:      log.With(zap.String("component", "sweeper")),
	}
}

// Start registers the sweep job and runs it once immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.sweep(ctx) }); err != nil {
		return fmt.Errorf("register sweep job %q: %w", s.spec, err)
	}

	s.log.Info("Starting completion sweep", zap.String("cron", s.spec))

	go s.sweep(ctx)
	s.cron.Start()
	return nil
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Completion sweep stopped")
}

func (s *Sweeper) sweep(ctx context.Context) {
	completed, err := s.bookings.CompleteEndedSlots(ctx)
	if err != nil {
		s.log.Error("Completion sweep failed", zap.Error(err))
		return
	}

	if completed > 0 {
		s.log.Info("Completion sweep finished", zap.Int64("bookings_completed", completed))
	}
}
