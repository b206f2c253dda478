package usecase

import (
	"context"
	"fmt"
	"sync"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationResult string

const (
	ReservationGranted  ReservationResult = "granted"
	ReservationSlotFull ReservationResult = "slot_full"
)

// slotCounter is the per-slot serialization point. Its mutex covers the
// seed read and the compare-and-increment, so two racing reservations can
// never both observe the last free seat.
type slotCounter struct {
	mu        sync.Mutex
	seeded    bool
	confirmed int
	max       int
}

// CapacityLedger enforces confirmed(slot) <= maxParticipants(slot) under
// concurrent booking requests. Counters are seeded lazily from the booking
// repository; capacity changes rewrite the counter in place (SetMax) and
// only slots that take no further reservations are dropped (Forget).
type CapacityLedger struct {
	slots    repository.SlotRepository
	bookings repository.BookingRepository
	log      *zap.Logger

	mu      sync.Mutex
	entries map[uuid.UUID]*slotCounter
}

func NewCapacityLedger(slots repository.SlotRepository, bookings repository.BookingRepository, log *zap.Logger) *CapacityLedger {
	return &CapacityLedger{
		slots:    slots,
		bookings: bookings,
		log:      log.With(zap.String("component", "capacity_ledger")),
		entries:  make(map[uuid.UUID]*slotCounter),
	}
}

func (l *CapacityLedger) entry(slotID uuid.UUID) *slotCounter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[slotID]
	if !ok {
		e = &slotCounter{}
		l.entries[slotID] = e
	}
	return e
}

// seedLocked loads the counter from storage. Caller holds e.mu; the one-time
// repository read is the only I/O ever done under the per-slot lock.
func (l *CapacityLedger) seedLocked(ctx context.Context, slotID uuid.UUID, e *slotCounter) error {
	if e.seeded {
		return nil
	}

	slot, err := l.slots.FindByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("seed capacity for slot %s: %w", slotID.String(), err)
	}
	if slot == nil {
		return fmt.Errorf("slot %s: %w", slotID.String(), entity.ErrSlotNotFound)
	}
	if slot.Status != entity.SlotStatusActive {
		return fmt.Errorf("slot %s: %w", slotID.String(), entity.ErrSlotCancelled)
	}

	confirmed, err := l.bookings.CountBySlotAndStatus(ctx, slotID, entity.BookingStatusConfirmed)
	if err != nil {
		return fmt.Errorf("seed capacity for slot %s: %w", slotID.String(), err)
	}

	e.confirmed = confirmed
	e.max = slot.MaxParticipants
	e.seeded = true
	return nil
}

// Reserve atomically claims one seat if any remain. SlotFull is an expected
// outcome, not an error.
func (l *CapacityLedger) Reserve(ctx context.Context, slotID uuid.UUID) (ReservationResult, error) {
	e := l.entry(slotID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.seedLocked(ctx, slotID, e); err != nil {
		return "", err
	}

	if e.confirmed >= e.max {
		return ReservationSlotFull, nil
	}

	e.confirmed++
	l.log.Debug("Seat reserved",
		zap.String("slot_id", slotID.String()),
		zap.Int("confirmed", e.confirmed),
		zap.Int("max", e.max),
	)
	return ReservationGranted, nil
}

// Release frees one seat. Callers must pair it with a prior granted
// reservation; an unseeded counter is left alone and will re-read the truth
// from storage on its next reserve.
func (l *CapacityLedger) Release(slotID uuid.UUID) {
	e := l.entry(slotID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.seeded {
		return
	}
	if e.confirmed > 0 {
		e.confirmed--
	}
	l.log.Debug("Seat released",
		zap.String("slot_id", slotID.String()),
		zap.Int("confirmed", e.confirmed),
	)
}

// CurrentCount returns the confirmed booking count for a slot.
func (l *CapacityLedger) CurrentCount(ctx context.Context, slotID uuid.UUID) (int, error) {
	e := l.entry(slotID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.seedLocked(ctx, slotID, e); err != nil {
		return 0, err
	}
	return e.confirmed, nil
}

// Remaining returns the number of free seats for a slot.
func (l *CapacityLedger) Remaining(ctx context.Context, slotID uuid.UUID) (int, error) {
	e := l.entry(slotID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.seedLocked(ctx, slotID, e); err != nil {
		return 0, err
	}
	return e.max - e.confirmed, nil
}

// SetMax rewrites a seeded counter's capacity in place, keeping seats that
// were granted but not yet persisted counted. An unseeded counter has no
// such seats and reads the new capacity from storage on its next reserve.
func (l *CapacityLedger) SetMax(slotID uuid.UUID, max int) {
	l.mu.Lock()
	e, ok := l.entries[slotID]
	l.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	if e.seeded {
		e.max = max
	}
	e.mu.Unlock()
}

// Forget drops a slot's counter. Only for slots that take no further
// reservations (cancelled or ended); live slots use SetMax so in-flight
// grants are never lost to a reseed.
func (l *CapacityLedger) Forget(slotID uuid.UUID) {
	l.mu.Lock()
	delete(l.entries, slotID)
	l.mu.Unlock()
}
