package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dayKey identifies one resource's calendar day.
type dayKey struct {
	resource   entity.ResourceType
	resourceID uuid.UUID
	day        string
}

func newDayKey(resource entity.ResourceType, resourceID uuid.UUID, date time.Time) dayKey {
	return dayKey{resource: resource, resourceID: resourceID, day: date.Format("2006-01-02")}
}

// CalendarIndex answers overlap queries for a resource's day, caching the
// backing repository's results per (resource, day). Writes to a slot must
// invalidate both its coach day and its location day so a conflict check
// issued after a write observes it.
type CalendarIndex struct {
	slots repository.SlotRepository
	log   *zap.Logger

	mu    sync.RWMutex
	cache map[dayKey][]*entity.ScheduleSlot
}

func NewCalendarIndex(slots repository.SlotRepository, log *zap.Logger) *CalendarIndex {
	return &CalendarIndex{
		slots: slots,
		log:   log.With(zap.String("component", "calendar")),
		cache: make(map[dayKey][]*entity.ScheduleSlot),
	}
}

// DaySlots returns the active slots of a resource on one date, cached.
func (c *CalendarIndex) DaySlots(ctx context.Context, resource entity.ResourceType, resourceID uuid.UUID, date time.Time) ([]*entity.ScheduleSlot, error) {
	key := newDayKey(resource, resourceID, date)

	c.mu.RLock()
	slots, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return slots, nil
	}

	slots, err := c.slots.FindActiveByResourceAndDate(ctx, resource, resourceID, date)
	if err != nil {
		return nil, fmt.Errorf("load calendar day %s/%s: %w", string(resource), key.day, err)
	}

	c.mu.Lock()
	c.cache[key] = slots
	c.mu.Unlock()

	return slots, nil
}

// FindOverlapping lists the resource's active slots intersecting the
// half-open interval [start, end) on the given date. excludeSlotID lets an
// update check conflicts against every slot except itself.
func (c *CalendarIndex) FindOverlapping(ctx context.Context, resource entity.ResourceType, resourceID uuid.UUID, date time.Time, start, end entity.ClockMinute, excludeSlotID uuid.UUID) ([]*entity.ScheduleSlot, error) {
	slots, err := c.DaySlots(ctx, resource, resourceID, date)
	if err != nil {
		return nil, err
	}

	var overlapping []*entity.ScheduleSlot
	for _, slot := range slots {
		if slot.ID == excludeSlotID {
			continue
		}
		if entity.Overlaps(slot.StartMin, slot.EndMin, start, end) {
			overlapping = append(overlapping, slot)
		}
	}

	return overlapping, nil
}

// Invalidate evicts the cached days a slot occupies. Called after every
// slot write so subsequent reads go back to the repository.
func (c *CalendarIndex) Invalidate(slot *entity.ScheduleSlot) {
	coachKey := newDayKey(entity.ResourceCoach, slot.CoachID, slot.Date)
	locationKey := newDayKey(entity.ResourceLocation, slot.LocationID, slot.Date)

	c.mu.Lock()
	delete(c.cache, coachKey)
	delete(c.cache, locationKey)
	c.mu.Unlock()

	c.log.Debug("Calendar days invalidated",
		zap.String("coach_id", slot.CoachID.String()),
		zap.String("location_id", slot.LocationID.String()),
		zap.String("day", slot.Date.Format("2006-01-02")),
	)
}
