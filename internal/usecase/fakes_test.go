package usecase

import (
	"context"
	"sync"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/data/repository"

	"github.com/google/uuid"
)

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*entity.ScheduleSlot
}

func newFakeSlotRepo(slots ...*entity.ScheduleSlot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[uuid.UUID]*entity.ScheduleSlot)}
	for _, s := range slots {
		copied := *s
		r.slots[s.ID] = &copied
	}
	return r
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *entity.ScheduleSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *slot
	r.slots[slot.ID] = &copied
	return nil
}

func (r *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) Update(ctx context.Context, slot *entity.ScheduleSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[slot.ID]; !ok {
		return entity.ErrSlotNotFound
	}
	copied := *slot
	r.slots[slot.ID] = &copied
	return nil
}

func (r *fakeSlotRepo) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return entity.ErrSlotNotFound
	}
	slot.Status = entity.SlotStatusCancelled
	return nil
}

func (r *fakeSlotRepo) FindActiveByResourceAndDate(ctx context.Context, resource entity.ResourceType, resourceID uuid.UUID, date time.Time) ([]*entity.ScheduleSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := date.Format("2006-01-02")

	var out []*entity.ScheduleSlot
	for _, slot := range r.slots {
		if slot.Status != entity.SlotStatusActive || slot.Date.Format("2006-01-02") != day {
			continue
		}
		owner := slot.CoachID
		if resource == entity.ResourceLocation {
			owner = slot.LocationID
		}
		if owner != resourceID {
			continue
		}
		copied := *slot
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSlotRepo) FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ScheduleSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ScheduleSlot
	for _, slot := range r.slots {
		if slot.Status != entity.SlotStatusActive {
			continue
		}
		if !slot.EndAt().After(cutoff) {
			copied := *slot
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	mu     sync.Mutex
	leaves []*entity.CoachLeave
}

func newFakeLeaveRepo(leaves ...*entity.CoachLeave) *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: leaves}
}

func (r *fakeLeaveRepo) Create(ctx context.Context, leave *entity.CoachLeave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *leave
	r.leaves = append(r.leaves, &copied)
	return nil
}

func (r *fakeLeaveRepo) FindByCoachAndDate(ctx context.Context, coachID uuid.UUID, date time.Time) ([]*entity.CoachLeave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := date.Format("2006-01-02")

	var out []*entity.CoachLeave
	for _, leave := range r.leaves {
		if leave.CoachID == coachID && leave.Date.Format("2006-01-02") == day {
			copied := *leave
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
	for _, b := range bookings {
		copied := *b
		r.bookings[b.ID] = &copied
	}
	return r
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindBySlot(ctx context.Context, slotID uuid.UUID, status *entity.BookingStatus) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.ScheduleSlotID != slotID {
			continue
		}
		if status != nil && booking.Status != *status {
			continue
		}
		copied := *booking
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountBySlotAndStatus(ctx context.Context, slotID uuid.UUID, status entity.BookingStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, booking := range r.bookings {
		if booking.ScheduleSlotID == slotID && booking.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	booking.DecidedAt = &decidedAt
	booking.UpdatedAt = decidedAt
	return true, nil
}

func (r *fakeBookingRepo) UpdateStatusBySlot(ctx context.Context, slotID uuid.UUID, from, to entity.BookingStatus, decidedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for _, booking := range r.bookings {
		if booking.ScheduleSlotID == slotID && booking.Status == from {
			booking.Status = to
			booking.DecidedAt = &decidedAt
			booking.UpdatedAt = decidedAt
			changed++
		}
	}
	return changed, nil
}

type fakeCoachRepo struct {
	coaches map[uuid.UUID]*entity.Coach
}

func (r *fakeCoachRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error) {
	coach, ok := r.coaches[id]
	if !ok {
		return nil, nil
	}
	return coach, nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*entity.Location
}

func (r *fakeLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	location, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	return location, nil
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*entity.Course
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	return course, nil
}

// testRepo assembles a Repository over fakes. Every coach, location, and
// course ID passed in resolves; everything else is unknown.
func testRepo(slots *fakeSlotRepo, leaves *fakeLeaveRepo, bookings *fakeBookingRepo, coachIDs, locationIDs, courseIDs []uuid.UUID) *repository.Repository {
	coaches := make(map[uuid.UUID]*entity.Coach)
	for _, id := range coachIDs {
		coaches[id] = &entity.Coach{Base: entity.Base{ID: id}, Name: "coach", IsActive: true}
	}
	locations := make(map[uuid.UUID]*entity.Location)
	for _, id := range locationIDs {
		locations[id] = &entity.Location{Base: entity.Base{ID: id}, Name: "location", IsActive: true}
	}
	courses := make(map[uuid.UUID]*entity.Course)
	for _, id := range courseIDs {
		courses[id] = &entity.Course{Base: entity.Base{ID: id}, Name: "course", IsActive: true}
	}

	return &repository.Repository{
		Slot:     slots,
		Leave:    leaves,
		Booking:  bookings,
		Coach:    &fakeCoachRepo{coaches: coaches},
		Location: &fakeLocationRepo{locations: locations},
		Course:   &fakeCourseRepo{courses: courses},
	}
}
