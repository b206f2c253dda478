package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-scheduling/internal/data/entity"
	"gym-scheduling/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type scheduleFixture struct {
	svc      *scheduleService
	bookings *fakeBookingRepo
	slots    *fakeSlotRepo
	ledger   *CapacityLedger

	coachID    uuid.UUID
	locationID uuid.UUID
}

func newScheduleFixture(dailyLimit int) *scheduleFixture {
	slots := newFakeSlotRepo()
	leaves := newFakeLeaveRepo()
	bookings := newFakeBookingRepo()

	coachID := uuid.New()
	locationID := uuid.New()

	repo := testRepo(slots, leaves, bookings, []uuid.UUID{coachID}, []uuid.UUID{locationID}, nil)
	calendar := NewCalendarIndex(slots, zap.NewNop())
	detector := NewConflictDetector(calendar, repo, dailyLimit, zap.NewNop())
	ledger := NewCapacityLedger(slots, bookings, zap.NewNop())

	svc := &scheduleService{
		repo:     repo,
		calendar: calendar,
		detector: detector,
		ledger:   ledger,
		log:      zap.NewNop(),
		now:      func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) },
	}

	return &scheduleFixture{
		svc:        svc,
		bookings:   bookings,
		slots:      slots,
		ledger:     ledger,
		coachID:    coachID,
		locationID: locationID,
	}
}

func (f *scheduleFixture) proposal(start, end string) *request.ProposeScheduleRequest {
	return &request.ProposeScheduleRequest{
		CoachID:         f.coachID.String(),
		LocationID:      f.locationID.String(),
		Date:            "2024-06-01",
		StartTime:       start,
		EndTime:         end,
		MaxParticipants: 10,
	}
}

func TestScheduleService_ProposeSchedule(t *testing.T) {
	t.Parallel()

	t.Run("creates a conflict-free slot", func(t *testing.T) {
		f := newScheduleFixture(0)

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		if !decision.Created {
			t.Fatalf("expected slot created, conflicts: %v", decision.Conflicts)
		}
		if decision.Slot == nil {
			t.Fatal("expected slot in decision")
		}
		if decision.Slot.StartTime != "09:00" || decision.Slot.EndTime != "10:00" {
			t.Fatalf("unexpected slot window %s-%s", decision.Slot.StartTime, decision.Slot.EndTime)
		}

		stored, err := f.slots.FindByID(context.Background(), uuid.MustParse(decision.Slot.ID))
		if err != nil || stored == nil {
			t.Fatalf("expected slot persisted, got %v, %v", stored, err)
		}
	})

	t.Run("blocking conflict without force writes nothing", func(t *testing.T) {
		f := newScheduleFixture(0)

		if _, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00")); err != nil {
			t.Fatalf("seed slot: %v", err)
		}

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:30", "10:30"))
		if err != nil {
			t.Fatalf("a blocked proposal is not an error: %v", err)
		}
		if decision.Created {
			t.Fatal("expected proposal blocked")
		}
		if decision.Slot != nil {
			t.Fatal("blocked decision must not carry a slot")
		}
		if len(decision.Conflicts) != 2 {
			t.Fatalf("expected coach and location conflicts, got %v", decision.Conflicts)
		}

		listed, err := f.svc.ListSchedules(context.Background(), &request.ListSchedulesRequest{
			CoachID: f.coachID.String(),
			Date:    "2024-06-01",
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("blocked proposal must leave storage untouched, got %d slots", len(listed))
		}
	})

	t.Run("force overrides blocking conflicts", func(t *testing.T) {
		f := newScheduleFixture(0)

		if _, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00")); err != nil {
			t.Fatalf("seed slot: %v", err)
		}

		forced := f.proposal("09:30", "10:30")
		forced.Force = true
		decision, err := f.svc.ProposeSchedule(context.Background(), forced)
		if err != nil {
			t.Fatalf("forced propose: %v", err)
		}
		if !decision.Created {
			t.Fatal("expected forced proposal created")
		}
		if len(decision.Conflicts) == 0 {
			t.Fatal("forced creation must still report its conflicts")
		}
	})

	t.Run("advisory conflict never blocks", func(t *testing.T) {
		f := newScheduleFixture(90)

		if _, err := f.svc.ProposeSchedule(context.Background(), f.proposal("08:00", "09:00")); err != nil {
			t.Fatalf("seed slot: %v", err)
		}

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("10:00", "11:00"))
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		if !decision.Created {
			t.Fatalf("advisory conflicts must not block, conflicts: %v", decision.Conflicts)
		}
		if len(decision.Conflicts) != 1 || decision.Conflicts[0].Severity != string(entity.SeverityAdvisory) {
			t.Fatalf("expected a single advisory conflict, got %v", decision.Conflicts)
		}
	})

	t.Run("second proposal sees the first immediately", func(t *testing.T) {
		f := newScheduleFixture(0)

		// Warm the calendar cache for the day before the first write.
		if _, err := f.svc.ListSchedules(context.Background(), &request.ListSchedulesRequest{
			CoachID: f.coachID.String(),
			Date:    "2024-06-01",
		}); err != nil {
			t.Fatalf("warm cache: %v", err)
		}

		if _, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00")); err != nil {
			t.Fatalf("first propose: %v", err)
		}

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil {
			t.Fatalf("second propose: %v", err)
		}
		if decision.Created {
			t.Fatal("second identical proposal must conflict with the first")
		}
	})

	t.Run("start not before end", func(t *testing.T) {
		f := newScheduleFixture(0)

		_, err := f.svc.ProposeSchedule(context.Background(), f.proposal("10:00", "10:00"))
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("leave then propose reports coach on leave", func(t *testing.T) {
		f := newScheduleFixture(0)

		if err := f.svc.RegisterLeave(context.Background(), &request.CreateLeaveRequest{
			CoachID:  f.coachID.String(),
			Date:     "2024-06-01",
			WholeDay: true,
		}); err != nil {
			t.Fatalf("register leave: %v", err)
		}

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		if decision.Created {
			t.Fatal("expected proposal blocked by leave")
		}
		if len(decision.Conflicts) != 1 || decision.Conflicts[0].Type != string(entity.ConflictCoachOnLeave) {
			t.Fatalf("expected coach on leave conflict, got %v", decision.Conflicts)
		}
	})
}

func TestScheduleService_UpdateSchedule(t *testing.T) {
	t.Parallel()

	update := func(f *scheduleFixture, start, end string, max int) *request.UpdateScheduleRequest {
		return &request.UpdateScheduleRequest{
			CoachID:         f.coachID.String(),
			LocationID:      f.locationID.String(),
			Date:            "2024-06-01",
			StartTime:       start,
			EndTime:         end,
			MaxParticipants: max,
		}
	}

	t.Run("moving a slot does not conflict with itself", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}

		decision, err := f.svc.UpdateSchedule(context.Background(), created.Slot.ID, update(f, "09:30", "10:30", 10))
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !decision.Created {
			t.Fatalf("overlapping its own old window must not conflict, got %v", decision.Conflicts)
		}
		if decision.Slot.StartTime != "09:30" {
			t.Fatalf("expected moved start 09:30, got %s", decision.Slot.StartTime)
		}
	})

	t.Run("update conflicts with other slots", func(t *testing.T) {
		f := newScheduleFixture(0)

		first, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !first.Created {
			t.Fatalf("seed first: %+v, %v", first, err)
		}
		second, err := f.svc.ProposeSchedule(context.Background(), f.proposal("11:00", "12:00"))
		if err != nil || !second.Created {
			t.Fatalf("seed second: %+v, %v", second, err)
		}

		decision, err := f.svc.UpdateSchedule(context.Background(), second.Slot.ID, update(f, "09:30", "10:30", 10))
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if decision.Created {
			t.Fatal("expected update blocked by the first slot")
		}

		// The blocked update left the slot where it was.
		got, err := f.svc.GetScheduleByID(context.Background(), second.Slot.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.StartTime != "11:00" {
			t.Fatalf("blocked update must not move the slot, got start %s", got.StartTime)
		}
	})

	t.Run("capacity cannot drop below confirmed bookings", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		slotID := uuid.MustParse(created.Slot.ID)

		booking := &bookingService{repo: f.svc.repo, ledger: f.ledger, log: zap.NewNop(), now: f.svc.now}
		for i := 0; i < 3; i++ {
			resp, err := booking.RequestBooking(context.Background(), &request.CreateBookingRequest{
				MemberID:       uuid.New().String(),
				ScheduleSlotID: slotID.String(),
			})
			if err != nil || resp.Status != string(entity.BookingStatusConfirmed) {
				t.Fatalf("booking %d: %+v, %v", i, resp, err)
			}
		}

		_, err = f.svc.UpdateSchedule(context.Background(), created.Slot.ID, update(f, "09:00", "10:00", 2))
		if !errors.Is(err, entity.ErrCapacityBelowConfirmed) {
			t.Fatalf("expected ErrCapacityBelowConfirmed, got %v", err)
		}

		// Shrinking to exactly the confirmed count is allowed.
		decision, err := f.svc.UpdateSchedule(context.Background(), created.Slot.ID, update(f, "09:00", "10:00", 3))
		if err != nil || !decision.Created {
			t.Fatalf("expected shrink to confirmed count to succeed, got %+v, %v", decision, err)
		}

		// The rewritten counter reflects the new capacity: slot is now full.
		remaining, err := f.ledger.Remaining(context.Background(), slotID)
		if err != nil {
			t.Fatalf("remaining: %v", err)
		}
		if remaining != 0 {
			t.Fatalf("expected 0 remaining after shrink, got %d", remaining)
		}
	})

	t.Run("update racing a booking never over-admits", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		slotID := uuid.MustParse(created.Slot.ID)

		// A booking request has reserved the only seat but not yet written
		// its row; the update lands inside that window.
		if res, err := f.ledger.Reserve(context.Background(), slotID); err != nil || res != ReservationGranted {
			t.Fatalf("expected granted, got %s, %v", res, err)
		}

		decision, err := f.svc.UpdateSchedule(context.Background(), created.Slot.ID, update(f, "09:00", "10:00", 1))
		if err != nil || !decision.Created {
			t.Fatalf("update: %+v, %v", decision, err)
		}

		booking := &bookingService{repo: f.svc.repo, ledger: f.ledger, log: zap.NewNop(), now: f.svc.now}
		resp, err := booking.RequestBooking(context.Background(), &request.CreateBookingRequest{
			MemberID:       uuid.New().String(),
			ScheduleSlotID: slotID.String(),
		})
		if err != nil {
			t.Fatalf("booking after update: %v", err)
		}
		if resp.Status != string(entity.BookingStatusRejected) {
			t.Fatalf("seat reserved before the update was double-granted: got %s", resp.Status)
		}
	})

	t.Run("shrink floor counts unpersisted reservations", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		slotID := uuid.MustParse(created.Slot.ID)

		// Two seats granted, neither persisted yet. A repository count sees
		// zero; the floor must still hold at two.
		for i := 0; i < 2; i++ {
			if res, err := f.ledger.Reserve(context.Background(), slotID); err != nil || res != ReservationGranted {
				t.Fatalf("reserve %d: expected granted, got %s, %v", i, res, err)
			}
		}

		_, err = f.svc.UpdateSchedule(context.Background(), created.Slot.ID, update(f, "09:00", "10:00", 1))
		if !errors.Is(err, entity.ErrCapacityBelowConfirmed) {
			t.Fatalf("expected ErrCapacityBelowConfirmed, got %v", err)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newScheduleFixture(0)

		_, err := f.svc.UpdateSchedule(context.Background(), uuid.New().String(), update(f, "09:00", "10:00", 5))
		if !errors.Is(err, entity.ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})
}

func TestScheduleService_CancelSchedule(t *testing.T) {
	t.Parallel()

	t.Run("cancel cascades to confirmed bookings", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		slotID := uuid.MustParse(created.Slot.ID)

		booking := &bookingService{repo: f.svc.repo, ledger: f.ledger, log: zap.NewNop(), now: f.svc.now}
		booked, err := booking.RequestBooking(context.Background(), &request.CreateBookingRequest{
			MemberID:       uuid.New().String(),
			ScheduleSlotID: slotID.String(),
		})
		if err != nil {
			t.Fatalf("book: %v", err)
		}

		if err := f.svc.CancelSchedule(context.Background(), created.Slot.ID); err != nil {
			t.Fatalf("cancel schedule: %v", err)
		}

		got, err := booking.GetBookingByID(context.Background(), booked.ID)
		if err != nil {
			t.Fatalf("get booking: %v", err)
		}
		if got.Status != string(entity.BookingStatusCancelled) {
			t.Fatalf("expected cascaded cancellation, got %s", got.Status)
		}

		slot, err := f.svc.GetScheduleByID(context.Background(), created.Slot.ID)
		if err != nil {
			t.Fatalf("get slot: %v", err)
		}
		if slot.Status != string(entity.SlotStatusCancelled) {
			t.Fatalf("expected cancelled slot, got %s", slot.Status)
		}

		// Cancelled slots take no further bookings.
		if _, err := booking.RequestBooking(context.Background(), &request.CreateBookingRequest{
			MemberID:       uuid.New().String(),
			ScheduleSlotID: slotID.String(),
		}); !errors.Is(err, entity.ErrSlotCancelled) {
			t.Fatalf("expected ErrSlotCancelled, got %v", err)
		}
	})

	t.Run("cancelled slot no longer causes conflicts", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		if err := f.svc.CancelSchedule(context.Background(), created.Slot.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		decision, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil {
			t.Fatalf("re-propose: %v", err)
		}
		if !decision.Created {
			t.Fatalf("cancelled slot must not block its window, conflicts: %v", decision.Conflicts)
		}
	})

	t.Run("cancel twice", func(t *testing.T) {
		f := newScheduleFixture(0)

		created, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00"))
		if err != nil || !created.Created {
			t.Fatalf("seed slot: %+v, %v", created, err)
		}
		if err := f.svc.CancelSchedule(context.Background(), created.Slot.ID); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		if err := f.svc.CancelSchedule(context.Background(), created.Slot.ID); !errors.Is(err, entity.ErrSlotCancelled) {
			t.Fatalf("expected ErrSlotCancelled, got %v", err)
		}
	})
}

func TestScheduleService_ListSchedules(t *testing.T) {
	t.Parallel()

	f := newScheduleFixture(0)

	t.Run("requires exactly one resource filter", func(t *testing.T) {
		_, err := f.svc.ListSchedules(context.Background(), &request.ListSchedulesRequest{Date: "2024-06-01"})
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed with no filter, got %v", err)
		}

		_, err = f.svc.ListSchedules(context.Background(), &request.ListSchedulesRequest{
			CoachID:    f.coachID.String(),
			LocationID: f.locationID.String(),
			Date:       "2024-06-01",
		})
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed with both filters, got %v", err)
		}
	})

	t.Run("lists by location", func(t *testing.T) {
		if _, err := f.svc.ProposeSchedule(context.Background(), f.proposal("09:00", "10:00")); err != nil {
			t.Fatalf("seed: %v", err)
		}

		listed, err := f.svc.ListSchedules(context.Background(), &request.ListSchedulesRequest{
			LocationID: f.locationID.String(),
			Date:       "2024-06-01",
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 slot at location, got %d", len(listed))
		}
	})
}

func TestScheduleService_RegisterLeave(t *testing.T) {
	t.Parallel()

	t.Run("unknown coach", func(t *testing.T) {
		f := newScheduleFixture(0)

		err := f.svc.RegisterLeave(context.Background(), &request.CreateLeaveRequest{
			CoachID:  uuid.New().String(),
			Date:     "2024-06-01",
			WholeDay: true,
		})
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("window requires start before end", func(t *testing.T) {
		f := newScheduleFixture(0)

		err := f.svc.RegisterLeave(context.Background(), &request.CreateLeaveRequest{
			CoachID:   f.coachID.String(),
			Date:      "2024-06-01",
			StartTime: "10:00",
			EndTime:   "09:00",
		})
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("partial window without times", func(t *testing.T) {
		f := newScheduleFixture(0)

		err := f.svc.RegisterLeave(context.Background(), &request.CreateLeaveRequest{
			CoachID: f.coachID.String(),
			Date:    "2024-06-01",
		})
		if !errors.Is(err, entity.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})
}
