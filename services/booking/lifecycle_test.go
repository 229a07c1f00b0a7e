package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	in := models.CreateBookingInput{
		ServiceID:   "svc-1",
		ProviderID:  "provider-1",
		RunnerID:    "runner-1",
		ScheduledAt: baseTime.Add(24 * time.Hour),
		BasePrice:   100,
		Surcharges:  []models.PriceAdjustment{{Label: "urgency", Amount: 20}},
		Discounts:   []models.PriceAdjustment{{Label: "promo", Amount: 10}},
		Tax:         11,
		Currency:    "USD",
	}

	b, intents, err := svc.Create(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(b.ID, "MKC") || len(b.ID) != 14 {
		t.Fatalf("unexpected booking reference %q", b.ID)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("expected pending status, got %s", b.Status)
	}
	if len(b.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(b.History))
	}
	if b.History[0].Status != models.BookingStatusPending {
		t.Fatalf("expected pending history entry, got %s", b.History[0].Status)
	}
	if b.Pricing.Total != 121 {
		t.Fatalf("expected total 121, got %v", b.Pricing.Total)
	}
	if b.Payment.Status != models.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", b.Payment.Status)
	}
	if len(intents) != 3 {
		t.Fatalf("expected 3 intents (requester, provider, runner), got %d", len(intents))
	}

	if _, err := repo.GetByID(context.Background(), b.ID); err != nil {
		t.Fatalf("expected booking persisted, got %v", err)
	}

	t.Run("rejects missing requester", func(t *testing.T) {
		if _, _, err := svc.Create(context.Background(), "", in); !errors.Is(err, ErrMissingActor) {
			t.Fatalf("expected ErrMissingActor, got %v", err)
		}
	})
}

func TestTransition(t *testing.T) {
	t.Parallel()

	t.Run("appends history and updates current", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		b, intents, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusConfirmed, "provider-1", "see you then")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Status != models.BookingStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", b.Status)
		}
		if len(b.History) != 2 {
			t.Fatalf("expected 2 history entries, got %d", len(b.History))
		}
		last := b.History[len(b.History)-1]
		if last.Status != b.Status {
			t.Fatalf("last history entry %s does not match current %s", last.Status, b.Status)
		}
		if last.Actor != "provider-1" || last.Note != "see you then" {
			t.Fatalf("unexpected history entry: %+v", last)
		}
		if len(intents) != 2 {
			t.Fatalf("expected 2 intents without a runner, got %d", len(intents))
		}

		stored, err := repo.GetByID(context.Background(), "bk-1")
		if err != nil {
			t.Fatalf("expected booking persisted, got %v", err)
		}
		if stored.Status != models.BookingStatusConfirmed || len(stored.History) != 2 {
			t.Fatalf("persisted state out of sync: %s / %d entries", stored.Status, len(stored.History))
		}
	})

	t.Run("rejects unrecognized status and leaves state untouched", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		_, _, err := svc.Transition(context.Background(), "bk-1", "not-a-real-status", "provider-1", "")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}

		stored, _ := repo.GetByID(context.Background(), "bk-1")
		if stored.Status != models.BookingStatusPending || len(stored.History) != 1 {
			t.Fatalf("state mutated on failed transition: %s / %d entries", stored.Status, len(stored.History))
		}
	})

	t.Run("requires an actor", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		if _, _, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusConfirmed, "", ""); !errors.Is(err, ErrMissingActor) {
			t.Fatalf("expected ErrMissingActor, got %v", err)
		}
	})

	t.Run("permits any recognized status to follow any other", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		if _, _, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusCompleted, "admin-1", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, _, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusPending, "admin-1", "rolled back")
		if err != nil {
			t.Fatalf("expected completed -> pending to be allowed, got %v", err)
		}
		if b.Status != models.BookingStatusPending || len(b.History) != 3 {
			t.Fatalf("unexpected state after rollback: %s / %d entries", b.Status, len(b.History))
		}
	})

	t.Run("history timestamps are non-decreasing", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		for _, status := range []models.BookingStatus{
			models.BookingStatusConfirmed,
			models.BookingStatusAssigned,
			models.BookingStatusInProgress,
			models.BookingStatusCompleted,
		} {
			if _, _, err := svc.Transition(context.Background(), "bk-1", status, "provider-1", ""); err != nil {
				t.Fatalf("transition to %s failed: %v", status, err)
			}
		}

		b, _ := repo.GetByID(context.Background(), "bk-1")
		for i := 1; i < len(b.History); i++ {
			if b.History[i].Timestamp.Before(b.History[i-1].Timestamp) {
				t.Fatalf("history timestamps decreased at entry %d", i)
			}
		}
	})

	t.Run("sets actual start and end once", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		b, _, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusInProgress, "runner-1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.ActualStart == nil {
			t.Fatalf("expected actual start to be set")
		}
		started := *b.ActualStart

		b, _, err = svc.Transition(context.Background(), "bk-1", models.BookingStatusCompleted, "runner-1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.ActualEnd == nil {
			t.Fatalf("expected actual end to be set")
		}
		ended := *b.ActualEnd

		// A later detour through in-progress must not rewrite either stamp.
		b, _, err = svc.Transition(context.Background(), "bk-1", models.BookingStatusInProgress, "admin-1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, _, err = svc.Transition(context.Background(), "bk-1", models.BookingStatusCompleted, "admin-1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !b.ActualStart.Equal(started) || !b.ActualEnd.Equal(ended) {
			t.Fatalf("actual start/end were rewritten")
		}
	})

	t.Run("includes the runner in intents when assigned", func(t *testing.T) {
		seed := seedBooking("bk-1")
		seed.RunnerID = "runner-1"
		repo := newFakeBookingRepo(seed)
		svc := newTestService(repo)

		_, intents, err := svc.Transition(context.Background(), "bk-1", models.BookingStatusAssigned, "provider-1", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(intents) != 3 {
			t.Fatalf("expected 3 intents with a runner, got %d", len(intents))
		}
		recipients := map[string]bool{}
		for _, intent := range intents {
			recipients[intent.RecipientID] = true
			if intent.BookingID != "bk-1" {
				t.Fatalf("intent references wrong booking: %s", intent.BookingID)
			}
		}
		for _, want := range []string{"user-1", "provider-1", "runner-1"} {
			if !recipients[want] {
				t.Fatalf("missing intent for %s", want)
			}
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo)

		if _, _, err := svc.Transition(context.Background(), "nope", models.BookingStatusConfirmed, "provider-1", ""); !errors.Is(err, bookingRepo.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTransitionIsolation(t *testing.T) {
	t.Parallel()

	const perBooking = 5
	ids := []string{"bk-a", "bk-b", "bk-c"}

	seeds := make([]*models.Booking, 0, len(ids))
	for _, id := range ids {
		seeds = append(seeds, seedBooking(id))
	}
	repo := newFakeBookingRepo(seeds...)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(bookingID string) {
			defer wg.Done()
			svc := newTestService(repo)
			for i := 0; i < perBooking; i++ {
				if _, _, err := svc.Transition(context.Background(), bookingID, models.BookingStatusConfirmed, "provider-1", ""); err != nil {
					t.Errorf("transition on %s failed: %v", bookingID, err)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		b, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("booking %s missing: %v", id, err)
		}
		if len(b.History) != 1+perBooking {
			t.Fatalf("booking %s has %d history entries, want %d", id, len(b.History), 1+perBooking)
		}
	}
}
