package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/thetradeware/mekacash-backend/models"
)

func TestCancel(t *testing.T) {
	t.Parallel()

	t.Run("sets cancellation with pending refund", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		b, intents, err := svc.Cancel(context.Background(), "bk-1", "user-1", "changed plans", 50)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Cancellation == nil || !b.Cancellation.IsCancelled {
			t.Fatalf("expected cancellation record to be set")
		}
		if b.Cancellation.RefundAmount != 50 {
			t.Fatalf("expected refund amount 50, got %v", b.Cancellation.RefundAmount)
		}
		if b.Cancellation.RefundStatus != models.RefundStatusPending {
			t.Fatalf("expected pending refund, got %s", b.Cancellation.RefundStatus)
		}
		if b.Status != models.BookingStatusCancelled {
			t.Fatalf("expected cancelled status, got %s", b.Status)
		}
		last := b.History[len(b.History)-1]
		if last.Status != models.BookingStatusCancelled || last.Actor != "user-1" {
			t.Fatalf("unexpected final history entry: %+v", last)
		}
		if len(intents) != 2 {
			t.Fatalf("expected 2 cancellation intents, got %d", len(intents))
		}
		for _, intent := range intents {
			if intent.Title != "Booking cancelled" {
				t.Fatalf("expected cancellation subject, got %q", intent.Title)
			}
		}
	})

	t.Run("zero refund completes immediately", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		b, _, err := svc.Cancel(context.Background(), "bk-1", "user-1", "changed plans", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Cancellation.RefundStatus != models.RefundStatusCompleted {
			t.Fatalf("expected completed refund, got %s", b.Cancellation.RefundStatus)
		}
	})

	t.Run("defaults to full refund when paid", func(t *testing.T) {
		seed := seedBooking("bk-1")
		seed.Payment.Status = models.PaymentStatusPaid
		repo := newFakeBookingRepo(seed)
		svc := newTestService(repo)

		b, _, err := svc.Cancel(context.Background(), "bk-1", "user-1", "provider no-show", -1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Cancellation.RefundAmount != b.Pricing.Total {
			t.Fatalf("expected refund of total %v, got %v", b.Pricing.Total, b.Cancellation.RefundAmount)
		}
		if b.Cancellation.RefundStatus != models.RefundStatusPending {
			t.Fatalf("expected pending refund, got %s", b.Cancellation.RefundStatus)
		}
	})

	t.Run("defaults to no refund when unpaid", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		b, _, err := svc.Cancel(context.Background(), "bk-1", "user-1", "changed plans", -1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Cancellation.RefundAmount != 0 {
			t.Fatalf("expected no refund, got %v", b.Cancellation.RefundAmount)
		}
		if b.Cancellation.RefundStatus != models.RefundStatusCompleted {
			t.Fatalf("expected completed refund, got %s", b.Cancellation.RefundStatus)
		}
	})

	t.Run("second cancel is a no-op returning the first record", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		first, _, err := svc.Cancel(context.Background(), "bk-1", "user-1", "changed plans", 50)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		second, intents, err := svc.Cancel(context.Background(), "bk-1", "provider-1", "duplicate", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if intents != nil {
			t.Fatalf("expected no intents on repeat cancel, got %d", len(intents))
		}
		if second.Cancellation.CancelledBy != "user-1" || second.Cancellation.Reason != "changed plans" {
			t.Fatalf("first cancellation was overwritten: %+v", second.Cancellation)
		}
		if second.Cancellation.RefundAmount != first.Cancellation.RefundAmount {
			t.Fatalf("refund amount changed on repeat cancel")
		}
		if len(second.History) != len(first.History) {
			t.Fatalf("repeat cancel appended history: %d vs %d", len(second.History), len(first.History))
		}
	})

	t.Run("requires an actor", func(t *testing.T) {
		repo := newFakeBookingRepo(seedBooking("bk-1"))
		svc := newTestService(repo)

		if _, _, err := svc.Cancel(context.Background(), "bk-1", "", "reason", 0); !errors.Is(err, ErrMissingActor) {
			t.Fatalf("expected ErrMissingActor, got %v", err)
		}
	})
}
