package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/thetradeware/mekacash-backend/models"
)

// Transition moves the booking to newStatus and appends the matching history
// entry. Any recognized status may follow any other; the permissive contract
// is intentional and only unrecognized values are rejected. The status flip
// and the history append are persisted together in one document write.
func (svc *DefaultBookingService) Transition(ctx context.Context, bookingID string, newStatus models.BookingStatus, actor, note string) (*models.Booking, []models.NotificationIntent, error) {
	if !newStatus.IsValid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if actor == "" {
		return nil, nil, ErrMissingActor
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	now := svc.timeNow()
	svc.applyStatus(b, newStatus, actor, note, now)
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, nil, err
	}

	return b, svc.statusIntents(b, newStatus), nil
}

// applyStatus sets the canonical status and appends the history entry.
// Actual start/end timestamps are set once, on entry to and exit from
// in-progress.
func (svc *DefaultBookingService) applyStatus(b *models.Booking, status models.BookingStatus, actor, note string, now time.Time) {
	if b.Status == models.BookingStatusInProgress && status != models.BookingStatusInProgress &&
		b.ActualStart != nil && b.ActualEnd == nil {
		end := now
		b.ActualEnd = &end
	}
	if status == models.BookingStatusInProgress && b.ActualStart == nil {
		start := now
		b.ActualStart = &start
	}

	b.Status = status
	b.History = append(b.History, models.StatusChange{
		Status:    status,
		Timestamp: now,
		Actor:     actor,
		Note:      note,
	})
}
