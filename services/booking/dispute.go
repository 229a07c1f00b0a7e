package booking

import (
	"context"
	"fmt"

	"github.com/thetradeware/mekacash-backend/models"
)

// RaiseDispute attaches a dispute sub-record to the booking. The dispute is
// orthogonal to the main status: a completed or cancelled booking can still
// be disputed, and raising one does not move the canonical status. While a
// dispute is open a repeat raise is a no-op returning the existing record; a
// resolved dispute may be superseded by a fresh one.
func (svc *DefaultBookingService) RaiseDispute(ctx context.Context, bookingID, raisedBy, reason string) (*models.Booking, []models.NotificationIntent, error) {
	if raisedBy == "" {
		return nil, nil, ErrMissingActor
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if b.Dispute != nil && !b.Dispute.Resolved {
		return b, nil, nil
	}

	now := svc.timeNow()
	b.Dispute = &models.Dispute{
		RaisedBy: raisedBy,
		Reason:   reason,
		RaisedAt: now,
	}
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("A dispute was raised on booking %s: %s", b.ID, reason)
	return b, svc.intentsFor(b, "Booking disputed", msg), nil
}

// ResolveDispute records the resolution on the open dispute without changing
// the booking's canonical status.
func (svc *DefaultBookingService) ResolveDispute(ctx context.Context, bookingID, resolvedBy, resolution string) (*models.Booking, error) {
	if resolvedBy == "" {
		return nil, ErrMissingActor
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Dispute == nil {
		return nil, ErrNoDispute
	}

	now := svc.timeNow()
	b.Dispute.Resolved = true
	b.Dispute.Resolution = resolution
	b.Dispute.ResolvedAt = &now
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
