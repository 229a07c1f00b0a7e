package booking

import (
	"context"

	"github.com/thetradeware/mekacash-backend/models"
)

// Cancel sets the cancellation sub-record and forces the booking into the
// cancelled status through the usual history-append contract.
//
// Cancellation is idempotent: the first call wins and a repeat call returns
// the booking with its existing cancellation record, emits no intents and
// writes nothing.
//
// A negative refundAmount asks for the default: a full refund of the pricing
// total when the payment has settled as paid, nothing otherwise.
func (svc *DefaultBookingService) Cancel(ctx context.Context, bookingID, cancelledBy, reason string, refundAmount float64) (*models.Booking, []models.NotificationIntent, error) {
	if cancelledBy == "" {
		return nil, nil, ErrMissingActor
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if b.Cancellation != nil && b.Cancellation.IsCancelled {
		return b, nil, nil
	}

	if refundAmount < 0 {
		if b.Payment.Status == models.PaymentStatusPaid {
			refundAmount = b.Pricing.Total
		} else {
			refundAmount = 0
		}
	}

	refundStatus := models.RefundStatusCompleted
	if refundAmount > 0 {
		refundStatus = models.RefundStatusPending
	}

	now := svc.timeNow()
	b.Cancellation = &models.Cancellation{
		IsCancelled:  true,
		CancelledBy:  cancelledBy,
		CancelledAt:  now,
		Reason:       reason,
		RefundAmount: refundAmount,
		RefundStatus: refundStatus,
	}
	svc.applyStatus(b, models.BookingStatusCancelled, cancelledBy, reason, now)
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, nil, err
	}

	return b, svc.cancellationIntents(b), nil
}
