package booking

import (
	"fmt"
	"strconv"

	"github.com/thetradeware/mekacash-backend/models"

	"github.com/google/uuid"
)

var statusTitles = map[models.BookingStatus]string{
	models.BookingStatusPending:    "Booking received",
	models.BookingStatusConfirmed:  "Booking confirmed",
	models.BookingStatusAssigned:   "A runner has been assigned",
	models.BookingStatusInProgress: "Your booking is underway",
	models.BookingStatusCompleted:  "Booking completed",
	models.BookingStatusCancelled:  "Booking cancelled",
	models.BookingStatusFailed:     "Booking failed",
	models.BookingStatusDisputed:   "Booking disputed",
}

// statusIntents builds one intent per distinct interested participant for a
// status change, with the subject keyed by the new status.
func (svc *DefaultBookingService) statusIntents(b *models.Booking, status models.BookingStatus) []models.NotificationIntent {
	msg := fmt.Sprintf("Booking %s is now %s.", b.ID, status)
	return svc.intentsFor(b, statusTitles[status], msg)
}

// cancellationIntents uses the fixed cancellation subject.
func (svc *DefaultBookingService) cancellationIntents(b *models.Booking) []models.NotificationIntent {
	msg := fmt.Sprintf("Booking %s has been cancelled: %s", b.ID, b.Cancellation.Reason)
	if b.Cancellation.RefundAmount > 0 {
		msg = fmt.Sprintf("%s A refund of %.2f %s is pending.", msg, b.Cancellation.RefundAmount, b.Pricing.Currency)
	}
	return svc.intentsFor(b, statusTitles[models.BookingStatusCancelled], msg)
}

// intentsFor builds intents for every distinct participant with a snapshot of
// the booking's public fields. The caller hands the list to the dispatcher;
// nothing here performs I/O.
func (svc *DefaultBookingService) intentsFor(b *models.Booking, title, message string) []models.NotificationIntent {
	now := svc.timeNow()
	data := map[string]string{
		"booking_id":   b.ID,
		"service_id":   b.ServiceID,
		"status":       string(b.Status),
		"scheduled_at": b.ScheduledAt.Format("2006-01-02T15:04:05Z07:00"),
		"total":        strconv.FormatFloat(b.Pricing.Total, 'f', 2, 64),
		"currency":     b.Pricing.Currency,
	}

	participants := b.Participants()
	intents := make([]models.NotificationIntent, 0, len(participants))
	for _, recipientID := range participants {
		intents = append(intents, models.NotificationIntent{
			ID:          uuid.New().String(),
			RecipientID: recipientID,
			Channel:     models.ChannelPush,
			Title:       title,
			Message:     message,
			BookingID:   b.ID,
			Data:        data,
			CreatedAt:   now,
		})
	}
	return intents
}
