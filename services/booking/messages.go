package booking

import (
	"context"
	"fmt"

	"github.com/thetradeware/mekacash-backend/models"
)

// AddMessage appends one entry to the booking's message thread, unread.
// The thread is append-only; there are no edits or deletes. Whether the
// append also produces notification intents for the other participants is
// controlled by the NotifyOnMessage flag.
func (svc *DefaultBookingService) AddMessage(ctx context.Context, bookingID, sender, text string) (*models.Booking, []models.NotificationIntent, error) {
	if sender == "" {
		return nil, nil, ErrMissingActor
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	now := svc.timeNow()
	b.Messages = append(b.Messages, models.Message{
		Sender: sender,
		Text:   text,
		SentAt: now,
		IsRead: false,
	})
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, nil, err
	}

	if !svc.NotifyOnMessage {
		return b, nil, nil
	}

	var intents []models.NotificationIntent
	msg := fmt.Sprintf("New message on booking %s", b.ID)
	for _, intent := range svc.intentsFor(b, "New message", msg) {
		if intent.RecipientID == sender {
			continue
		}
		intents = append(intents, intent)
	}
	return b, intents, nil
}
