package booking

import (
	"context"
	"time"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"
)

// BookingService owns the booking lifecycle: status transitions and their
// audit trail, cancellation, disputes, the message thread, the review and the
// tracking log. Mutating operations return the notification intents they
// produced; delivering them is the dispatch collaborator's job and never
// happens in here.
type BookingService interface {
	Create(ctx context.Context, requesterID string, in models.CreateBookingInput) (*models.Booking, []models.NotificationIntent, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)

	Transition(ctx context.Context, bookingID string, newStatus models.BookingStatus, actor, note string) (*models.Booking, []models.NotificationIntent, error)
	Cancel(ctx context.Context, bookingID, cancelledBy, reason string, refundAmount float64) (*models.Booking, []models.NotificationIntent, error)
	RaiseDispute(ctx context.Context, bookingID, raisedBy, reason string) (*models.Booking, []models.NotificationIntent, error)
	ResolveDispute(ctx context.Context, bookingID, resolvedBy, resolution string) (*models.Booking, error)

	AddMessage(ctx context.Context, bookingID, sender, text string) (*models.Booking, []models.NotificationIntent, error)
	AddReview(ctx context.Context, bookingID string, rating float64, comment string, isPublic bool) (*models.Booking, error)
	RecordLocation(ctx context.Context, bookingID string, update models.TrackingUpdate) (*models.Booking, error)
}

// DefaultBookingService implements BookingService over the booking repository.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository

	// NotifyOnMessage controls whether AddMessage also produces intents for
	// the participants other than the sender.
	NotifyOnMessage bool

	// now is overridable in tests; nil means time.Now.
	now func() time.Time
}

func (svc *DefaultBookingService) timeNow() time.Time {
	if svc.now != nil {
		return svc.now()
	}
	return time.Now()
}
