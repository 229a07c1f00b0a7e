package booking

import (
	"context"
	"fmt"

	"github.com/thetradeware/mekacash-backend/models"
	"github.com/thetradeware/mekacash-backend/utils"
)

// Create builds a new booking aggregate in pending status with its pricing
// snapshot and the first history entry, persists it and returns the creation
// intents for the participants.
func (svc *DefaultBookingService) Create(ctx context.Context, requesterID string, in models.CreateBookingInput) (*models.Booking, []models.NotificationIntent, error) {
	if requesterID == "" {
		return nil, nil, ErrMissingActor
	}

	now := svc.timeNow()
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	b := &models.Booking{
		ID:              utils.NewBookingRef(),
		ServiceID:       in.ServiceID,
		RequesterID:     requesterID,
		ProviderID:      in.ProviderID,
		RunnerID:        in.RunnerID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Pricing:         in.Snapshot(),
		Payment: models.PaymentInfo{
			Method: paymentMethod,
			Status: models.PaymentStatusPending,
		},
		Status: models.BookingStatusPending,
		History: []models.StatusChange{{
			Status:    models.BookingStatusPending,
			Timestamp: now,
			Actor:     requesterID,
			Note:      "booking created",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.Repo.Create(ctx, b); err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return b, svc.statusIntents(b, models.BookingStatusPending), nil
}

// GetByID returns the booking aggregate.
func (svc *DefaultBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return svc.Repo.GetByID(ctx, bookingID)
}

// ListByRequester returns all bookings owned by the requester.
func (svc *DefaultBookingService) ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error) {
	return svc.Repo.ListByRequester(ctx, requesterID)
}

// ListByProvider returns all bookings assigned to the provider.
func (svc *DefaultBookingService) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return svc.Repo.ListByProvider(ctx, providerID)
}
