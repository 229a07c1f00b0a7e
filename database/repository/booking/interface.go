package bookingRepo

import (
	"context"
	"errors"

	"github.com/thetradeware/mekacash-backend/models"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned when a version-checked write loses a race
	// against a concurrent writer on the same booking.
	ErrConflict = errors.New("booking version conflict")
)

// BookingRepository is the persistence collaborator for the Booking aggregate.
// Update is a version-checked write: the status flip and the history append
// land atomically in one document write, or not at all.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	UpdatePayment(ctx context.Context, bookingID string, payment models.PaymentInfo) error
	AppendDeliveryRecord(ctx context.Context, bookingID string, record models.DeliveryRecord) error
}
