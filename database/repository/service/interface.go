package serviceRepo

import (
	"context"
	"errors"

	"github.com/thetradeware/mekacash-backend/models"
)

// ErrNotFound is returned when no service matches the given id.
var ErrNotFound = errors.New("service not found")

// ServiceRepository is the slice of the service catalog the rating
// collaborator needs: read a listing, write back its rating summary.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	UpdateRating(ctx context.Context, serviceID string, rating models.RatingSummary) error
}
