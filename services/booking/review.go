package booking

import (
	"context"
	"fmt"

	"github.com/thetradeware/mekacash-backend/models"
)

// AddReview sets the booking's single, overwritable review. A second call
// replaces the first; no history of prior reviews is kept. Folding the rating
// into the service aggregate's running average is the caller's job, via the
// service-rating collaborator.
func (svc *DefaultBookingService) AddReview(ctx context.Context, bookingID string, rating float64, comment string, isPublic bool) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRating, rating)
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := svc.timeNow()
	b.Review = &models.Review{
		Rating:      rating,
		Comment:     comment,
		IsPublic:    isPublic,
		SubmittedAt: now,
	}
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
