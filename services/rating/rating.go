package rating

import (
	"context"
	"fmt"
	"math"

	serviceRepo "github.com/thetradeware/mekacash-backend/database/repository/service"
	"github.com/thetradeware/mekacash-backend/models"
)

// RatingService folds review outcomes into the service aggregate's running
// rating average and five-bucket histogram.
type RatingService interface {
	ApplyReview(ctx context.Context, serviceID string, rating float64) error
}

// DefaultRatingService implements RatingService.
type DefaultRatingService struct {
	Repo serviceRepo.ServiceRepository
}

// Fold applies one rating to the summary: weighted incremental mean plus a
// bump of the nearest whole-star bucket.
func Fold(sum models.RatingSummary, rating float64) models.RatingSummary {
	oldCount := float64(sum.Count)
	sum.Average = (sum.Average*oldCount + rating) / (oldCount + 1)
	sum.Count++

	bucket := int(math.Round(rating))
	if bucket < 1 {
		bucket = 1
	}
	if bucket > 5 {
		bucket = 5
	}
	sum.Buckets[bucket-1]++
	return sum
}

// ApplyReview reads the service, folds the rating in and writes the summary
// back.
func (svc *DefaultRatingService) ApplyReview(ctx context.Context, serviceID string, rating float64) error {
	s, err := svc.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("failed to load service for rating update: %w", err)
	}
	if err := svc.Repo.UpdateRating(ctx, serviceID, Fold(s.Rating, rating)); err != nil {
		return fmt.Errorf("failed to update service rating: %w", err)
	}
	return nil
}
