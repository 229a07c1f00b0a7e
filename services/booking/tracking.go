package booking

import (
	"context"

	"github.com/thetradeware/mekacash-backend/models"
)

// RecordLocation overwrites the booking's current-location snapshot and
// appends one entry to the append-only route log. Route entries are never
// removed. No ETA is derived here; arrival prediction is not this core's job.
func (svc *DefaultBookingService) RecordLocation(ctx context.Context, bookingID string, update models.TrackingUpdate) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := svc.timeNow()
	coords := models.Coordinates{
		Latitude:  update.Latitude,
		Longitude: update.Longitude,
	}

	b.Tracking.CurrentLocation = &models.LocationSnapshot{
		Coordinates: coords,
		Address:     update.Address,
		UpdatedAt:   now,
	}
	b.Tracking.Route = append(b.Tracking.Route, models.RoutePoint{
		Coordinates: coords,
		Timestamp:   now,
		Speed:       update.Speed,
		Heading:     update.Heading,
	})
	b.UpdatedAt = now

	if err := svc.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
