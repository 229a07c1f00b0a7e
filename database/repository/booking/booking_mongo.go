package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/thetradeware/mekacash-backend/config"
	"github.com/thetradeware/mekacash-backend/database"
	"github.com/thetradeware/mekacash-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update writes the mutable lifecycle fields of the booking in one document
// write, guarded by the version the caller read. A version miss surfaces
// ErrConflict so the caller can re-read and retry. The notifications log is
// deliberately excluded here; it is only ever appended to.
func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expected := booking.Version
	filter := bson.M{"id": booking.ID, "version": expected}
	update := bson.M{
		"$set": bson.M{
			"runner_id":    booking.RunnerID,
			"actual_start": booking.ActualStart,
			"actual_end":   booking.ActualEnd,
			"status":       booking.Status,
			"history":      booking.History,
			"cancellation": booking.Cancellation,
			"dispute":      booking.Dispute,
			"review":       booking.Review,
			"messages":     booking.Messages,
			"tracking":     booking.Tracking,
			"updated_at":   booking.UpdatedAt,
		},
		"$inc": bson.M{"version": int64(1)},
	}

	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing booking from a lost race.
		count, countErr := repo.coll.CountDocuments(ctxWithTimeout, bson.M{"id": booking.ID})
		if countErr != nil {
			return fmt.Errorf("error verifying booking %s: %w", booking.ID, countErr)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	booking.Version = expected + 1
	return nil
}

// ListByRequester returns all bookings owned by the given requester.
func (repo *MongoBookingRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"requester_id": requesterID})
}

// ListByProvider returns all bookings assigned to the given provider.
func (repo *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"provider_id": providerID})
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	for cursor.Next(ctxWithTimeout) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// UpdatePayment overwrites the payment sub-record. Settlement callbacks own
// this field, so it bypasses the lifecycle version check.
func (repo *MongoBookingRepo) UpdatePayment(ctx context.Context, bookingID string, payment models.PaymentInfo) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"payment": payment}},
	)
	if err != nil {
		return fmt.Errorf("error updating payment for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendDeliveryRecord pushes one delivery outcome onto the booking's
// notifications log.
func (repo *MongoBookingRepo) AppendDeliveryRecord(ctx context.Context, bookingID string, record models.DeliveryRecord) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout,
		bson.M{"id": bookingID},
		bson.M{"$push": bson.M{"notifications": record}},
	)
	if err != nil {
		return fmt.Errorf("error appending delivery record for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
