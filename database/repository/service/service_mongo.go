package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new instance of MongoServiceRepo.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoServiceRepo{coll: db.Collection("services")}
}

// GetByID retrieves a service listing by its ID.
func (repo *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &svc, nil
}

// UpdateRating writes the folded rating summary back onto the service.
func (repo *MongoServiceRepo) UpdateRating(ctx context.Context, serviceID string, rating models.RatingSummary) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout,
		bson.M{"id": serviceID},
		bson.M{"$set": bson.M{"rating": rating, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("error updating rating for service %s: %w", serviceID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
