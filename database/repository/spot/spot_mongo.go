package spotRepo

import (
	"context"
	"fmt"
	"time"

	"bookmyspot/database"
	"bookmyspot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSpotRepo implements SpotRepository using MongoDB.
type MongoSpotRepo struct {
	coll *mongo.Collection
}

// NewMongoSpotRepo creates a new SpotRepository backed by the spots collection.
func NewMongoSpotRepo() SpotRepository {
	coll := database.Collection("spots")
	repo := &MongoSpotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create spot indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSpotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a spot by its unique ID.
func (r *MongoSpotRepo) GetByID(id string) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var spot models.ParkingSpot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch spot with id %s: %w", id, err)
	}
	return &spot, nil
}

// QueryByOwner retrieves all spots owned by the given account.
func (r *MongoSpotRepo) QueryByOwner(ownerID string) ([]models.ParkingSpot, error) {
	return r.query(bson.M{"owner_id": ownerID})
}

// QueryApproved retrieves live listings, optionally filtered by city.
func (r *MongoSpotRepo) QueryApproved(city string) ([]models.ParkingSpot, error) {
	filter := bson.M{"status": models.SpotApproved}
	if city != "" {
		filter["city"] = city
	}
	return r.query(filter)
}

func (r *MongoSpotRepo) query(filter bson.M) ([]models.ParkingSpot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve spots: %w", err)
	}
	defer cursor.Close(ctx)

	var spots []models.ParkingSpot
	for cursor.Next(ctx) {
		var s models.ParkingSpot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, nil
}

// Create inserts a new spot document.
func (r *MongoSpotRepo) Create(spot *models.ParkingSpot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	spot.CreatedAt = now
	spot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, spot); err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}
	return nil
}

// UpdateFields applies a partial overwrite to an existing spot document.
func (r *MongoSpotRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update spot with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability flips the owner-controlled bookable flag.
func (r *MongoSpotRepo) SetAvailability(id string, availability models.Availability) error {
	return r.UpdateFields(id, bson.M{"availability": availability})
}

// Delete removes a spot document by its ID. Bookings and requests that
// reference the spot are left in place.
func (r *MongoSpotRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete spot with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
