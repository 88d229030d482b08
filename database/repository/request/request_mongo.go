package requestRepo

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

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new RequestRepository backed by the
// spot_requests collection.
func NewMongoRequestRepo() RequestRepository {
	coll := database.Collection("spot_requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create request indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new request document.
func (r *MongoRequestRepo) Create(req *models.ParkingSpotRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create spot request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoRequestRepo) GetByID(id string) (*models.ParkingSpotRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ParkingSpotRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

// QueryPending retrieves the admin review queue, oldest first.
func (r *MongoRequestRepo) QueryPending() ([]models.ParkingSpotRequest, error) {
	return r.query(bson.M{"status": models.RequestPending},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// QueryByOwner retrieves all requests submitted by an owner, newest first.
func (r *MongoRequestRepo) QueryByOwner(ownerID string) ([]models.ParkingSpotRequest, error) {
	return r.query(bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MongoRequestRepo) query(filter bson.M, opts *options.FindOptions) ([]models.ParkingSpotRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ParkingSpotRequest
	for cursor.Next(ctx) {
		var req models.ParkingSpotRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// MarkReviewed conditionally flips a pending request to approved/rejected.
// The pending filter is the terminal-state guard: once reviewed, a request
// never matches again.
func (r *MongoRequestRepo) MarkReviewed(id string, status models.RequestStatus, reviewerID, reason string, reviewedAt time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.RequestPending}
	update := bson.M{"$set": bson.M{
		"status":           status,
		"reviewed_by":      reviewerID,
		"reviewed_at":      reviewedAt,
		"rejection_reason": reason,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to review request with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing request from one already reviewed.
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to check request with id %s: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrNotPending
	}
	return nil
}
