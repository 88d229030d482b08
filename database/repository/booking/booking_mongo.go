package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by the
// bookings collection.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for the overlap query and user listings.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "spot_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// QueryBySpot retrieves a spot's bookings filtered by persisted status and,
// optionally, by start time (startAfter keeps only forward-looking ones).
func (r *MongoBookingRepo) QueryBySpot(spotID string, statusIn []models.BookingStatus, startAfter *time.Time) ([]models.Booking, error) {
	filter := bson.M{"spot_id": spotID}
	if len(statusIn) > 0 {
		filter["status"] = bson.M{"$in": statusIn}
	}
	if startAfter != nil {
		filter["start"] = bson.M{"$gte": *startAfter}
	}
	return r.query(filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
}

// QueryByUser retrieves all bookings made by a renter, newest first.
func (r *MongoBookingRepo) QueryByUser(userID string) ([]models.Booking, error) {
	return r.query(bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "start", Value: -1}}))
}

func (r *MongoBookingRepo) query(filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ReserveIfFree re-checks the no-overlap invariant and inserts the booking
// inside one transaction, so two concurrent bookers cannot both win the
// same window.
func (r *MongoBookingRepo) ReserveIfFree(ctx context.Context, booking *models.Booking) error {
	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"spot_id": booking.SpotID,
			"status":  bson.M{"$in": models.BlockingStatuses()},
			"start":   bson.M{"$lt": booking.End},
			"end":     bson.M{"$gt": booking.Start},
		}
		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return nil, ErrSlotConflict
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	})
	return err
}

// UpdateStatus sets the persisted coarse status of a booking.
func (r *MongoBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	return r.update(id, bson.M{"status": status})
}

// UpdatePayment records the payment outcome and invoice on a booking.
func (r *MongoBookingRepo) UpdatePayment(id string, status models.PaymentStatus, invoice *models.Invoice) error {
	fields := bson.M{"payment_status": status}
	if invoice != nil {
		fields["invoice"] = invoice
	}
	return r.update(id, fields)
}

func (r *MongoBookingRepo) update(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
