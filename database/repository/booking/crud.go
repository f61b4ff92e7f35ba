package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"serenity/database"
	"serenity/models"
)

// Create inserts a new booking and returns its ID.
func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return "", err
	}
	return booking.ID, nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns a user's bookings, newest appointment first.
func (r *mongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListAll returns every booking, newest appointment first. Used by the
// admin transactions view.
func (r *mongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appointment_date_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Complete transitions a booking to "completed", recording when the
// remaining balance was settled.
func (r *mongoBookingRepo) Complete(ctx context.Context, id string, fullPaymentDate time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.BookingStatusBooked},
		bson.M{"$set": bson.M{
			"status":            models.BookingStatusCompleted,
			"full_payment_date": fullPaymentDate,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("booking not found or already completed")
	}
	return nil
}

// Watch ticks once per change to the bookings collection.
func (r *mongoBookingRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.coll)
}
