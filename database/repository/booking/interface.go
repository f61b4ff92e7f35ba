package bookingRepo

import (
	"context"
	"time"

	"serenity/database"
	"serenity/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists confirmed bookings. Records are created only
// after payment confirmation and are never deleted; the only mutation is
// the admin completing the remaining payment.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	Complete(ctx context.Context, id string, fullPaymentDate time.Time) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.Collection("bookings"),
	}
}
