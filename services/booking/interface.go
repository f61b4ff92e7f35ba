package booking

import (
	"context"
	"time"

	"serenity/models"
)

// State of a booking submission. A submission either reaches Booked or
// falls back to Idle with the error surfaced; nothing retries on its own.
type State string

const (
	StateIdle                        State = "idle"
	StateAwaitingIntent              State = "awaiting_intent"
	StateAwaitingPaymentConfirmation State = "awaiting_payment_confirmation"
	StateBooked                      State = "booked"
)

// Session tracks one submission attempt between intent creation and
// payment confirmation.
type Session struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	UserEmail    string           `json:"userEmail"`
	State        State            `json:"state"`
	Entry        models.CartEntry `json:"entry"`
	IntentID     string           `json:"intentId"`
	ClientSecret string           `json:"clientSecret"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// PaymentGateway is the payment processor collaborator.
type PaymentGateway interface {
	// CreateIntent registers a payment of the given amount in minor units
	// and returns the intent ID plus the client secret driving the
	// payment sheet.
	CreateIntent(ctx context.Context, amount int64, currency string) (id, clientSecret string, err error)
	// IntentSucceeded reports whether the processor has confirmed the
	// payment.
	IntentSucceeded(ctx context.Context, id string) (bool, error)
}

// SessionStore keeps in-flight submissions between the intent call and
// the confirmation call.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Locker guards against duplicate bookings of the same appointment on
// rapid repeated confirmation.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// ReminderScheduler queues an appointment reminder for a new booking.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking models.Booking) error
}
