package models

import "time"

// Booking status values. A booking is created as "booked" and moves to
// "completed" when the admin records the remaining payment.
const (
	BookingStatusBooked    = "booked"
	BookingStatusCompleted = "completed"
)

// Booking is the durable record of a paid appointment. It is created only
// after a successful payment confirmation and is never deleted.
type Booking struct {
	ID                  string     `bson:"id" json:"id"`
	UserID              string     `bson:"user_id" json:"userId"`
	UserEmail           string     `bson:"user_email" json:"userEmail"`
	Service             Service    `bson:"service" json:"service"` // snapshot, decoupled from later catalog edits
	AppointmentDateTime time.Time  `bson:"appointment_date_time" json:"appointmentDateTime"`
	PaymentDateTime     time.Time  `bson:"payment_date_time" json:"paymentDateTime"`
	TotalPrice          float64    `bson:"total_price" json:"totalPrice"`
	PaidPrice           float64    `bson:"paid_price" json:"paidPrice"` // deposit, half the total
	Status              string     `bson:"status" json:"status"`
	FullPaymentDate     *time.Time `bson:"full_payment_date,omitempty" json:"fullPaymentDate,omitempty"`
}

// Remaining returns the balance due at the appointment.
func (b Booking) Remaining() float64 {
	return b.TotalPrice - b.PaidPrice
}
