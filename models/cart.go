package models

import "time"

// CartEntry is a booking-in-progress held locally until payment completes.
// AppointmentID alone identifies an entry; several entries may carry the
// same service with different appointment times.
type CartEntry struct {
	AppointmentID       string    `json:"appointmentId"`
	Service             Service   `json:"service"` // snapshot at add time
	AppointmentDateTime time.Time `json:"appointmentDateTime"`
}
