package booking

import "errors"

var (
	// ErrEntryNotFound means the cart holds no entry for the appointment.
	ErrEntryNotFound = errors.New("booking: cart entry not found")
	// ErrSessionNotFound means the submission session expired or never
	// existed (or belongs to another user).
	ErrSessionNotFound = errors.New("booking: session not found")
	// ErrPaymentNotConfirmed means the processor has not confirmed the
	// payment; no booking is created.
	ErrPaymentNotConfirmed = errors.New("booking: payment not confirmed")
	// ErrBookingInFlight means another confirmation for the same
	// appointment is already being processed.
	ErrBookingInFlight = errors.New("booking: confirmation already in flight")
)
