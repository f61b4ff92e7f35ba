package schedule

import (
	"errors"
	"time"
)

// Business window. Opening hour is bookable, closing hour is not.
const (
	OpeningHour = 8
	ClosingHour = 18
)

var (
	// ErrDateInPast rejects a date selection before the current time.
	ErrDateInPast = errors.New("schedule: selected date is in the past")
	// ErrInstantNotFuture rejects a combined date-time at or before now.
	ErrInstantNotFuture = errors.New("schedule: appointment must be in the future")
	// ErrOutsideBusinessHours rejects a time outside the bookable window.
	ErrOutsideBusinessHours = errors.New("schedule: appointments run from 08:00 to 18:00")
)

// WithinBusinessHours reports whether the instant's clock hour is bookable.
func WithinBusinessHours(t time.Time) bool {
	h := t.Hour()
	return h >= OpeningHour && h < ClosingHour
}

// NextAvailableSlot computes the earliest bookable slot after now: past
// closing moves to opening the next day, before opening snaps to opening
// today, otherwise the next full hour.
func NextAvailableSlot(now time.Time) time.Time {
	if now.Hour() >= ClosingHour {
		next := now.AddDate(0, 0, 1)
		return atHour(next, OpeningHour)
	}
	if now.Hour() < OpeningHour {
		return atHour(now, OpeningHour)
	}
	next := atHour(now, now.Hour()+1)
	if next.Hour() >= ClosingHour {
		// Rounding up from 17:xx lands on the exclusive closing boundary.
		return atHour(now.AddDate(0, 0, 1), OpeningHour)
	}
	return next
}

// CombineDateTime merges the calendar day of date with the clock of tod
// into one instant in date's location.
func CombineDateTime(date, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0, date.Location())
}

// ValidateAppointment is the final submission gate: the instant must be
// strictly after now and inside the business window. Now is supplied by
// the caller so it is re-sampled at validation time, never cached.
func ValidateAppointment(at, now time.Time) error {
	if !at.After(now) {
		return ErrInstantNotFuture
	}
	if !WithinBusinessHours(at) {
		return ErrOutsideBusinessHours
	}
	return nil
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
