package schedule

import "time"

// Picker normalizes independently chosen calendar-date and clock-time
// values into one valid future appointment instant. Rejected selections
// leave the previous state untouched.
type Picker struct {
	date  time.Time
	clock time.Time
	now   func() time.Time
}

// NewPicker seeds both date and time from the next available slot.
func NewPicker(now func() time.Time) *Picker {
	if now == nil {
		now = time.Now
	}
	slot := NextAvailableSlot(now())
	return &Picker{date: slot, clock: slot, now: now}
}

// Date returns the currently selected calendar day.
func (p *Picker) Date() time.Time { return p.date }

// Time returns the currently selected clock time.
func (p *Picker) Time() time.Time { return p.clock }

// SetDate selects a new calendar day. Picking today re-validates the held
// time: a past or out-of-window time snaps to max(opening, next hour), and
// if that snap lands at or past closing the slot rolls to opening the next
// day. Picking a future day always resets the time to opening; that is a
// policy choice, not an accident.
func (p *Picker) SetDate(selected time.Time) error {
	now := p.now()
	if selected.Before(now) {
		return ErrDateInPast
	}

	if !sameDay(selected, now) {
		p.date = selected
		p.clock = atHour(selected, OpeningHour)
		return nil
	}

	p.date = selected
	held := CombineDateTime(selected, p.clock)
	if held.Before(now) || !WithinBusinessHours(held) {
		snapHour := now.Hour() + 1
		if snapHour < OpeningHour {
			snapHour = OpeningHour
		}
		if snapHour >= ClosingHour {
			next := selected.AddDate(0, 0, 1)
			p.date = next
			p.clock = atHour(next, OpeningHour)
			return nil
		}
		p.clock = atHour(selected, snapHour)
	}
	return nil
}

// SetTime selects a new clock time for the held date. The combined instant
// must be strictly in the future and inside the business window; otherwise
// the previous time stands and the error surfaces to the user.
func (p *Picker) SetTime(selected time.Time) error {
	now := p.now()
	candidate := CombineDateTime(p.date, selected)

	if !candidate.After(now) {
		return ErrInstantNotFuture
	}
	if !WithinBusinessHours(candidate) {
		return ErrOutsideBusinessHours
	}
	p.clock = candidate
	return nil
}

// Appointment re-validates the current selection against a fresh "now"
// and returns the combined instant. A selection that was valid when picked
// can still fail here if enough wall-clock time has passed.
func (p *Picker) Appointment() (time.Time, error) {
	combined := CombineDateTime(p.date, p.clock)
	if err := ValidateAppointment(combined, p.now()); err != nil {
		return time.Time{}, err
	}
	return combined, nil
}
