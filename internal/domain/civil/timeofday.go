package civil

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidTime = errors.New("invalid time of day")
)

// TimeOfDay is a timezone-free wall-clock time (24-hour). It carries no date
// and no seconds; ordering is lexicographic (hour, then minute).
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// NewTimeOfDay constructs a TimeOfDay, rejecting out-of-range fields.
// PRE: none
// POST: Returns a valid TimeOfDay, or ErrInvalidTime (wrapped with detail)
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// Validate checks that hour and minute are in range.
// PRE: none
// POST: Returns nil if valid, ErrInvalidTime otherwise
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, t.Minute)
	}
	return nil
}

// String formats the TimeOfDay as HH:MM.
// INVARIANT: TimeOfDay fields are not mutated
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText formats the TimeOfDay as HH:MM for JSON and text encoding.
// Output only, like Date.MarshalText.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Compare returns -1, 0 or 1 ordering two TimeOfDays lexicographically.
// INVARIANT: TimeOfDay fields are not mutated
func (t TimeOfDay) Compare(other TimeOfDay) int {
	if t.Hour != other.Hour {
		return sign(t.Hour - other.Hour)
	}
	return sign(t.Minute - other.Minute)
}

// Before returns true if t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Compare(other) < 0 }

// After returns true if t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t.Compare(other) > 0 }

// MinutesBetween returns the number of minutes from t to end.
// PRE: t <= end
// POST: Returns a non-negative minute count
func MinutesBetween(t, end TimeOfDay) int {
	return (end.Hour-t.Hour)*60 + (end.Minute - t.Minute)
}
