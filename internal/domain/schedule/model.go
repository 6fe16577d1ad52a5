package schedule

import (
	"errors"
	"strings"

	"camphq/internal/domain/civil"
)

// Domain errors
var (
	ErrEmptyCampID    = errors.New("camp ID cannot be empty")
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidWindow  = errors.New("start time must be before end time")
)

// Rule represents one weekly recurring session slot for a camp. A camp owns
// zero or more rules; multiple rules may share a weekday (morning and
// afternoon sessions). Concrete dated sessions are resolved on the fly from
// Rules and Exceptions — rules themselves carry no dates.
type Rule struct {
	ID      string
	CampID  string
	Weekday int // 0=Sunday .. 6=Saturday
	Start   civil.TimeOfDay
	End     civil.TimeOfDay
}

// Validate checks if the Rule has valid data.
// PRE: Rule struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: Start < End — overnight slots are not supported
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.CampID) == "" {
		return ErrEmptyCampID
	}
	if r.Weekday < civil.Sunday || r.Weekday > civil.Saturday {
		return ErrInvalidWeekday
	}
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if !r.Start.Before(r.End) {
		return ErrInvalidWindow
	}
	return nil
}

// DurationMinutes returns the slot length in minutes.
// PRE: Rule has been validated
// INVARIANT: Rule fields are not mutated
func (r *Rule) DurationMinutes() int {
	return civil.MinutesBetween(r.Start, r.End)
}
