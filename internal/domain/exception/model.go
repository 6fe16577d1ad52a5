package exception

import (
	"errors"
	"strings"

	"camphq/internal/domain/civil"
)

// Status constants.
const (
	StatusCancelled   = "cancelled"   // the date's sessions do not run
	StatusRescheduled = "rescheduled" // the date runs at a different time
	StatusModified    = "modified"    // the date runs with an adjusted window
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusCancelled, StatusRescheduled, StatusModified}

// MaxReasonLength caps the free-text reason field.
const MaxReasonLength = 500

// Domain errors
var (
	ErrEmptyCampID   = errors.New("camp ID cannot be empty")
	ErrInvalidStatus = errors.New("status must be 'cancelled', 'rescheduled' or 'modified'")
	ErrMissingTimes  = errors.New("rescheduled and modified exceptions require start and end times")
	ErrInvalidWindow = errors.New("start time must be before end time")
	ErrReasonTooLong = errors.New("reason cannot exceed 500 characters")
)

// Exception is a date-specific override of a camp's weekly recurrence. At
// most one exception exists per (camp, date) — enforced by a unique index in
// storage. A cancelled exception suppresses every session on its date; a
// rescheduled or modified exception replaces the whole date's schedule with
// its own time window.
type Exception struct {
	ID     string
	CampID string
	Date   civil.Date
	Status string
	Start  civil.TimeOfDay // required for rescheduled/modified
	End    civil.TimeOfDay // required for rescheduled/modified
	Reason string
}

// Validate checks if the Exception has valid data.
// PRE: Exception struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Exception) Validate() error {
	if strings.TrimSpace(e.CampID) == "" {
		return ErrEmptyCampID
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !isValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	if len(e.Reason) > MaxReasonLength {
		return ErrReasonTooLong
	}
	if e.Status == StatusCancelled {
		return nil
	}
	if err := e.Start.Validate(); err != nil {
		return err
	}
	if err := e.End.Validate(); err != nil {
		return err
	}
	if !e.Start.Before(e.End) {
		if e.Start == e.End && e.Start == (civil.TimeOfDay{}) {
			return ErrMissingTimes
		}
		return ErrInvalidWindow
	}
	return nil
}

// IsCancellation returns true if this exception suppresses its date entirely.
// INVARIANT: Exception fields are not mutated
func (e *Exception) IsCancellation() bool {
	return e.Status == StatusCancelled
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
