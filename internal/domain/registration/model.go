package registration

import (
	"errors"
	"strings"
	"time"

	"camphq/internal/domain/civil"
)

// Status constants.
const (
	StatusActive     = "active"
	StatusWaitlisted = "waitlisted"
	StatusCancelled  = "cancelled"
)

// MaxNameLength caps camper and parent names.
const MaxNameLength = 100

// Domain errors
var (
	ErrEmptyCampID      = errors.New("camp ID cannot be empty")
	ErrEmptyCamperName  = errors.New("camper name cannot be empty")
	ErrEmptyParentName  = errors.New("parent name cannot be empty")
	ErrInvalidEmail     = errors.New("parent email must contain '@'")
	ErrInvalidStatus    = errors.New("status must be 'active', 'waitlisted' or 'cancelled'")
	ErrAlreadyCancelled = errors.New("registration is already cancelled")
	ErrNotWaitlisted    = errors.New("registration is not waitlisted")
)

// Registration enrols one camper in one camp.
type Registration struct {
	ID              string
	CampID          string
	CamperName      string
	CamperBirthDate civil.Date
	ParentName      string
	ParentEmail     string
	Status          string
	RegisteredAt    time.Time
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if strings.TrimSpace(r.CampID) == "" {
		return ErrEmptyCampID
	}
	if strings.TrimSpace(r.CamperName) == "" {
		return ErrEmptyCamperName
	}
	if len(r.CamperName) > MaxNameLength {
		return errors.New("camper name cannot exceed 100 characters")
	}
	if strings.TrimSpace(r.ParentName) == "" {
		return ErrEmptyParentName
	}
	if len(r.ParentName) > MaxNameLength {
		return errors.New("parent name cannot exceed 100 characters")
	}
	if !strings.Contains(r.ParentEmail, "@") {
		return ErrInvalidEmail
	}
	if err := r.CamperBirthDate.Validate(); err != nil {
		return err
	}
	if r.Status != StatusActive && r.Status != StatusWaitlisted && r.Status != StatusCancelled {
		return ErrInvalidStatus
	}
	return nil
}

// Cancel sets the registration status to cancelled.
// PRE: Registration is not already cancelled
// POST: Status is cancelled
func (r *Registration) Cancel() error {
	if r.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.Status = StatusCancelled
	return nil
}

// Promote moves a waitlisted registration to active.
// PRE: Status is waitlisted
// POST: Status is active
func (r *Registration) Promote() error {
	if r.Status != StatusWaitlisted {
		return ErrNotWaitlisted
	}
	r.Status = StatusActive
	return nil
}

// IsActive returns true if the registration counts toward capacity.
// INVARIANT: Registration fields are not mutated
func (r *Registration) IsActive() bool {
	return r.Status == StatusActive
}
