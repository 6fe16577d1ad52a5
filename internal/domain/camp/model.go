package camp

import (
	"errors"
	"strings"

	"camphq/internal/domain/civil"
)

// Camp status constants.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Max length constants for organizer-editable fields.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 5000
	MaxLocationLength    = 200
)

// Domain errors
var (
	ErrEmptyName          = errors.New("camp name cannot be empty")
	ErrEmptyOrganization  = errors.New("organization ID cannot be empty")
	ErrInvalidStatus      = errors.New("status must be 'draft', 'published' or 'archived'")
	ErrInvalidDates       = errors.New("start date must be before or equal to end date")
	ErrNameTooLong        = errors.New("camp name cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("camp description cannot exceed 5000 characters")
	ErrLocationTooLong    = errors.New("camp location cannot exceed 200 characters")
	ErrNegativeCapacity   = errors.New("capacity cannot be negative")
)

// Camp is one offering published by an organization: a date-bounded program
// that meets on the weekly pattern defined by its schedule rules.
// Description is markdown, rendered at the HTTP layer.
type Camp struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	Location       string
	StartDate      civil.Date
	EndDate        civil.Date
	Capacity       int // 0 means unlimited
	Status         string
}

// Validate checks if the Camp has valid data.
// PRE: Camp struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: StartDate <= EndDate
func (c *Camp) Validate() error {
	if strings.TrimSpace(c.OrganizationID) == "" {
		return ErrEmptyOrganization
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(c.Location) > MaxLocationLength {
		return ErrLocationTooLong
	}
	if err := c.StartDate.Validate(); err != nil {
		return err
	}
	if err := c.EndDate.Validate(); err != nil {
		return err
	}
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidDates
	}
	if c.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if c.Status != StatusDraft && c.Status != StatusPublished && c.Status != StatusArchived {
		return ErrInvalidStatus
	}
	return nil
}

// IsPublished returns true if the camp is visible to parents.
// INVARIANT: Camp fields are not mutated
func (c *Camp) IsPublished() bool {
	return c.Status == StatusPublished
}

// Contains returns true if the given date falls within the camp's run.
// PRE: date is a valid Date
// INVARIANT: Camp fields are not mutated
func (c *Camp) Contains(date civil.Date) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}
