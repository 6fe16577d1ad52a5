package announcement

import (
	"errors"
	"strings"
	"time"
)

// Announcement types. Camp-wide announcements reach everyone registered for
// the camp; schedule ones are auto-generated when staff record an exception.
const (
	TypeGeneral  = "general"
	TypeSchedule = "schedule"
)

// Announcement statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Max length constants.
const (
	MaxTitleLength = 200
	MaxBodyLength  = 5000
)

// ValidTypes contains all valid announcement types.
var ValidTypes = []string{TypeGeneral, TypeSchedule}

// Domain errors
var (
	ErrEmptyCampID   = errors.New("camp ID cannot be empty")
	ErrEmptyTitle    = errors.New("announcement title cannot be empty")
	ErrEmptyBody     = errors.New("announcement body cannot be empty")
	ErrInvalidType   = errors.New("announcement type must be 'general' or 'schedule'")
	ErrInvalidStatus = errors.New("announcement status must be 'draft' or 'published'")
)

// Announcement is a message from camp staff to registered families.
// Body supports Markdown formatting, rendered at the HTTP layer.
type Announcement struct {
	ID        string
	CampID    string
	Type      string
	Status    string
	Title     string
	Body      string
	CreatedBy string // account ID
	CreatedAt time.Time
}

// Validate checks if the Announcement has valid data.
// PRE: Announcement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.CampID) == "" {
		return ErrEmptyCampID
	}
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	if len(a.Title) > MaxTitleLength {
		return errors.New("announcement title cannot exceed 200 characters")
	}
	if strings.TrimSpace(a.Body) == "" {
		return ErrEmptyBody
	}
	if len(a.Body) > MaxBodyLength {
		return errors.New("announcement body cannot exceed 5000 characters")
	}
	if a.Type != TypeGeneral && a.Type != TypeSchedule {
		return ErrInvalidType
	}
	if a.Status != StatusDraft && a.Status != StatusPublished {
		return ErrInvalidStatus
	}
	return nil
}

// IsPublished returns true if the announcement is visible to families.
// INVARIANT: Announcement fields are not mutated
func (a *Announcement) IsPublished() bool {
	return a.Status == StatusPublished
}
