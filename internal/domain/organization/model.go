package organization

import (
	"errors"
	"strings"
)

// MaxNameLength caps the organization name.
const MaxNameLength = 200

// Domain errors
var (
	ErrEmptyName    = errors.New("organization name cannot be empty")
	ErrNameTooLong  = errors.New("organization name cannot exceed 200 characters")
	ErrInvalidEmail = errors.New("contact email must contain '@'")
)

// Organization is the tenant that publishes camps.
type Organization struct {
	ID           string
	Name         string
	ContactEmail string
}

// Validate checks if the Organization has valid data.
// PRE: Organization struct is populated
// POST: Returns nil if valid, error otherwise
func (o *Organization) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if len(o.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !strings.Contains(o.ContactEmail, "@") {
		return ErrInvalidEmail
	}
	return nil
}
