package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/organization"
)

// CampStoreForCreate defines the store interface needed by CreateCamp.
type CampStoreForCreate interface {
	Save(ctx context.Context, c camp.Camp) error
}

// OrganizationLookup defines the organization store interface needed here.
type OrganizationLookup interface {
	GetByID(ctx context.Context, id string) (organization.Organization, error)
}

// CreateCampInput carries input for the orchestrator. Dates arrive already
// parsed; wire strings are the ingest adapter's business.
type CreateCampInput struct {
	OrganizationID string
	Name           string
	Description    string
	Location       string
	StartDate      civil.Date
	EndDate        civil.Date
	Capacity       int
	Publish        bool
}

// CreateCampDeps holds dependencies for CreateCamp.
type CreateCampDeps struct {
	CampStore         CampStoreForCreate
	OrganizationStore OrganizationLookup
	GenerateID        func() string
}

var ErrUnknownOrganization = errors.New("organization does not exist")

// ExecuteCreateCamp coordinates camp creation.
// PRE: OrganizationID refers to an existing organization; dates are valid
// POST: Camp created as draft (or published when Publish is set)
func ExecuteCreateCamp(ctx context.Context, input CreateCampInput, deps CreateCampDeps) (string, error) {
	if _, err := deps.OrganizationStore.GetByID(ctx, input.OrganizationID); err != nil {
		return "", ErrUnknownOrganization
	}

	status := camp.StatusDraft
	if input.Publish {
		status = camp.StatusPublished
	}

	c := camp.Camp{
		ID:             deps.GenerateID(),
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		Location:       input.Location,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Capacity:       input.Capacity,
		Status:         status,
	}

	if err := c.Validate(); err != nil {
		return "", err
	}

	if err := deps.CampStore.Save(ctx, c); err != nil {
		return "", err
	}

	slog.Info("camp_event", "event", "camp_created", "camp_id", c.ID, "organization_id", c.OrganizationID, "status", c.Status)
	return c.ID, nil
}
