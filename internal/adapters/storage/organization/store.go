package organization

import (
	"context"

	domain "camphq/internal/domain/organization"
)

// Store persists Organization state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Organization, error)
	Save(ctx context.Context, value domain.Organization) error
	List(ctx context.Context) ([]domain.Organization, error)
}
