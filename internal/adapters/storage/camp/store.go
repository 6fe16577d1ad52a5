package camp

import (
	"context"

	domain "camphq/internal/domain/camp"
)

// Store persists Camp state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Camp, error)
	Save(ctx context.Context, value domain.Camp) error
	Delete(ctx context.Context, id string) error
	ListByOrganizationID(ctx context.Context, organizationID string) ([]domain.Camp, error)
	ListPublished(ctx context.Context) ([]domain.Camp, error)
}
