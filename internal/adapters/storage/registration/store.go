package registration

import (
	"context"

	domain "camphq/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	ListByCampID(ctx context.Context, campID string) ([]domain.Registration, error)
	CountActiveByCampID(ctx context.Context, campID string) (int, error)
	FirstWaitlisted(ctx context.Context, campID string) (domain.Registration, error)
}
