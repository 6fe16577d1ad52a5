package schedule

import (
	"context"

	domain "camphq/internal/domain/schedule"
)

// Store persists the weekly schedule Rules of camps.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Rule, error)
	Save(ctx context.Context, value domain.Rule) error
	Delete(ctx context.Context, id string) error
	ListByCampID(ctx context.Context, campID string) ([]domain.Rule, error)
	ReplaceForCamp(ctx context.Context, campID string, rules []domain.Rule) error
}
