package announcement

import (
	"context"

	domain "camphq/internal/domain/announcement"
)

// Store persists Announcement state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Announcement, error)
	Save(ctx context.Context, value domain.Announcement) error
	Delete(ctx context.Context, id string) error
	ListByCampID(ctx context.Context, campID string) ([]domain.Announcement, error)
	ListPublishedByCampID(ctx context.Context, campID string) ([]domain.Announcement, error)
}
