package exception

import (
	"context"

	"camphq/internal/domain/civil"
	domain "camphq/internal/domain/exception"
)

// Store persists ScheduleException state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Exception, error)
	GetByCampAndDate(ctx context.Context, campID string, date civil.Date) (domain.Exception, error)
	Save(ctx context.Context, value domain.Exception) error
	Delete(ctx context.Context, id string) error
	ListByCampID(ctx context.Context, campID string) ([]domain.Exception, error)
}
