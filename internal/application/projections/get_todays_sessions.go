package projections

import (
	"context"

	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/exception"
	"camphq/internal/domain/occurrence"
	"camphq/internal/domain/schedule"
)

// TodaysSessionsCampStore defines the store interface needed by this projection.
type TodaysSessionsCampStore interface {
	ListPublished(ctx context.Context) ([]camp.Camp, error)
}

// TodaysSessionsScheduleStore defines the store interface needed by this projection.
type TodaysSessionsScheduleStore interface {
	ListByCampID(ctx context.Context, campID string) ([]schedule.Rule, error)
}

// TodaysSessionsExceptionStore defines the store interface needed by this projection.
type TodaysSessionsExceptionStore interface {
	GetByCampAndDate(ctx context.Context, campID string, date civil.Date) (exception.Exception, error)
}

// GetTodaysSessionsDeps holds dependencies for the projection.
type GetTodaysSessionsDeps struct {
	CampStore      TodaysSessionsCampStore
	ScheduleStore  TodaysSessionsScheduleStore
	ExceptionStore TodaysSessionsExceptionStore
}

// TodaysSessionResult is a single session happening today, enriched with camp info.
type TodaysSessionResult struct {
	CampID   string
	CampName string
	Location string
	Start    civil.TimeOfDay
	End      civil.TimeOfDay
	Origin   string
	Notes    string
}

// QueryGetTodaysSessions resolves which sessions run today across all published
// camps. Algorithm: 1) list published camps, 2) skip camps whose date range
// does not contain today, 3) resolve today's occurrences per camp from its
// rules and exception (if any), 4) flatten into enriched results.
func QueryGetTodaysSessions(ctx context.Context, today civil.Date, deps GetTodaysSessionsDeps) ([]TodaysSessionResult, error) {
	camps, err := deps.CampStore.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	var results []TodaysSessionResult
	for _, c := range camps {
		if !c.Contains(today) {
			continue
		}

		rules, err := deps.ScheduleStore.ListByCampID(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		var exceptions []exception.Exception
		if ex, err := deps.ExceptionStore.GetByCampAndDate(ctx, c.ID, today); err == nil {
			exceptions = append(exceptions, ex)
		}

		sessions, err := occurrence.Resolve(rules, exceptions, today, today)
		if err != nil {
			return nil, err
		}

		for _, s := range sessions {
			results = append(results, TodaysSessionResult{
				CampID:   c.ID,
				CampName: c.Name,
				Location: c.Location,
				Start:    s.Start,
				End:      s.End,
				Origin:   s.Origin,
				Notes:    s.Notes,
			})
		}
	}

	return results, nil
}
