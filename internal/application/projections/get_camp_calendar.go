package projections

import (
	"context"
	"errors"

	"camphq/internal/domain/camp"
	"camphq/internal/domain/civil"
	"camphq/internal/domain/exception"
	"camphq/internal/domain/occurrence"
	"camphq/internal/domain/schedule"
)

// ErrCampNotFound is returned when the requested camp does not exist.
var ErrCampNotFound = errors.New("camp not found")

// CalendarCampStore defines the store interface needed by this projection.
type CalendarCampStore interface {
	GetByID(ctx context.Context, id string) (camp.Camp, error)
}

// CalendarScheduleStore defines the store interface needed by this projection.
type CalendarScheduleStore interface {
	ListByCampID(ctx context.Context, campID string) ([]schedule.Rule, error)
}

// CalendarExceptionStore defines the store interface needed by this projection.
type CalendarExceptionStore interface {
	ListByCampID(ctx context.Context, campID string) ([]exception.Exception, error)
}

// GetCampCalendarDeps holds dependencies for the projection.
type GetCampCalendarDeps struct {
	CampStore      CalendarCampStore
	ScheduleStore  CalendarScheduleStore
	ExceptionStore CalendarExceptionStore
}

// CalendarDay is one date that has at least one active session.
type CalendarDay struct {
	Date     civil.Date
	Sessions []occurrence.Session
}

// CampCalendarResult is the resolved calendar for a camp over a date range.
// Sessions is the flat ordered list; Days groups the active ones per date.
type CampCalendarResult struct {
	CampID   string
	CampName string
	Location string
	From     civil.Date
	To       civil.Date
	Sessions []occurrence.Session
	Days     []CalendarDay
}

// QueryGetCampCalendar resolves a camp's concrete sessions for a date range.
// The requested range is clamped to the camp's own start and end dates, so
// callers can ask for a whole month without leaking sessions outside the camp.
// A zero from/to defaults to the camp's full run.
func QueryGetCampCalendar(ctx context.Context, campID string, from, to civil.Date, deps GetCampCalendarDeps) (CampCalendarResult, error) {
	c, err := deps.CampStore.GetByID(ctx, campID)
	if err != nil {
		return CampCalendarResult{}, ErrCampNotFound
	}

	if from.IsZero() || from.Before(c.StartDate) {
		from = c.StartDate
	}
	if to.IsZero() || to.After(c.EndDate) {
		to = c.EndDate
	}
	if to.Before(from) {
		// Requested window lies entirely outside the camp's run.
		return CampCalendarResult{
			CampID:   c.ID,
			CampName: c.Name,
			Location: c.Location,
			From:     from,
			To:       to,
		}, nil
	}

	rules, err := deps.ScheduleStore.ListByCampID(ctx, campID)
	if err != nil {
		return CampCalendarResult{}, err
	}
	exceptions, err := deps.ExceptionStore.ListByCampID(ctx, campID)
	if err != nil {
		return CampCalendarResult{}, err
	}

	sessions, err := occurrence.Resolve(rules, exceptions, from, to)
	if err != nil {
		return CampCalendarResult{}, err
	}

	idx := occurrence.BuildIndex(sessions)
	var days []CalendarDay
	for _, d := range idx.Dates() {
		days = append(days, CalendarDay{Date: d, Sessions: idx.SessionsOn(d)})
	}

	return CampCalendarResult{
		CampID:   c.ID,
		CampName: c.Name,
		Location: c.Location,
		From:     from,
		To:       to,
		Sessions: sessions,
		Days:     days,
	}, nil
}
