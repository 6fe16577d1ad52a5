package web

import (
	"errors"
	"net/http"

	"camphq/internal/adapters/http/middleware"
	icalAdapter "camphq/internal/adapters/ical"
	"camphq/internal/adapters/ingest"
	"camphq/internal/application/projections"
	"camphq/internal/domain/civil"
)

// parseRangeParam parses an optional from/to query value. Empty means "not
// given": the projection then clamps to the camp's own run.
func parseRangeParam(r *http.Request, key string) (civil.Date, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return civil.Date{}, nil
	}
	return ingest.ParseDate(s)
}

// handleCampCalendar handles GET /api/camps/{id}/calendar?from=&to=
// Returns the camp's resolved sessions: weekly rules expanded over the
// range with date exceptions applied.
func handleCampCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campID := r.PathValue("id")

	from, err := parseRangeParam(r, "from")
	if err != nil {
		http.Error(w, "from: "+err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseRangeParam(r, "to")
	if err != nil {
		http.Error(w, "to: "+err.Error(), http.StatusBadRequest)
		return
	}

	c, err := stores.CampStore.GetByID(ctx, campID)
	if err != nil || (!c.IsPublished() && !middleware.IsStaffOrAdmin(ctx)) {
		http.Error(w, "camp not found", http.StatusNotFound)
		return
	}

	result, err := projections.QueryGetCampCalendar(ctx, campID, from, to, projections.GetCampCalendarDeps{
		CampStore:      stores.CampStore,
		ScheduleStore:  stores.ScheduleStore,
		ExceptionStore: stores.ExceptionStore,
	})
	if err != nil {
		if errors.Is(err, projections.ErrCampNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCampCalendarICS handles GET /api/camps/{id}/calendar.ics — a public
// iCalendar feed of the camp's full run that parents can subscribe to.
func handleCampCalendarICS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campID := r.PathValue("id")

	c, err := stores.CampStore.GetByID(ctx, campID)
	if err != nil || !c.IsPublished() {
		http.Error(w, "camp not found", http.StatusNotFound)
		return
	}

	result, err := projections.QueryGetCampCalendar(ctx, campID, civil.Date{}, civil.Date{}, projections.GetCampCalendarDeps{
		CampStore:      stores.CampStore,
		ScheduleStore:  stores.ScheduleStore,
		ExceptionStore: stores.ExceptionStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	feed := icalAdapter.BuildFeed(icalAdapter.FeedInfo{
		CampID:   c.ID,
		CampName: c.Name,
		Location: c.Location,
	}, result.Sessions, timeNow())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+c.ID+`.ics"`)
	w.Write([]byte(feed))
}
