package occurrence

import (
	"sort"

	"camphq/internal/domain/civil"
)

// Index answers "does this day have a session" and "which sessions run on
// this day" in O(1) after construction. It is built once per resolved
// session list and rebuilt from scratch when the list changes — session
// lists are small (one camp over a bounded range), so a full rebuild is
// cheaper than incremental bookkeeping.
type Index struct {
	byDate map[civil.Date][]Session
}

// BuildIndex constructs an Index from a resolved session list. Cancelled
// sessions are skipped; per-date lists are ordered by start time, input
// order on ties.
// PRE: none
// POST: Returns a ready Index; sessions slice is not retained or mutated
func BuildIndex(sessions []Session) *Index {
	ix := &Index{byDate: make(map[civil.Date][]Session)}
	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}
		ix.byDate[s.Date] = append(ix.byDate[s.Date], s)
	}
	for date, day := range ix.byDate {
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Start.Before(day[j].Start)
		})
		ix.byDate[date] = day
	}
	return ix
}

// HasSession returns true if at least one active session runs on the date.
// INVARIANT: Index is not mutated
func (ix *Index) HasSession(date civil.Date) bool {
	return len(ix.byDate[date]) > 0
}

// SessionsOn returns the date's active sessions ordered by start time.
// Returns nil for dates with no sessions.
// INVARIANT: Index is not mutated
func (ix *Index) SessionsOn(date civil.Date) []Session {
	return ix.byDate[date]
}

// Dates returns every date with at least one active session, ascending.
// INVARIANT: Index is not mutated
func (ix *Index) Dates() []civil.Date {
	dates := make([]civil.Date, 0, len(ix.byDate))
	for date := range ix.byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
