package occurrence

import (
	"errors"
	"fmt"
	"sort"

	"camphq/internal/domain/civil"
	"camphq/internal/domain/exception"
	"camphq/internal/domain/schedule"
)

// Domain errors
var (
	ErrInvalidRange = errors.New("range start must not be after range end")
)

// Resolve produces the ordered list of concrete sessions for one camp over
// [rangeStart, rangeEnd] inclusive. Exceptions take precedence over the
// weekly rules: a cancelled exception suppresses every session on its date,
// and a rescheduled or modified exception replaces the whole date's schedule
// with exactly one session using the exception's window — even when several
// rules share that weekday.
//
// The output is sorted by (date, start time); same-date recurring sessions
// keep rule order on equal start times. Resolve is a pure function: no I/O,
// no clock, no time zones — callers may memoize it freely.
//
// PRE: rules and exceptions all belong to the same camp (caller's
// responsibility); rangeStart and rangeEnd are valid Dates
// POST: every returned Session.Date lies within [rangeStart, rangeEnd]
func Resolve(rules []schedule.Rule, exceptions []exception.Exception, rangeStart, rangeEnd civil.Date) ([]Session, error) {
	if err := rangeStart.Validate(); err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	if err := rangeEnd.Validate(); err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}
	if rangeStart.After(rangeEnd) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, rangeStart, rangeEnd)
	}

	// Index exceptions by date; the backend guarantees at most one per date.
	excByDate := make(map[civil.Date]exception.Exception, len(exceptions))
	for _, exc := range exceptions {
		excByDate[exc.Date] = exc
	}

	var sessions []Session
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDays(1) {
		if exc, ok := excByDate[d]; ok {
			if exc.IsCancellation() {
				continue
			}
			sessions = append(sessions, Session{
				CampID: exc.CampID,
				Date:   d,
				Start:  exc.Start,
				End:    exc.End,
				Origin: OriginException,
				Status: StatusActive,
				Notes:  exc.Reason,
			})
			continue
		}

		day := len(sessions)
		weekday := d.Weekday()
		for _, r := range rules {
			if r.Weekday != weekday {
				continue
			}
			sessions = append(sessions, Session{
				CampID: r.CampID,
				RuleID: r.ID,
				Date:   d,
				Start:  r.Start,
				End:    r.End,
				Origin: OriginRecurring,
				Status: StatusActive,
			})
		}
		// Order within the day by start time, keeping rule order on ties.
		sort.SliceStable(sessions[day:], func(i, j int) bool {
			return sessions[day+i].Start.Before(sessions[day+j].Start)
		})
	}

	return sessions, nil
}
