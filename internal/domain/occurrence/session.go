package occurrence

import (
	"camphq/internal/domain/civil"
)

// Origin constants — where a resolved session came from.
const (
	OriginRecurring = "recurring" // emitted from a weekly rule
	OriginException = "exception" // emitted from a rescheduled/modified exception
)

// Session status constants.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Session is one concrete, dated camp meeting, produced by Resolve after
// weekly rules and date exceptions have been applied. Sessions are derived,
// never persisted, and are recomputed whenever rules, exceptions or the
// queried range change.
type Session struct {
	CampID string
	RuleID string // originating rule, empty for exception-origin sessions
	Date   civil.Date
	Start  civil.TimeOfDay
	End    civil.TimeOfDay
	Origin string // recurring or exception
	Status string // active or cancelled
	Notes  string
}

// IsActive returns true if the session runs.
// INVARIANT: Session fields are not mutated
func (s Session) IsActive() bool {
	return s.Status == StatusActive
}
