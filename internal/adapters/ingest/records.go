package ingest

import (
	"fmt"

	"camphq/internal/domain/exception"
	"camphq/internal/domain/schedule"
)

// RuleRecord is the wire shape of one weekly schedule row as the backend
// feed delivers it.
type RuleRecord struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	StartTime string `json:"startTime"` // HH:MM[:SS]
	EndTime   string `json:"endTime"`   // HH:MM[:SS]
}

// ExceptionRecord is the wire shape of one schedule-exception row.
type ExceptionRecord struct {
	ID            string `json:"id"`
	ExceptionDate string `json:"exceptionDate"` // YYYY-MM-DD or ISO timestamp
	Status        string `json:"status"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// NormalizeRules converts wire rule records into validated domain Rules.
// Bad records are excluded and reported — never silently defaulted; the
// caller decides whether to continue with the good ones or surface the
// failures.
// PRE: campID is non-empty
// POST: Returns only records that parsed and validated; one error per
// rejected record, indexed for flagging
func NormalizeRules(campID string, records []RuleRecord) ([]schedule.Rule, []error) {
	var rules []schedule.Rule
	var bad []error
	for i, rec := range records {
		start, err := ParseTimeOfDay(rec.StartTime)
		if err != nil {
			bad = append(bad, fmt.Errorf("rule %d: start: %w", i, err))
			continue
		}
		end, err := ParseTimeOfDay(rec.EndTime)
		if err != nil {
			bad = append(bad, fmt.Errorf("rule %d: end: %w", i, err))
			continue
		}
		rule := schedule.Rule{
			ID:      rec.ID,
			CampID:  campID,
			Weekday: rec.DayOfWeek,
			Start:   start,
			End:     end,
		}
		if err := rule.Validate(); err != nil {
			bad = append(bad, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		rules = append(rules, rule)
	}
	return rules, bad
}

// NormalizeExceptions converts wire exception records into validated domain
// Exceptions, with the same exclude-and-report policy as NormalizeRules.
// PRE: campID is non-empty
// POST: Returns only records that parsed and validated
func NormalizeExceptions(campID string, records []ExceptionRecord) ([]exception.Exception, []error) {
	var exceptions []exception.Exception
	var bad []error
	for i, rec := range records {
		date, err := ParseDate(rec.ExceptionDate)
		if err != nil {
			bad = append(bad, fmt.Errorf("exception %d: %w", i, err))
			continue
		}
		exc := exception.Exception{
			ID:     rec.ID,
			CampID: campID,
			Date:   date,
			Status: rec.Status,
			Reason: rec.Reason,
		}
		if rec.Status != exception.StatusCancelled {
			start, err := ParseTimeOfDay(rec.StartTime)
			if err != nil {
				bad = append(bad, fmt.Errorf("exception %d: start: %w", i, err))
				continue
			}
			end, err := ParseTimeOfDay(rec.EndTime)
			if err != nil {
				bad = append(bad, fmt.Errorf("exception %d: end: %w", i, err))
				continue
			}
			exc.Start = start
			exc.End = end
		}
		if err := exc.Validate(); err != nil {
			bad = append(bad, fmt.Errorf("exception %d: %w", i, err))
			continue
		}
		exceptions = append(exceptions, exc)
	}
	return exceptions, bad
}
