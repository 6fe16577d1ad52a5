package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"camphq/internal/adapters/ingest"
	"camphq/internal/domain/camp"
	"camphq/internal/domain/schedule"
)

// CampLookup defines the camp store interface needed by schedule commands.
type CampLookup interface {
	GetByID(ctx context.Context, id string) (camp.Camp, error)
}

// ScheduleStoreForSet defines the store interface needed by SetCampSchedule.
type ScheduleStoreForSet interface {
	ReplaceForCamp(ctx context.Context, campID string, rules []schedule.Rule) error
}

// SetCampScheduleInput carries the full replacement rule set in wire form.
type SetCampScheduleInput struct {
	CampID  string
	Records []ingest.RuleRecord
}

// SetCampScheduleDeps holds dependencies for SetCampSchedule.
type SetCampScheduleDeps struct {
	CampStore     CampLookup
	ScheduleStore ScheduleStoreForSet
	GenerateID    func() string
}

var ErrCampNotFound = errors.New("camp does not exist")

// ExecuteSetCampSchedule replaces a camp's weekly rules atomically.
// The whole set is rejected when any record fails to parse or validate;
// a partial schedule is worse than no change.
// PRE: CampID refers to an existing camp
// POST: All previous rules replaced by the new set, insertion order preserved
func ExecuteSetCampSchedule(ctx context.Context, input SetCampScheduleInput, deps SetCampScheduleDeps) (int, error) {
	if _, err := deps.CampStore.GetByID(ctx, input.CampID); err != nil {
		return 0, ErrCampNotFound
	}

	rules, bad := ingest.NormalizeRules(input.CampID, input.Records)
	if len(bad) > 0 {
		return 0, errors.Join(bad...)
	}

	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = deps.GenerateID()
		}
	}

	if err := deps.ScheduleStore.ReplaceForCamp(ctx, input.CampID, rules); err != nil {
		return 0, err
	}

	slog.Info("camp_event", "event", "schedule_replaced", "camp_id", input.CampID, "rule_count", len(rules))
	return len(rules), nil
}
