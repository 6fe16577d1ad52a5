package projections

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"camphq/internal/domain/civil"
	"camphq/internal/domain/schedule"
)

// SummaryScheduleStore defines the store interface needed by this projection.
type SummaryScheduleStore interface {
	ListByCampID(ctx context.Context, campID string) ([]schedule.Rule, error)
}

// GetScheduleSummaryDeps holds dependencies for the projection.
type GetScheduleSummaryDeps struct {
	ScheduleStore SummaryScheduleStore
}

// ScheduleSummaryResult is a human-readable schedule description, one line per
// distinct time window, e.g. "Mon, Wed & Fri 09:00-10:00".
type ScheduleSummaryResult struct {
	CampID string
	Lines  []string
}

// QueryGetScheduleSummary renders a camp's weekly rules as compact summary
// lines. Rules sharing the same start and end time are grouped onto one line
// with their weekdays joined; lines are ordered by earliest start time,
// then end time.
func QueryGetScheduleSummary(ctx context.Context, campID string, deps GetScheduleSummaryDeps) (ScheduleSummaryResult, error) {
	rules, err := deps.ScheduleStore.ListByCampID(ctx, campID)
	if err != nil {
		return ScheduleSummaryResult{}, err
	}

	type window struct {
		start civil.TimeOfDay
		end   civil.TimeOfDay
	}
	grouped := make(map[window][]int)
	for _, r := range rules {
		w := window{start: r.Start, end: r.End}
		grouped[w] = append(grouped[w], r.Weekday)
	}

	windows := make([]window, 0, len(grouped))
	for w := range grouped {
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool {
		if c := windows[i].start.Compare(windows[j].start); c != 0 {
			return c < 0
		}
		return windows[i].end.Compare(windows[j].end) < 0
	})

	lines := make([]string, 0, len(windows))
	for _, w := range windows {
		days := grouped[w]
		sort.Ints(days)
		days = dedupInts(days)
		lines = append(lines, fmt.Sprintf("%s %s-%s", joinWeekdays(days), w.start, w.end))
	}

	return ScheduleSummaryResult{CampID: campID, Lines: lines}, nil
}

// joinWeekdays renders weekday numbers as "Mon", "Mon & Wed" or "Mon, Wed & Fri".
func joinWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d < 0 || d >= len(civil.WeekdayNames) {
			continue
		}
		names = append(names, civil.WeekdayNames[d][:3])
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

func dedupInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
