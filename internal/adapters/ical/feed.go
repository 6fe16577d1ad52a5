// Package ical renders resolved camp sessions as an iCalendar feed that
// parents can subscribe to. Sessions are civil dates with local start and
// end times and no timezone, so events are emitted as all-day entries
// (DTSTART;VALUE=DATE) with the times carried in the summary; importing
// calendars then show them on the right day in every timezone.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"camphq/internal/domain/civil"
	"camphq/internal/domain/occurrence"
)

// FeedInfo carries the camp details stamped onto the feed.
type FeedInfo struct {
	CampID   string
	CampName string
	Location string
}

// BuildFeed renders one VEVENT per active session. Cancelled sessions are
// omitted entirely rather than emitted with STATUS:CANCELLED, since
// subscribers never saw a per-session UID before the cancellation.
func BuildFeed(info FeedInfo, sessions []occurrence.Session, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CampHQ//Camp Calendar//EN")
	cal.SetName(info.CampName)

	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}

		uid := fmt.Sprintf("%s-%s-%s@camphq", info.CampID, s.Date, s.Start)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(midnight(s.Date))
		ev.SetAllDayEndAt(midnight(s.Date.AddDays(1)))
		ev.SetSummary(fmt.Sprintf("%s %s-%s", info.CampName, s.Start, s.End))
		if info.Location != "" {
			ev.SetLocation(info.Location)
		}
		if s.Notes != "" {
			ev.SetDescription(s.Notes)
		}
		ev.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}

// midnight maps a civil date to the UTC midnight used for all-day values.
// The library only formats the date portion for VALUE=DATE properties, so
// the zone choice never leaks into the feed.
func midnight(d civil.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
