// Package ingest is the only place in the system that parses wire-format
// date and time strings. Everything downstream consumes civil values, so no
// other code path ever touches a timezone-sensitive parser — the class of
// off-by-one-day bug where the same stored date renders differently
// depending on the viewer's machine cannot occur.
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"camphq/internal/domain/civil"
)

// Parse errors
var (
	ErrUnparsableDate = errors.New("unrecognized date format")
	ErrUnparsableTime = errors.New("unrecognized time format")
)

// ParseDate converts a wire date string into a civil.Date. Accepted formats:
//
//	YYYY-MM-DD
//	YYYY-MM-DDTHH:MM:SS[.fff][Z|±HH:MM]   (any ISO-8601 timestamp)
//
// For timestamps the calendar-day fields are taken exactly as written — the
// offset is never applied. A session stored as 2025-06-10T23:00:00Z is
// June 10 for every viewer, never June 9 or June 11.
// PRE: none
// POST: Returns a valid Date, or ErrUnparsableDate/civil.ErrInvalidDate;
// never substitutes a default date on failure
func ParseDate(s string) (civil.Date, error) {
	datePart := s
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		datePart = s[:i]
		if !looksLikeClock(s[i+1:]) {
			return civil.Date{}, fmt.Errorf("%w: %q", ErrUnparsableDate, s)
		}
	}
	if len(datePart) != 10 || datePart[4] != '-' || datePart[7] != '-' {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrUnparsableDate, s)
	}
	year, ok1 := atoiDigits(datePart[0:4])
	month, ok2 := atoiDigits(datePart[5:7])
	day, ok3 := atoiDigits(datePart[8:10])
	if !ok1 || !ok2 || !ok3 {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrUnparsableDate, s)
	}
	d, err := civil.NewDate(year, month, day)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return d, nil
}

// ParseTimeOfDay converts a wire time string (HH:MM or HH:MM:SS) into a
// civil.TimeOfDay. Seconds, when present, are ignored.
// PRE: none
// POST: Returns a valid TimeOfDay, or ErrUnparsableTime/civil.ErrInvalidTime
func ParseTimeOfDay(s string) (civil.TimeOfDay, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return civil.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	if len(fields[0]) != 2 || len(fields[1]) != 2 {
		return civil.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	hour, ok1 := atoiDigits(fields[0])
	minute, ok2 := atoiDigits(fields[1])
	if !ok1 || !ok2 {
		return civil.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	t, err := civil.NewTimeOfDay(hour, minute)
	if err != nil {
		return civil.TimeOfDay{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return t, nil
}

// looksLikeClock reports whether the portion after 'T' opens with HH:MM.
// The rest (seconds, fraction, offset) is deliberately not interpreted —
// only the written calendar day matters to this module.
func looksLikeClock(s string) bool {
	if len(s) < 5 || s[2] != ':' {
		return false
	}
	_, ok1 := atoiDigits(s[0:2])
	_, ok2 := atoiDigits(s[3:5])
	return ok1 && ok2
}

// atoiDigits parses an all-digit string; unlike strconv.Atoi it rejects
// signs and whitespace.
func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
