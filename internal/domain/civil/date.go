package civil

import (
	"errors"
	"fmt"
)

// Weekday constants (0 = Sunday), matching the backend's day-of-week encoding.
const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayNames maps weekday numbers to display names.
var WeekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Domain errors
var (
	ErrInvalidDate = errors.New("invalid calendar date")
)

// Date is a timezone-free calendar day. Two Dates are equal iff all three
// fields match; ordering is lexicographic (year, month, day). A Date carries
// no time-of-day and is never converted through a time zone — the same Date
// means the same calendar day on every machine.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// NewDate constructs a Date, rejecting dates that do not exist in the
// proleptic Gregorian calendar.
// PRE: none
// POST: Returns a valid Date, or ErrInvalidDate (wrapped with detail)
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate checks that the Date exists in the proleptic Gregorian calendar.
// PRE: none
// POST: Returns nil if valid, ErrInvalidDate otherwise
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: %04d-%02d has no day %d", ErrInvalidDate, d.Year, d.Month, d.Day)
	}
	return nil
}

// IsZero returns true for the zero value.
// INVARIANT: Date fields are not mutated
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the Date as YYYY-MM-DD.
// INVARIANT: Date fields are not mutated
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText formats the Date as YYYY-MM-DD for JSON and text encoding.
// Output only: there is deliberately no UnmarshalText — wire strings enter
// the domain through the ingest adapter alone.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Compare returns -1, 0 or 1 ordering two Dates lexicographically.
// INVARIANT: Date fields are not mutated
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// Before returns true if d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After returns true if d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// AddDays returns the Date n days later (n may be negative), rolling over
// month, year and leap boundaries.
// PRE: d is a valid Date
// POST: Returns a new valid Date; d is not mutated
func (d Date) AddDays(n int) Date {
	return fromEpochDays(d.epochDays() + n)
}

// Weekday returns the day of week, 0 = Sunday through 6 = Saturday, computed
// purely from the date fields — no clock, no time zone.
// PRE: d is a valid Date
// INVARIANT: Date fields are not mutated
func (d Date) Weekday() int {
	// 1970-01-01 was a Thursday (4).
	w := (d.epochDays() + 4) % 7
	if w < 0 {
		w += 7
	}
	return w
}

// epochDays converts the Date to a day count since 1970-01-01 using Howard
// Hinnant's days-from-civil algorithm. Exact over the full proleptic
// Gregorian calendar, including negative years.
func (d Date) epochDays() int {
	y := d.Year
	if d.Month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	m := d.Month
	var doy int
	if m > 2 {
		doy = (153*(m-3)+2)/5 + d.Day - 1
	} else {
		doy = (153*(m+9)+2)/5 + d.Day - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

// fromEpochDays is the inverse of epochDays (civil-from-days).
func fromEpochDays(days int) Date {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	day := doy - (153*mp+2)/5 + 1
	var month int
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}
	return Date{Year: y, Month: month, Day: day}
}

// isLeapYear reports whether year is a Gregorian leap year.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
