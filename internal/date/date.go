// Package date provides a calendar-day value type. Days cross the API
// boundary as ISO "yyyy-mm-dd" strings but are compared and iterated as
// structured values, never as raw strings.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical wire representation of a day.
const Format = "2006-01-02"

// Day represents a calendar day with no time component.
type Day struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Day for the given year, month, and day.
// Out-of-range values roll over the way time.Date does.
func New(year int, month time.Month, day int) Day {
	d := Day{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Parse parses a Day from its canonical "yyyy-mm-dd" form.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, want format %q: %w", s, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// literals.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Today returns the current day in local time.
func Today() Day { return NewFromTime(time.Now()) }

// NewFromTime truncates t to its calendar day.
func NewFromTime(t time.Time) Day { return New(t.Date()) }

func (d Day) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of d.
func (d Day) Year() int { return d.y }

// Month returns the month of d.
func (d Day) Month() time.Month { return d.m }

// DayOfMonth returns the day of the month of d.
func (d Day) DayOfMonth() int { return d.d }

// Add returns d shifted by n days (n may be negative).
func (d Day) Add(n int) Day { return New(d.y, d.m, d.d+n) }

// Before reports whether d falls before x.
func (d Day) Before(x Day) bool { return d.time().Before(x.time()) }

// After reports whether d falls after x.
func (d Day) After(x Day) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool { return d == Day{} }

// In reports whether d lies in the inclusive range [start, end].
func (d Day) In(start, end Day) bool { return !d.Before(start) && !d.After(end) }

// String formats the day in canonical form.
func (d Day) String() string { return d.time().Format(Format) }

// MonthStart returns the first day of d's month.
func (d Day) MonthStart() Day { return New(d.y, d.m, 1) }

// MonthEnd returns the last day of d's month.
func (d Day) MonthEnd() Day { return New(d.y, d.m+1, 0) }

// DaysInMonth returns the calendar length of d's month (28-31).
func (d Day) DaysInMonth() int { return d.MonthEnd().d }

// MarshalJSON encodes the day as a canonical string.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a day from a canonical string.
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
