package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for input and display.
const DateLayout = "2006-01-02"

var dateFormats = []string{
	DateLayout,
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses an ISO-like date string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar dates.
//
// A range is degenerate when a bound is missing, when it collapses to a
// single date, or when its bounds are reversed. Degenerate ranges select the
// full dataset. SingleDay opts into filtering to Start alone.
type DateRange struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	SingleDay bool      `json:"single_day,omitempty"`
}

// NewDateRange returns the range [start, end] normalized to calendar dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// SingleDate returns a range selecting exactly one day.
func SingleDate(d time.Time) DateRange {
	d = Day(d)
	return DateRange{Start: d, End: d, SingleDay: true}
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// IsDegenerate reports whether the range falls back to the full dataset.
func (r DateRange) IsDegenerate() bool {
	if r.SingleDay {
		return r.Start.IsZero()
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return true
	}
	return !r.Start.Before(r.End)
}

// Effective returns the bounds actually used for filtering. For single-day
// ranges both bounds are Start.
func (r DateRange) Effective() DateRange {
	if r.SingleDay {
		return DateRange{Start: r.Start, End: r.Start, SingleDay: true}
	}
	return r
}

// Contains reports whether t falls within the range, inclusive.
func (r DateRange) Contains(t time.Time) bool {
	e := r.Effective()
	return !t.Before(e.Start) && !t.After(e.End)
}

// Days returns the number of calendar days covered, inclusive.
func (r DateRange) Days() int {
	e := r.Effective()
	if e.Start.IsZero() || e.End.IsZero() || e.End.Before(e.Start) {
		return 0
	}
	return int(e.End.Sub(e.Start).Hours()/24) + 1
}

// Previous returns the window of identical length ending the day before Start.
func (r DateRange) Previous() DateRange {
	e := r.Effective()
	days := r.Days()
	return DateRange{
		Start: e.Start.AddDate(0, 0, -days),
		End:   e.Start.AddDate(0, 0, -1),
	}
}

// Shift moves both bounds by the given number of days.
func (r DateRange) Shift(days int) DateRange {
	r.Start = r.Start.AddDate(0, 0, days)
	r.End = r.End.AddDate(0, 0, days)
	return r
}

// Clamp restricts both bounds to lie within bounds.
func (r DateRange) Clamp(bounds DateRange) DateRange {
	clamp := func(t time.Time) time.Time {
		if t.Before(bounds.Start) {
			return bounds.Start
		}
		if t.After(bounds.End) {
			return bounds.End
		}
		return t
	}
	r.Start = clamp(r.Start)
	r.End = clamp(r.End)
	return r
}

// String formats the range for display.
func (r DateRange) String() string {
	if r.SingleDay {
		return r.Start.Format(DateLayout)
	}
	if r.IsZero() {
		return "all dates"
	}
	return fmt.Sprintf("%s → %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}
