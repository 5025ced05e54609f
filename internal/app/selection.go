package app

import (
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// RangeAction is an edit applied to the selected date range.
type RangeAction int

const (
	// RangeStartBack moves the start one day earlier.
	RangeStartBack RangeAction = iota
	// RangeStartForward moves the start one day later.
	RangeStartForward
	// RangeEndBack moves the end one day earlier.
	RangeEndBack
	// RangeEndForward moves the end one day later.
	RangeEndForward
	// RangeShiftBack moves the window back by its own length.
	RangeShiftBack
	// RangeShiftForward moves the window forward by its own length.
	RangeShiftForward
	// RangeReset selects the full dataset span.
	RangeReset
	// RangeToggleDay switches between range and single-day selection.
	RangeToggleDay
)

// String returns a short description used in logs and toasts.
func (a RangeAction) String() string {
	switch a {
	case RangeStartBack:
		return "start -1d"
	case RangeStartForward:
		return "start +1d"
	case RangeEndBack:
		return "end -1d"
	case RangeEndForward:
		return "end +1d"
	case RangeShiftBack:
		return "shift back"
	case RangeShiftForward:
		return "shift forward"
	case RangeReset:
		return "reset"
	case RangeToggleDay:
		return "toggle day"
	default:
		return "unknown"
	}
}

// ApplyRangeAction returns r edited by a and kept inside bounds. changed is
// false when the edit had no effect, for example when a bound is already
// reached. Nothing changes while bounds is unset.
func ApplyRangeAction(r, bounds models.DateRange, a RangeAction) (next models.DateRange, changed bool) {
	if bounds.Start.IsZero() || bounds.End.IsZero() {
		return r, false
	}
	if r.IsZero() {
		r = bounds
	}

	next = r
	switch a {
	case RangeStartBack:
		next.Start = r.Start.AddDate(0, 0, -1)
	case RangeStartForward:
		next.Start = r.Start.AddDate(0, 0, 1)
		if !next.SingleDay && next.Start.After(next.End) {
			next.Start = next.End
		}
	case RangeEndBack:
		if next.SingleDay {
			next.Start = r.Start.AddDate(0, 0, -1)
			break
		}
		next.End = r.End.AddDate(0, 0, -1)
		if next.End.Before(next.Start) {
			next.End = next.Start
		}
	case RangeEndForward:
		if next.SingleDay {
			next.Start = r.Start.AddDate(0, 0, 1)
			break
		}
		next.End = r.End.AddDate(0, 0, 1)
	case RangeShiftBack:
		next = shiftWithin(r, bounds, -1)
	case RangeShiftForward:
		next = shiftWithin(r, bounds, 1)
	case RangeReset:
		next = models.NewDateRange(bounds.Start, bounds.End)
	case RangeToggleDay:
		next = toggleSingleDay(r, bounds)
	}

	next = next.Clamp(bounds)
	return next, next != r
}

// shiftWithin moves r by its own length in direction dir. A window that
// would leave bounds stops at the bound with its length intact.
func shiftWithin(r, bounds models.DateRange, dir int) models.DateRange {
	if r.SingleDay {
		r.Start = r.Start.AddDate(0, 0, dir)
		return r
	}

	days := r.Days()
	if days == 0 {
		return r
	}
	next := r.Shift(dir * days)

	switch {
	case next.Start.Before(bounds.Start):
		next.Start = bounds.Start
		next.End = bounds.Start.AddDate(0, 0, days-1)
	case next.End.After(bounds.End):
		next.End = bounds.End
		next.Start = bounds.End.AddDate(0, 0, -(days - 1))
	}
	return next
}

func toggleSingleDay(r, bounds models.DateRange) models.DateRange {
	if !r.SingleDay {
		r.SingleDay = true
		return r
	}

	r.SingleDay = false
	if !r.End.After(r.Start) {
		r.End = bounds.End
	}
	return r
}
