package models

import (
	"fmt"
	"math"
	"time"
)

// MonthlyTotal is the summed rental count for one calendar month.
type MonthlyTotal struct {
	Month string    `json:"month"` // YYYY-MM
	Start time.Time `json:"start"`
	Total int64     `json:"total"`
}

// SummaryStats holds mean and extrema of daily totals over a filtered set.
type SummaryStats struct {
	Count   int       `json:"count"`
	Mean    float64   `json:"mean"`
	Max     int       `json:"max"`
	MaxDate time.Time `json:"max_date"`
	Min     int       `json:"min"`
	MinDate time.Time `json:"min_date"`
}

// MeanString formats the mean rounded to a whole number of rentals.
func (s SummaryStats) MeanString() string {
	return fmt.Sprintf("%.0f", s.Mean)
}

// MaxString formats the maximum with the date it occurred on.
func (s SummaryStats) MaxString() string {
	return fmt.Sprintf("%d (%s)", s.Max, s.MaxDate.Format(DateLayout))
}

// MinString formats the minimum with the date it occurred on.
func (s SummaryStats) MinString() string {
	return fmt.Sprintf("%d (%s)", s.Min, s.MinDate.Format(DateLayout))
}

// PeriodChange compares the current range with the preceding window of equal length.
type PeriodChange struct {
	Current       int64     `json:"current"`
	Previous      int64     `json:"previous"`
	Percent       float64   `json:"percent"`
	PreviousRange DateRange `json:"previous_range"`
}

// PercentString formats the change with two decimals.
func (p PeriodChange) PercentString() string {
	return fmt.Sprintf("%.2f%%", p.Percent)
}

// HourlyPoint is the mean count for one hour of the day.
type HourlyPoint struct {
	Hour int     `json:"hour"`
	Mean float64 `json:"mean"`
}

// CategoryCurve is the hourly mean curve of one day category.
type CategoryCurve struct {
	Category string        `json:"category"`
	Points   []HourlyPoint `json:"points"`
}

// Peak returns the hour with the highest mean. ok is false for an empty curve.
func (c CategoryCurve) Peak() (hour int, mean float64, ok bool) {
	for i, p := range c.Points {
		if i == 0 || p.Mean > mean {
			hour, mean = p.Hour, p.Mean
		}
	}
	return hour, mean, len(c.Points) > 0
}

// Series returns a 24-slot slice of means indexed by hour. Hours with no rows
// are NaN so charts leave a gap rather than plotting zero rentals.
func (c CategoryCurve) Series() []float64 {
	out := make([]float64, 24)
	for i := range out {
		out[i] = math.NaN()
	}
	for _, p := range c.Points {
		if p.Hour >= 0 && p.Hour < 24 {
			out[p.Hour] = p.Mean
		}
	}
	return out
}

// CategoryStat is the mean/min/max of daily totals for one day category.
type CategoryStat struct {
	Category string  `json:"category"`
	Days     int     `json:"days"`
	Mean     float64 `json:"mean"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
}

// UserTypeMeans is the mean casual and registered count for one day category.
type UserTypeMeans struct {
	Category   string  `json:"category"`
	Casual     float64 `json:"casual"`
	Registered float64 `json:"registered"`
}

// RegisteredShare returns the registered fraction of the combined means (0..1).
func (u UserTypeMeans) RegisteredShare() float64 {
	total := u.Casual + u.Registered
	if total == 0 {
		return 0
	}
	return u.Registered / total
}

// SeasonalPoint is the mean daily total for one (season, year) pair.
type SeasonalPoint struct {
	Season   Season  `json:"season"`
	YearCode int     `json:"yr"`
	Year     int     `json:"year"`
	Mean     float64 `json:"mean"`
}

// Label returns the season display label.
func (p SeasonalPoint) Label() string {
	return p.Season.String()
}
