// Package models defines data structures and domain types.
package models

import "time"

// Season is the categorical season code used by the source tables (1..4).
type Season int

const (
	// SeasonSpring is season code 1.
	SeasonSpring Season = iota + 1
	// SeasonSummer is season code 2.
	SeasonSummer
	// SeasonFall is season code 3.
	SeasonFall
	// SeasonWinter is season code 4.
	SeasonWinter
)

// Seasons lists every season in canonical display order.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// String returns the display label for the season.
func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonFall:
		return "Fall"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four known season codes.
func (s Season) Valid() bool {
	return s >= SeasonSpring && s <= SeasonWinter
}

// BaseYear is the calendar year denoted by year code 0.
const BaseYear = 2011

// YearLabel maps a binary year code to its calendar year.
func YearLabel(code int) int {
	return BaseYear + code
}

// DayRecord is one row of the daily table.
type DayRecord struct {
	Date        time.Time `json:"date"`
	Season      Season    `json:"season"`
	YearCode    int       `json:"yr"`
	DayCategory string    `json:"day_category,omitempty"`
	Casual      int       `json:"casual"`
	Registered  int       `json:"registered"`
	Total       int       `json:"cnt"`
}

// HourRecord is one row of the hourly table.
type HourRecord struct {
	DayRecord
	Hour int `json:"hr"`
}

// Capabilities records which optional columns the loaded tables carry.
// It is decided once at load time.
type Capabilities struct {
	DailyDayCategory  bool `json:"daily_day_category"`
	HourlyDayCategory bool `json:"hourly_day_category"`
}

// HasHourlyTrend reports whether the hourly-by-category view can be built.
func (c Capabilities) HasHourlyTrend() bool {
	return c.HourlyDayCategory
}

// HasCategoryViews reports whether the per-category daily views can be built.
func (c Capabilities) HasCategoryViews() bool {
	return c.DailyDayCategory
}
