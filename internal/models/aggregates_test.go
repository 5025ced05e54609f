package models

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestSeason_String(t *testing.T) {
	tests := []struct {
		s    Season
		want string
	}{
		{SeasonSpring, "Spring"},
		{SeasonSummer, "Summer"},
		{SeasonFall, "Fall"},
		{SeasonWinter, "Winter"},
		{Season(0), "Unknown"},
		{Season(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Season(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if Season(5).Valid() || !SeasonFall.Valid() {
		t.Error("Valid() mismatch")
	}
}

func TestYearLabel(t *testing.T) {
	if YearLabel(0) != 2011 || YearLabel(1) != 2012 {
		t.Errorf("YearLabel = %d/%d, want 2011/2012", YearLabel(0), YearLabel(1))
	}
}

func TestSummaryStats_Strings(t *testing.T) {
	s := SummaryStats{
		Mean:    4504.348,
		Max:     8714,
		MaxDate: date("2012-09-15"),
		Min:     22,
		MinDate: date("2012-10-29"),
	}
	if got := s.MeanString(); got != "4504" {
		t.Errorf("MeanString() = %q, want 4504", got)
	}
	if got := s.MaxString(); got != "8714 (2012-09-15)" {
		t.Errorf("MaxString() = %q", got)
	}
	if got := s.MinString(); got != "22 (2012-10-29)" {
		t.Errorf("MinString() = %q", got)
	}
}

func TestPeriodChange_PercentString(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "0.00%"},
		{12.345, "12.35%"},
		{-50, "-50.00%"},
	}
	for _, tt := range tests {
		p := PeriodChange{Percent: tt.pct}
		if got := p.PercentString(); got != tt.want {
			t.Errorf("PercentString(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestCategoryCurve_PeakAndSeries(t *testing.T) {
	c := CategoryCurve{
		Category: "weekday",
		Points: []HourlyPoint{
			{Hour: 7, Mean: 300},
			{Hour: 8, Mean: 450},
			{Hour: 17, Mean: 450},
		},
	}
	hour, mean, ok := c.Peak()
	if !ok || hour != 8 || mean != 450 {
		t.Errorf("Peak() = %d, %v, %v; want 8, 450, true", hour, mean, ok)
	}

	series := c.Series()
	if len(series) != 24 {
		t.Fatalf("len(Series()) = %d, want 24", len(series))
	}
	if series[17] != 450 || series[7] != 300 {
		t.Errorf("Series() = %v", series)
	}
	if !math.IsNaN(series[0]) || !math.IsNaN(series[23]) {
		t.Errorf("hours without rows should be NaN, got %v", series)
	}

	if _, _, ok := (CategoryCurve{}).Peak(); ok {
		t.Error("Peak() on empty curve should report !ok")
	}
}

func TestUserTypeMeans_RegisteredShare(t *testing.T) {
	u := UserTypeMeans{Casual: 25, Registered: 75}
	if got := u.RegisteredShare(); got != 0.75 {
		t.Errorf("RegisteredShare() = %v, want 0.75", got)
	}
	if got := (UserTypeMeans{}).RegisteredShare(); got != 0 {
		t.Errorf("RegisteredShare() on zero = %v, want 0", got)
	}
}

func TestReport_Helpers(t *testing.T) {
	var nilReport *Report
	if !nilReport.IsEmpty() {
		t.Error("nil report should be empty")
	}

	r := &Report{
		Range:    NewDateRange(date("2011-01-01"), date("2012-12-31")),
		FullSpan: true,
		DayCount: 731,
		Total:    3292679,
	}
	if r.IsEmpty() {
		t.Error("report with rows should not be empty")
	}
	if got := r.TotalString(); got != "3292679" {
		t.Errorf("TotalString() = %q", got)
	}
	if got := r.RangeLabel(); got != "2011-01-01 → 2012-12-31 (full dataset)" {
		t.Errorf("RangeLabel() = %q", got)
	}
}

func TestErrors_Wrap(t *testing.T) {
	err := fmt.Errorf("failed to load day.csv: %w", ErrDataUnavailable)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Error("wrapped error should match ErrDataUnavailable")
	}
	if errors.Is(err, ErrEmptySet) {
		t.Error("wrapped error should not match ErrEmptySet")
	}
}
