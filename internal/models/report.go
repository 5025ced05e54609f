package models

import (
	"fmt"
	"time"
)

// Report bundles every derived view for one filter selection.
// It is built in one pass and never mutated afterwards.
type Report struct {
	Requested    DateRange    `json:"requested"`
	Range        DateRange    `json:"range"`
	FullSpan     bool         `json:"full_span"`
	Capabilities Capabilities `json:"capabilities"`
	DayCount     int          `json:"day_count"`
	HourCount    int          `json:"hour_count"`
	Total        int64        `json:"total"`

	// Summary is nil when the filtered set is empty.
	Summary    *SummaryStats   `json:"summary,omitempty"`
	Change     PeriodChange    `json:"change"`
	Monthly    []MonthlyTotal  `json:"monthly"`
	Hourly     []CategoryCurve `json:"hourly,omitempty"`
	Categories []CategoryStat  `json:"categories,omitempty"`
	UserTypes  []UserTypeMeans `json:"user_types,omitempty"`
	Seasonal   []SeasonalPoint `json:"seasonal"`

	GeneratedAt time.Time `json:"generated_at"`
}

// IsEmpty reports whether the filter selected no daily rows.
func (r *Report) IsEmpty() bool {
	return r == nil || r.DayCount == 0
}

// TotalString formats the running total.
func (r *Report) TotalString() string {
	if r == nil {
		return "0"
	}
	return fmt.Sprintf("%d", r.Total)
}

// RangeLabel describes the effective selection for headers.
func (r *Report) RangeLabel() string {
	if r == nil {
		return ""
	}
	if r.FullSpan {
		return fmt.Sprintf("%s (full dataset)", r.Range.String())
	}
	return r.Range.String()
}
