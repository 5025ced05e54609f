package dataset

import (
	"errors"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// BuildReport filters ds by r and computes every derived view in one pass.
// Views gated by a missing optional column are left nil. An empty selection
// produces a report without summary statistics rather than an error.
func BuildReport(ds *Dataset, r models.DateRange) (*models.Report, error) {
	if ds == nil {
		return nil, models.ErrDataUnavailable
	}

	view := ds.Filter(r)
	return buildFromView(ds, view)
}

func buildFromView(ds *Dataset, view View) (*models.Report, error) {
	caps := ds.Capabilities()

	report := &models.Report{
		Requested:    view.Requested,
		Range:        view.Range,
		FullSpan:     view.FullSpan,
		Capabilities: caps,
		DayCount:     len(view.Days),
		HourCount:    len(view.Hours),
		Total:        Total(view.Days),
		Change:       PeriodOverPeriodChange(view.Days, ds.days, view.Range),
		Monthly:      MonthlyTotals(view.Days),
		Seasonal:     SeasonalTrend(view.Days),
		GeneratedAt:  time.Now(),
	}

	summary, err := Summarize(view.Days)
	switch {
	case err == nil:
		report.Summary = &summary
	case !errors.Is(err, models.ErrEmptySet):
		return nil, err
	}

	if caps.HasHourlyTrend() {
		report.Hourly = HourlyTrendByCategory(view.Hours)
	}
	if caps.HasCategoryViews() {
		report.Categories = CategoryStats(view.Days)
		report.UserTypes = UserTypeByCategory(view.Days)
	}

	return report, nil
}

// ReportWithView is like BuildReport but also returns the filtered rows, which
// exporters need alongside the aggregates.
func ReportWithView(ds *Dataset, r models.DateRange) (*models.Report, View, error) {
	if ds == nil {
		return nil, View{}, models.ErrDataUnavailable
	}
	view := ds.Filter(r)
	report, err := buildFromView(ds, view)
	return report, view, err
}
