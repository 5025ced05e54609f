package hourly

import (
	"strings"
	"testing"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func curve(category string, means ...float64) models.CategoryCurve {
	c := models.CategoryCurve{Category: category}
	for h, v := range means {
		c.Points = append(c.Points, models.HourlyPoint{Hour: h, Mean: v})
	}
	return c
}

func newModel(t *testing.T, report *models.Report) *Model {
	t.Helper()
	state := app.NewState()
	state.SetReport(report)
	m := New(state)
	m.SetSize(120, 80)
	return m
}

func TestModel_Init(t *testing.T) {
	if New(app.NewState()).Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestModel_View(t *testing.T) {
	report := &models.Report{
		DayCount:     10,
		HourCount:    240,
		Capabilities: models.Capabilities{HourlyDayCategory: true},
		Hourly: []models.CategoryCurve{
			curve("weekday", 10, 50, 30),
			curve("weekend", 5, 8, 40),
		},
	}
	view := newModel(t, report).View()

	for _, want := range []string{"Hourly Curves", "weekday", "weekend", "01:00-02:00", "02:00-03:00", "240 hourly rows", "Intensity"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_ViewUnsupported(t *testing.T) {
	view := newModel(t, &models.Report{DayCount: 3}).View()
	if !strings.Contains(view, "no day category column") {
		t.Error("missing capability should render a notice")
	}
}

func TestModel_ViewNoRows(t *testing.T) {
	report := &models.Report{Capabilities: models.Capabilities{HourlyDayCategory: true}}
	view := newModel(t, report).View()
	if !strings.Contains(view, "No hourly rows") {
		t.Error("empty curves should render a placeholder")
	}
}

func TestCurveSeries(t *testing.T) {
	series := curveSeries([]models.CategoryCurve{curve("a", 1), curve("b", 2)})
	if len(series) != 2 || len(series[0].Values) != 24 {
		t.Fatalf("unexpected series %+v", series)
	}
	if series[0].Color == series[1].Color {
		t.Error("series should use distinct colors")
	}
}
