package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Loading rentals...")

	view := s.View()
	if !strings.Contains(view, "Loading rentals...") {
		t.Error("View should include the label")
	}
	if !strings.ContainsAny(view, strings.Join(Wheel.Frames, "")) {
		t.Error("View should draw a wheel frame")
	}
	if lipgloss.Height(view) != 1 {
		t.Errorf("height without detail = %d, want 1", lipgloss.Height(view))
	}

	s.SetDetail("731 days, 17379 hourly rows read")
	view = s.View()
	if !strings.Contains(view, "17379 hourly rows") {
		t.Error("View should include the detail line")
	}
	if lipgloss.Height(view) != 2 {
		t.Errorf("height with detail = %d, want 2", lipgloss.Height(view))
	}

	s.SetDetail("")
	if strings.Contains(s.View(), "hourly rows") {
		t.Error("empty detail should hide the line")
	}

	if s.Init() == nil {
		t.Error("Init should return command")
	}
	if _, cmd := s.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered should include the label")
	}
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func TestRenderLineChart(t *testing.T) {
	if got := RenderLineChart(nil, 20, 5, ""); !strings.Contains(got, noData) {
		t.Errorf("empty data should render placeholder, got %q", got)
	}

	s := RenderLineChart([]float64{100, 200, 50}, 20, 5, "monthly")
	if !strings.Contains(s, "monthly") {
		t.Error("chart should include caption")
	}
	if !strings.Contains(s, "200") {
		t.Error("chart axis should include the maximum")
	}

	if RenderLineChart([]float64{42}, 20, 5, "") == "" {
		t.Error("single point should still render")
	}
}

func TestRenderMultiLineChart(t *testing.T) {
	if got := RenderMultiLineChart(nil, 20, 5, ""); !strings.Contains(got, noData) {
		t.Error("no series should render placeholder")
	}

	series := []Series{
		{Label: "weekday", Values: []float64{1, 5, 3}, Color: lipgloss.Color("42")},
		{Label: "weekend", Values: []float64{2, 2}, Color: lipgloss.Color("214")},
	}
	s := RenderMultiLineChart(series, 30, 6, "hourly")
	if !strings.Contains(s, "hourly") {
		t.Error("chart should include caption")
	}
}

func TestAnsiColor(t *testing.T) {
	tests := []struct {
		in   lipgloss.Color
		want asciigraph.AnsiColor
	}{
		{"42", asciigraph.AnsiColor(42)},
		{"#ff0000", asciigraph.Default},
		{"300", asciigraph.Default},
	}
	for _, tt := range tests {
		if got := ansiColor(tt.in); got != tt.want {
			t.Errorf("ansiColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderBarChart(t *testing.T) {
	if RenderBarChart(nil, nil, 40) != "" {
		t.Error("empty values should render nothing")
	}

	s := RenderBarChart([]float64{10, 20}, []string{"Spring", "Summer"}, 40)
	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "Summer") || !strings.HasSuffix(lines[1], "20") {
		t.Errorf("unexpected line %q", lines[1])
	}
	if strings.Count(lines[0], "█") >= strings.Count(lines[1], "█") {
		t.Error("smaller value should have a shorter bar")
	}
}

func TestRenderHourlyHeatmap(t *testing.T) {
	s := RenderHourlyHeatmap([]float64{1, 2, 3})
	if !strings.HasPrefix(s, "00 ") || !strings.HasSuffix(s, " 23") {
		t.Errorf("heatmap should be labelled with hours, got %q", s)
	}
	blocks := 0
	for _, r := range s {
		if strings.ContainsRune(string(HeatmapBlocks), r) {
			blocks++
		}
	}
	if blocks != 24 {
		t.Errorf("expected 24 cells, got %d", blocks)
	}
}

func TestRenderSparkline(t *testing.T) {
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty values should render nothing")
	}
	s := RenderSparkline([]float64{0, 5, 10}, 10)
	if len([]rune(s)) != 3 {
		t.Errorf("sparkline length = %d, want 3", len([]rune(s)))
	}
	if []rune(s)[2] != '█' {
		t.Error("maximum should render as a full block")
	}
}

func TestRenderLegend(t *testing.T) {
	series := []Series{
		{Label: "A", Color: lipgloss.Color("1")},
		{Label: "B", Color: lipgloss.Color("2")},
	}
	s := RenderLegend(LegendFor(series))
	if !strings.Contains(s, "A") || !strings.Contains(s, "B") {
		t.Error("legend should include every label")
	}
}

func TestRenderRangeBar(t *testing.T) {
	stat := models.CategoryStat{Category: "weekday", Min: 20, Mean: 50, Max: 80}
	s := RenderRangeBar(stat, 100, 11)

	if lipgloss.Width(s) != 11 {
		t.Errorf("width = %d, want 11", lipgloss.Width(s))
	}
	for _, marker := range []string{"├", "●", "┤"} {
		if !strings.Contains(s, marker) {
			t.Errorf("range bar should contain %q: %q", marker, s)
		}
	}
	if strings.Index(s, "├") > strings.Index(s, "●") || strings.Index(s, "●") > strings.Index(s, "┤") {
		t.Error("markers should be ordered min, mean, max")
	}
}

func TestShareBar(t *testing.T) {
	bar := NewShareBar()
	s := bar.View(models.UserTypeMeans{Category: "weekend", Casual: 25, Registered: 75}, 80)

	if !strings.Contains(s, "weekend") {
		t.Error("share bar should include the category")
	}
	if !strings.Contains(s, "75% reg") {
		t.Errorf("share bar should show the registered share: %q", s)
	}
	if !strings.Contains(ShareLegend(), "casual") {
		t.Error("legend should name both user types")
	}
}

func TestNewViewport(t *testing.T) {
	vp := NewViewport()
	if vp.KeyMap.HalfPageDown.Keys()[0] != "ctrl+d" {
		t.Error("half page down should not use a bare rune")
	}
	if vp.KeyMap.Left.Enabled() || vp.KeyMap.Right.Enabled() {
		t.Error("horizontal scrolling should be disabled")
	}
	if len(ScrollKeys(vp)) != 4 {
		t.Error("expected four scroll bindings")
	}
}

func TestRenderCard(t *testing.T) {
	s := RenderCard("◈", "Totals", []string{"row one", RenderPlaceholder("nothing here")}, 50)
	for _, want := range []string{"Totals", "row one", "nothing here"} {
		if !strings.Contains(s, want) {
			t.Errorf("card should contain %q", want)
		}
	}
	if CardWidth(10) != 40 || CardWidth(100) != 94 {
		t.Error("CardWidth should subtract padding with a floor of 40")
	}
	if got := Indent("a\nb"); len(got) != 2 || got[1] != "  b" {
		t.Errorf("Indent = %q", got)
	}
}

func TestCharts_NaNGaps(t *testing.T) {
	nan := math.NaN()

	if got := RenderLineChart([]float64{nan, nan}, 20, 5, ""); !strings.Contains(got, noData) {
		t.Error("all-NaN data should render placeholder")
	}
	if got := RenderLineChart([]float64{nan, 10, 20, nan}, 20, 5, "gaps"); !strings.Contains(got, "gaps") {
		t.Error("partial data should still render")
	}

	series := []Series{
		{Label: "empty", Values: []float64{nan, nan}, Color: lipgloss.Color("1")},
	}
	if got := RenderMultiLineChart(series, 20, 5, ""); !strings.Contains(got, noData) {
		t.Error("series without points should render placeholder")
	}
	series = append(series, Series{Label: "spring only", Values: []float64{100, nan, nan, nan}, Color: lipgloss.Color("2")})
	if got := RenderMultiLineChart(series, 20, 5, "seasons"); !strings.Contains(got, "seasons") {
		t.Error("chart should render the series that has data")
	}

	hours := make([]float64, 24)
	for i := range hours {
		hours[i] = nan
	}
	hours[8], hours[17] = 10, 20
	s := RenderHourlyHeatmap(hours)
	if n := strings.Count(s, heatmapAbsent); n != 22 {
		t.Errorf("expected 22 absent hours, got %d in %q", n, s)
	}
	if !strings.ContainsRune(s, '█') {
		t.Error("the busiest present hour should render at full intensity")
	}
}
