// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const noData = "No data available"

// Series is one named line of a multi-series chart.
type Series struct {
	Label  string
	Values []float64
	Color  lipgloss.Color
}

func chartSize(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// hasData reports whether values holds at least one non-NaN point.
func hasData(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// RenderLineChart creates a single-series ASCII line chart. NaN values are
// drawn as gaps.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if !hasData(data) {
		return styles.HelpStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	return asciigraph.Plot(padSingle(data),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// RenderMultiLineChart plots several series on shared axes. NaN values and
// the tail of shorter series are drawn as gaps. Series without any point are
// left out.
func RenderMultiLineChart(series []Series, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		if hasData(s.Values) {
			maxLen = max(maxLen, len(s.Values))
		}
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	var data [][]float64
	var colors []asciigraph.AnsiColor
	for _, s := range series {
		if !hasData(s.Values) {
			continue
		}
		values := make([]float64, maxLen)
		for j := range values {
			values[j] = math.NaN()
		}
		copy(values, s.Values)
		data = append(data, padSingle(values))
		colors = append(colors, ansiColor(s.Color))
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// padSingle repeats a lone point so it renders as a flat line.
func padSingle(data []float64) []float64 {
	if len(data) == 1 {
		return []float64{data[0], data[0]}
	}
	return data
}

// ansiColor converts a 256-color lipgloss color to its asciigraph equivalent.
func ansiColor(c lipgloss.Color) asciigraph.AnsiColor {
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return asciigraph.Default
	}
	return asciigraph.AnsiColor(n)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := max(width-maxLabelLen-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%*s │%s %.0f", maxLabelLen, label, bar, v))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// heatmapAbsent marks an hour with no rows.
const heatmapAbsent = "·"

// RenderHourlyHeatmap renders 24 hourly values as a one-line intensity strip.
// NaN hours are marked as absent.
func RenderHourlyHeatmap(values []float64) string {
	hours := make([]float64, 24)
	copy(hours, values)

	maxVal := 0.0
	for _, v := range hours {
		if !math.IsNaN(v) {
			maxVal = max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	heat := []lipgloss.Color{styles.Subtle, styles.Success, styles.Warning, styles.Error}
	absent := lipgloss.NewStyle().Foreground(styles.Subtle).Render(heatmapAbsent)

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range hours {
		if math.IsNaN(v) {
			result.WriteString(absent)
			if i == 11 {
				result.WriteString(" ")
			}
			continue
		}

		intensity := int((v / maxVal) * float64(len(HeatmapBlocks)-1))
		intensity = min(max(intensity, 0), len(HeatmapBlocks)-1)

		style := lipgloss.NewStyle().Foreground(heat[intensity])
		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))

		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	step := max(float64(len(values))/float64(width), 1)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		level := int((val / maxVal) * float64(len(sparkChars)-1))
		result.WriteRune(sparkChars[min(max(level, 0), len(sparkChars)-1)])
	}

	return result.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendFor builds legend entries matching series.
func LegendFor(series []Series) []LegendItem {
	items := make([]LegendItem, len(series))
	for i, s := range series {
		items[i] = LegendItem{Label: s.Label, Color: s.Color}
	}
	return items
}
