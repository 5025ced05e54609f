package hourly

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// View renders the hourly tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	report := m.state.GetReport()

	sections := []string{m.renderTitle(report)}
	switch {
	case !report.Capabilities.HasHourlyTrend():
		sections = append(sections, m.renderUnsupported())
	case len(report.Hourly) == 0:
		sections = append(sections, components.RenderCard("🕐", "Hourly Demand", []string{
			components.RenderPlaceholder("No hourly rows in this range"),
		}, components.CardWidth(m.width)))
	default:
		sections = append(sections,
			m.renderCurves(report.Hourly),
			m.renderHeatmaps(report.Hourly),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(report *models.Report) string {
	title := styles.TitleStyle.Render("Hourly Demand")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %d hourly rows", report.RangeLabel(), report.HourCount))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderUnsupported() string {
	return components.RenderCard("🕐", "Hourly Demand", []string{
		components.RenderPlaceholder("The hourly table has no day category column"),
		"",
		styles.InfoTextStyle.Render("  ╰─▶ Add a day_category column to the hourly CSV to enable this view"),
	}, components.CardWidth(m.width))
}

func curveSeries(curves []models.CategoryCurve) []components.Series {
	series := make([]components.Series, len(curves))
	for i, c := range curves {
		series[i] = components.Series{
			Label:  c.Category,
			Values: c.Series(),
			Color:  styles.SeriesColor(i),
		}
	}
	return series
}

func (m *Model) renderCurves(curves []models.CategoryCurve) string {
	cardWidth := components.CardWidth(m.width)
	series := curveSeries(curves)

	var rows []string
	chart := components.RenderMultiLineChart(series, max(cardWidth-12, 30), 10, "Mean rentals by hour of day")
	rows = append(rows, components.Indent(chart)...)
	rows = append(rows, "", "  "+components.RenderLegend(components.LegendFor(series)), "")

	for i, c := range curves {
		hour, mean, ok := c.Peak()
		if !ok {
			continue
		}
		peak := lipgloss.NewStyle().Bold(true).Foreground(styles.SeriesColor(i)).
			Render(fmt.Sprintf("%02d:00-%02d:00", hour, (hour+1)%24))
		rows = append(rows, fmt.Sprintf("  %-12s peak %s (avg %.0f)", c.Category, peak, mean))
	}

	return components.RenderCard("📈", "Hourly Curves", rows, cardWidth)
}

func (m *Model) renderHeatmaps(curves []models.CategoryCurve) string {
	var rows []string
	for _, c := range curves {
		label := styles.ProgressLabelStyle.Width(14).Render(c.Category)
		rows = append(rows, "  "+label+components.RenderHourlyHeatmap(c.Series()))
	}
	return components.RenderCard("🔥", "Intensity", rows, components.CardWidth(m.width))
}
