package seasonal

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const (
	seasonColWidth = 10
	yearColWidth   = 10
)

// View renders the seasonal tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	report := m.state.GetReport()

	sections := []string{m.renderTitle(report)}
	if len(report.Seasonal) == 0 {
		sections = append(sections, components.RenderCard("🍂", "Seasons", []string{
			components.RenderPlaceholder("No rentals recorded in this range"),
		}, components.CardWidth(m.width)))
	} else {
		grid := newSeasonGrid(report.Seasonal)
		sections = append(sections,
			m.renderChart(grid),
			m.renderTable(grid),
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
	title := styles.TitleStyle.Render("Seasonal Comparison")
	subtitle := styles.HelpStyle.Render(report.RangeLabel())
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// seasonGrid indexes seasonal means by year and season.
type seasonGrid struct {
	years []int
	means map[int]map[models.Season]float64
}

func newSeasonGrid(points []models.SeasonalPoint) seasonGrid {
	g := seasonGrid{means: make(map[int]map[models.Season]float64)}
	for _, p := range points {
		if _, ok := g.means[p.Year]; !ok {
			g.means[p.Year] = make(map[models.Season]float64)
			g.years = append(g.years, p.Year)
		}
		g.means[p.Year][p.Season] = p.Mean
	}
	slices.Sort(g.years)
	return g
}

func (g seasonGrid) value(year int, s models.Season) (float64, bool) {
	v, ok := g.means[year][s]
	return v, ok
}

// series returns one line per year over the canonical seasons. Seasons with
// no rows are NaN and render as gaps.
func (g seasonGrid) series() []components.Series {
	series := make([]components.Series, len(g.years))
	for i, y := range g.years {
		values := make([]float64, len(models.Seasons))
		for j, s := range models.Seasons {
			v, ok := g.value(y, s)
			if !ok {
				v = math.NaN()
			}
			values[j] = v
		}
		series[i] = components.Series{
			Label:  fmt.Sprintf("%d", y),
			Values: values,
			Color:  styles.SeriesColor(i),
		}
	}
	return series
}

func (m *Model) renderChart(g seasonGrid) string {
	cardWidth := components.CardWidth(m.width)
	series := g.series()

	labels := make([]string, len(models.Seasons))
	for i, s := range models.Seasons {
		labels[i] = s.String()
	}

	var rows []string
	chart := components.RenderMultiLineChart(series, max(cardWidth-12, 30), 8,
		"Mean daily rentals: "+strings.Join(labels, " → "))
	rows = append(rows, components.Indent(chart)...)
	rows = append(rows, "", "  "+components.RenderLegend(components.LegendFor(series)))

	return components.RenderCard("📈", "Mean Daily Rentals by Season", rows, cardWidth)
}

func (m *Model) renderTable(g seasonGrid) string {
	header := []string{styles.TableHeaderStyle.Width(seasonColWidth).Render("Season")}
	for _, y := range g.years {
		header = append(header, styles.TableHeaderStyle.Width(yearColWidth).Align(lipgloss.Right).Render(fmt.Sprintf("%d", y)))
	}

	rows := []string{"  " + lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, s := range models.Seasons {
		cells := []string{styles.TableCellStyle.Width(seasonColWidth).Render(s.String())}
		for _, y := range g.years {
			text := "—"
			if v, ok := g.value(y, s); ok {
				text = fmt.Sprintf("%.0f", v)
			}
			cells = append(cells, styles.TableCellStyle.Width(yearColWidth).Align(lipgloss.Right).Render(text))
		}
		rows = append(rows, "  "+lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return components.RenderCard("▦", "Season × Year", rows, components.CardWidth(m.width))
}
