package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const statCardWidth = 26

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		if ds := m.state.GetDataset(); ds != nil {
			m.spinner.SetDetail(fmt.Sprintf("%d days, %d hourly rows read", ds.Days, ds.Hours))
		}
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	report := m.state.GetReport()

	sections := []string{m.renderTitle(report)}
	if report.IsEmpty() {
		sections = append(sections, m.renderEmpty())
	} else {
		sections = append(sections,
			m.renderStats(report),
			m.renderMonthly(report),
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
	title := styles.TitleStyle.Render("Rentals Overview")
	subtitle := styles.HelpStyle.Render(report.RangeLabel())
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmpty() string {
	return components.RenderCard("◈", "Summary", []string{
		components.RenderPlaceholder("No rentals recorded in this range"),
		"",
		styles.InfoTextStyle.Render("  ╰─▶ Widen the range with [ ] { } or press a to reset"),
	}, components.CardWidth(m.width))
}

func (m *Model) renderStats(report *models.Report) string {
	monthly := monthlyValues(report.Monthly)
	total := statCard("Total rentals", report.TotalString(),
		lipgloss.NewStyle().Foreground(styles.Primary).Render(components.RenderSparkline(monthly, statCardWidth-4)))

	var cards []string
	cards = append(cards, total)

	if s := report.Summary; s != nil {
		cards = append(cards,
			statCard("Daily mean", s.MeanString(), styles.HelpStyle.Render(fmt.Sprintf("%d days", s.Count))),
			statCard("Busiest day", fmt.Sprintf("%d", s.Max), styles.HelpStyle.Render(s.MaxDate.Format(models.DateLayout))),
			statCard("Quietest day", fmt.Sprintf("%d", s.Min), styles.HelpStyle.Render(s.MinDate.Format(models.DateLayout))),
		)
	}

	cards = append(cards, changeCard(report.Change))

	// Wrap cards into rows that fit the tab width.
	perRow := max(m.width/(statCardWidth+2), 1)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func statCard(label, value, detail string) string {
	return styles.CardStyle.Width(statCardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render(label),
		styles.StatValueStyle.Render(value),
		detail,
	))
}

func changeCard(c models.PeriodChange) string {
	arrow := "→"
	switch {
	case c.Percent > 0:
		arrow = "▲"
	case c.Percent < 0:
		arrow = "▼"
	}
	value := styles.GetChangeStyle(c.Percent).Render(arrow + " " + c.PercentString())
	detail := styles.HelpStyle.Render(fmt.Sprintf("vs %d in %s", c.Previous, c.PreviousRange.String()))

	return styles.CardStyle.Width(statCardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render("Change"),
		value,
		lipgloss.NewStyle().Width(statCardWidth-4).Render(detail),
	))
}

func (m *Model) renderMonthly(report *models.Report) string {
	cardWidth := components.CardWidth(m.width)

	values := monthlyValues(report.Monthly)
	labels := make([]string, len(report.Monthly))
	for i, mt := range report.Monthly {
		labels[i] = mt.Month
	}

	var rows []string
	chart := components.RenderLineChart(values, max(cardWidth-12, 30), 8,
		fmt.Sprintf("Total rentals per month (%d months)", len(values)))
	rows = append(rows, components.Indent(chart)...)
	rows = append(rows, "")
	rows = append(rows, components.Indent(components.RenderBarChart(values, labels, cardWidth-8))...)

	return components.RenderCard("📈", "Monthly Totals", rows, cardWidth)
}

func monthlyValues(monthly []models.MonthlyTotal) []float64 {
	values := make([]float64, len(monthly))
	for i, mt := range monthly {
		values[i] = float64(mt.Total)
	}
	return values
}
