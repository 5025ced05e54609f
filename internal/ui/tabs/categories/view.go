package categories

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const labelWidth = 14

// View renders the categories tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	report := m.state.GetReport()

	sections := []string{m.renderTitle(report)}
	switch {
	case !report.Capabilities.HasCategoryViews():
		sections = append(sections, components.RenderCard("◈", "Day Categories", []string{
			components.RenderPlaceholder("The daily table has no day category column"),
		}, components.CardWidth(m.width)))
	case len(report.Categories) == 0:
		sections = append(sections, components.RenderCard("◈", "Day Categories", []string{
			components.RenderPlaceholder("No rentals recorded in this range"),
		}, components.CardWidth(m.width)))
	default:
		sections = append(sections,
			m.renderRanges(report.Categories),
			m.renderShares(report.UserTypes),
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
	title := styles.TitleStyle.Render("Day Categories")
	subtitle := styles.HelpStyle.Render(report.RangeLabel())
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderRanges(stats []models.CategoryStat) string {
	cardWidth := components.CardWidth(m.width)

	scaleMax := 0.0
	for _, s := range stats {
		scaleMax = max(scaleMax, float64(s.Max))
	}

	barWidth := max(cardWidth-labelWidth-50, 10)

	var rows []string
	for _, s := range stats {
		label := styles.ProgressLabelStyle.Width(labelWidth).Render(s.Category)
		bar := components.RenderRangeBar(s, scaleMax, barWidth)
		detail := styles.HelpStyle.Render(fmt.Sprintf(" min %5d  mean %5.0f  max %5d  %3dd", s.Min, s.Mean, s.Max, s.Days))
		rows = append(rows, "  "+lipgloss.JoinHorizontal(lipgloss.Center, label, bar, detail))
	}
	rows = append(rows, "", styles.HelpStyle.Render(fmt.Sprintf("  scale 0 → %.0f rentals/day · ● mean", scaleMax)))

	return components.RenderCard("📊", "Daily Totals by Category", rows, cardWidth)
}

func (m *Model) renderShares(means []models.UserTypeMeans) string {
	cardWidth := components.CardWidth(m.width)

	if len(means) == 0 {
		return components.RenderCard("👥", "Casual vs Registered", []string{
			components.RenderPlaceholder("No user type data"),
		}, cardWidth)
	}

	var rows []string
	for _, u := range means {
		rows = append(rows, "  "+m.shareBar.View(u, cardWidth-8))
	}
	rows = append(rows, "", "  "+components.ShareLegend())

	return components.RenderCard("👥", "Casual vs Registered", rows, cardWidth)
}
