package info

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetCard(),
		m.renderAboutCard(),
		styles.HelpStyle.Render("© 2025 Bikeshare Dashboard"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, data sources and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"), "")

	if m.config != nil {
		watch := "off"
		if m.config.WatchSources {
			watch = fmt.Sprintf("on (debounce %s)", m.config.WatchDebounce)
		}
		logPath := m.config.LogPath
		if logPath == "" {
			logPath = "disabled"
		}
		rows = append(rows,
			renderRow("Daily CSV", m.config.DayDataPath),
			renderRow("Hourly CSV", m.config.HourDataPath),
			renderRow("Export Dir", m.config.ExportDir),
			renderRow("Export Format", m.config.ExportFormat),
			renderRow("Watch Sources", watch),
			renderRow("Desktop Alerts", onOff(m.config.NotifyOnChange)),
			renderRow("Log", fmt.Sprintf("%s (%s)", logPath, m.config.LogLevel)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")
	if last := m.state.LastExport(); last != "" {
		rows = append(rows, renderRow("Last Export", last))
	}
	rows = append(rows, styles.HelpStyle.Render("Press 'c' to copy the last export path, 'C' for the daily CSV"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDatasetCard renders what was loaded from the source tables.
func (m *Model) renderDatasetCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Dataset"), "")

	ds := m.state.GetDataset()
	switch {
	case m.state.Fatal() != nil:
		rows = append(rows, styles.ErrorTextStyle.Render(m.state.Fatal().Error()))
	case ds == nil:
		rows = append(rows, styles.HelpStyle.Render("Loading..."))
	default:
		rows = append(rows,
			renderRow("Daily Source", ds.Sources.Daily),
			renderRow("Hourly Source", ds.Sources.Hourly),
			renderRow("Date Span", ds.Bounds.String()),
			renderRow("Rows", fmt.Sprintf("%d days, %d hours", ds.Days, ds.Hours)),
			renderRow("Categories", capabilityText(ds.Capabilities)),
			renderRow("Loaded At", ds.LoadedAt.Format(time.DateTime)),
		)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func capabilityText(c models.Capabilities) string {
	switch {
	case c.HasCategoryViews() && c.HasHourlyTrend():
		return styles.SuccessTextStyle.Render("daily and hourly")
	case c.HasCategoryViews():
		return "daily only"
	case c.HasHourlyTrend():
		return "hourly only"
	default:
		return styles.WarningTextStyle.Render("none")
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Bikeshare Dashboard"), "")

	rows = append(rows,
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)

	if updated := m.state.LastUpdated; !updated.IsZero() {
		rows = append(rows, "", fmt.Sprintf("Report computed %s",
			styles.InfoTextStyle.Render(updated.Format(time.TimeOnly))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

var _ app.Tab = (*Model)(nil)
