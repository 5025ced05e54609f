// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the dashboard theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("42")  // Green
	Secondary = lipgloss.Color("36")  // Teal
	Subtle    = lipgloss.Color("240") // Gray

	// User type colors
	Casual     = lipgloss.Color("214") // Amber
	Registered = lipgloss.Color("33")  // Blue

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Width(20)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// ChangeUpStyle for positive period-over-period changes.
var ChangeUpStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// ChangeDownStyle for negative period-over-period changes.
var ChangeDownStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// ChangeFlatStyle for unchanged periods.
var ChangeFlatStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// StatValueStyle styles the headline number of a stat card.
var StatValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// GetChangeStyle returns the style for a period-over-period percentage.
func GetChangeStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 0:
		return ChangeUpStyle
	case percent < 0:
		return ChangeDownStyle
	default:
		return ChangeFlatStyle
	}
}

// SeriesPalette holds the colors assigned to chart series in order.
var SeriesPalette = []lipgloss.Color{
	lipgloss.Color("42"),
	lipgloss.Color("214"),
	lipgloss.Color("33"),
	lipgloss.Color("205"),
	lipgloss.Color("141"),
	lipgloss.Color("196"),
}

// SeriesColor returns the palette color for series i.
func SeriesColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return SeriesPalette[i%len(SeriesPalette)]
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
