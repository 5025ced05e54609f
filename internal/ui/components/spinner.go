package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// Wheel is a spinner drawn as a turning bicycle wheel.
var Wheel = spinner.Spinner{
	Frames: []string{"◴", "◷", "◶", "◵"},
	FPS:    time.Second / 8,
}

// LoadingSpinner is shown while the rental tables load or a report is
// computed. The detail line reports progress, such as rows already read.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
	detail  string
}

// NewSpinner creates a wheel spinner with the given label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(spinner.WithSpinner(Wheel))
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	return LoadingSpinner{spinner: s, label: label}
}

// Init starts the wheel.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the wheel on its own tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// SetDetail sets the progress line shown under the label. Empty hides it.
func (l *LoadingSpinner) SetDetail(detail string) {
	l.detail = detail
}

// View renders the wheel, the label and, when set, the detail line.
func (l LoadingSpinner) View() string {
	line := l.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
	if l.detail == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Center, line, styles.HelpStyle.Render(l.detail))
}

// RenderSpinnerCentered renders the spinner in the middle of a width x height area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
