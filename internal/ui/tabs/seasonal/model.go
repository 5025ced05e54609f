// Package seasonal provides the season by year comparison tab.
package seasonal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
)

// Model represents the seasonal tab state.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new seasonal model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading seasons..."),
		viewport: components.NewViewport(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case app.ReportLoadedMsg:
		m.viewport.GotoTop()
	case tea.KeyMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	return m, cmd
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return components.ScrollKeys(m.viewport)
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{components.ScrollKeys(m.viewport)}
}
