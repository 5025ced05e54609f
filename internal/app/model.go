// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/export"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview is the ID for the overview tab.
	TabOverview TabID = iota
	// TabHourly is the ID for the hourly trend tab.
	TabHourly
	// TabCategories is the ID for the day category tab.
	TabCategories
	// TabSeasonal is the ID for the seasonal trend tab.
	TabSeasonal
	// TabInfo is the ID for the info tab.
	TabInfo
)

// TabCount is the number of tabs.
const TabCount = 5

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabHourly:
		return "Hourly"
	case TabCategories:
		return "Categories"
	case TabSeasonal:
		return "Seasonal"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	StartBack    key.Binding
	StartForward key.Binding
	EndBack      key.Binding
	EndForward   key.Binding
	ShiftBack    key.Binding
	ShiftForward key.Binding
	ResetRange   key.Binding
	ToggleDay    key.Binding

	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setRangeKeys(km)
	km = setActionKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "hourly"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "categories"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "seasonal"))
	k.Tab5 = key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setRangeKeys(k KeyMap) KeyMap {
	k.StartBack = key.NewBinding(key.WithKeys("["), key.WithHelp("[", "start -1 day"))
	k.StartForward = key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "start +1 day"))
	k.EndBack = key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "end -1 day"))
	k.EndForward = key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "end +1 day"))
	k.ShiftBack = key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "previous window"))
	k.ShiftForward = key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next window"))
	k.ResetRange = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all dates"))
	k.ToggleDay = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "single day"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Export = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	return k
}

// rangeActions pairs each range binding with the edit it performs.
func (k KeyMap) rangeActions() []struct {
	binding key.Binding
	action  RangeAction
} {
	return []struct {
		binding key.Binding
		action  RangeAction
	}{
		{k.StartBack, RangeStartBack},
		{k.StartForward, RangeStartForward},
		{k.EndBack, RangeEndBack},
		{k.EndForward, RangeEndForward},
		{k.ShiftBack, RangeShiftBack},
		{k.ShiftForward, RangeShiftForward},
		{k.ResetRange, RangeReset},
		{k.ToggleDay, RangeToggleDay},
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Export, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.NextTab, k.PrevTab},
		{k.StartBack, k.StartForward, k.EndBack, k.EndForward},
		{k.ShiftBack, k.ShiftForward, k.ResetRange, k.ToggleDay},
		{k.Export, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Range bar styles
	RangeBar   lipgloss.Style
	RangeLabel lipgloss.Style
	RangeValue lipgloss.Style
	Badge      lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Spinner lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#1B7F5B", Dark: "#3DDC97"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.RangeBar = lipgloss.NewStyle().Padding(0, 2)
	s.RangeLabel = lipgloss.NewStyle().Foreground(subtle)
	s.RangeValue = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Badge = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(warning).Padding(0, 1)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Spinner = lipgloss.NewStyle().Foreground(highlight)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	s.Success = lipgloss.NewStyle().Foreground(success)
	s.Warning = lipgloss.NewStyle().Foreground(warning)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state        *State
	services     *services.Manager
	commands     *Commands
	keymap       KeyMap
	styles       Styles
	exportFormat export.Format

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil, in which
// case nothing is loaded.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	format := export.FormatJSON
	if mgr != nil && mgr.Config() != nil {
		if f, err := export.ParseFormat(mgr.Config().ExportFormat); err == nil {
			format = f
		}
	}

	tabNames := make([]string, TabCount)
	for i := range tabNames {
		tabNames[i] = TabID(i).String()
	}

	return &Model{
		activeTab:    TabOverview,
		tabNames:     tabNames,
		tabs:         make([]Tab, TabCount),
		state:        NewState(),
		services:     mgr,
		commands:     NewCommands(mgr),
		keymap:       DefaultKeyMap(),
		styles:       DefaultStyles(),
		exportFormat: format,
		spinner:      s,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		m.state.SetLoadingNotification("Loading dataset...")
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, m.commands.LoadDataset())
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case DatasetLoadedMsg:
		cmds = append(cmds, m.handleDatasetLoaded(msg)...)
	case ReportLoadedMsg:
		cmds = append(cmds, m.handleReportLoaded(msg)...)
	case ExportMsg:
		cmds = append(cmds, m.startExport(msg.Format)...)
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg))
	case CopyToClipboardMsg:
		if msg.Text != "" {
			cmds = append(cmds, copyToClipboardCmd(msg.Text))
		}
	case ClipboardResultMsg:
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Copy failed: %v", msg.Error)))
		} else {
			cmds = append(cmds, notifyInfoCmd("Copied "+msg.Text))
		}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("%s: %v", msg.Context, msg.Error)))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.SourceChangedEvent:
		return notifyWarningCmd(fmt.Sprintf("%s changed on disk, restart to reload", filepath.Base(e.Path)))
	case services.ErrorEvent:
		// Dataset failures arrive as DatasetLoadedMsg and export failures as
		// ExportResultMsg.
		if e.Service == "dataset" || e.Service == "export" {
			return nil
		}
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

func (m *Model) handleDatasetLoaded(msg DatasetLoadedMsg) []tea.Cmd {
	m.state.ClearLoadingNotification()

	if msg.Error != nil {
		m.state.SetFatal(msg.Error)
		return nil
	}

	m.state.SetDataset(msg.Info)
	logger.Debug("dataset ready", "days", msg.Info.Days, "hours", msg.Info.Hours, "bounds", msg.Info.Bounds.String())
	return m.requestReport(m.state.Range())
}

// requestReport starts exactly one report computation for r.
func (m *Model) requestReport(r models.DateRange) []tea.Cmd {
	cmd := m.commands.BuildReport(r)
	if cmd == nil {
		return nil
	}
	m.state.SetLoading("report", true)
	return []tea.Cmd{cmd}
}

func (m *Model) handleReportLoaded(msg ReportLoadedMsg) []tea.Cmd {
	// A newer range is already being computed.
	if msg.Range != m.state.Range() {
		return nil
	}

	if msg.Error != nil {
		if errors.Is(msg.Error, models.ErrDataUnavailable) {
			m.state.SetFatal(msg.Error)
			return nil
		}
		m.state.SetLoading("report", false)
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Failed to build report: %v", msg.Error))}
	}

	m.state.SetReport(msg.Report)
	return nil
}

func (m *Model) handleRangeAction(action RangeAction) tea.Cmd {
	if m.state.Fatal() != nil {
		return nil
	}

	next, changed := ApplyRangeAction(m.state.Range(), m.state.Bounds(), action)
	if !changed {
		return nil
	}

	m.state.SetRange(next)
	cmds := m.requestReport(next)
	cmds = append(cmds, func() tea.Msg {
		return RangeChangedMsg{Range: next, Action: action}
	})
	return tea.Batch(cmds...)
}

func (m *Model) startExport(format export.Format) []tea.Cmd {
	// The stored report still belongs to the previous range.
	if m.state.ReportLoading() {
		return []tea.Cmd{notifyWarningCmd("Report still computing, try again in a moment")}
	}

	report := m.state.GetReport()
	if report == nil {
		return []tea.Cmd{notifyWarningCmd("Nothing to export yet")}
	}

	cmd := m.commands.Export(report, format)
	if cmd == nil {
		return nil
	}
	return []tea.Cmd{notifyInfoCmd(fmt.Sprintf("Exporting %s...", format)), cmd}
}

func (m *Model) handleExportResult(msg ExportResultMsg) tea.Cmd {
	if msg.Error != nil {
		return notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error))
	}
	m.state.SetLastExport(msg.Path)
	return notifySuccessCmd(fmt.Sprintf("Exported %s", msg.Path))
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

// chromeHeight is the number of lines used by the navbar and range bar.
const chromeHeight = 6

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-chromeHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	if len(m.tabs) == 0 {
		return
	}
	m.activeTab = TabID((int(id) + len(m.tabs)) % len(m.tabs))
	m.updateTabSizes()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
		return nil

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOverview)
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabHourly)
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabCategories)
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabSeasonal)
	case key.Matches(msg, m.keymap.Tab5):
		m.switchTab(TabInfo)

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp {
			m.switchTab(m.activeTab + 1)
		}

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp {
			m.switchTab(m.activeTab - 1)
		}

	case key.Matches(msg, m.keymap.Export):
		return tea.Batch(m.startExport(m.exportFormat)...)
	}

	for _, ra := range m.keymap.rangeActions() {
		if key.Matches(msg, ra.binding) {
			return m.handleRangeAction(ra.action)
		}
	}

	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if err := m.state.Fatal(); err != nil {
		b.WriteString(m.renderFatal(err))
		return b.String()
	}

	b.WriteString(m.renderRangeBar())
	b.WriteString("\n")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(mainLines) < m.height {
		mainLines = append(mainLines, "")
	}

	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

// renderRangeBar renders the selected range with its mode and span.
func (m *Model) renderRangeBar() string {
	r := m.state.Range()
	report := m.state.GetReport()

	mode := "Range"
	if r.SingleDay {
		mode = "Day"
	}

	parts := []string{
		m.styles.RangeLabel.Render(mode + ":"),
		m.styles.RangeValue.Render(r.String()),
	}

	if report != nil {
		if report.FullSpan {
			parts = append(parts, m.styles.Badge.Render("full dataset"))
		}
		parts = append(parts, m.styles.Subtle.Render(fmt.Sprintf("%d days", report.DayCount)))
	}

	if m.state.AnyLoading() {
		parts = append(parts, m.spinner.View())
	}

	parts = append(parts, m.styles.Subtle.Render("[ ] { } < > a d"))

	return m.styles.RangeBar.Render(strings.Join(parts, "  "))
}

func (m *Model) renderFatal(err error) string {
	lines := []string{
		m.styles.Error.Bold(true).Render("Data unavailable"),
		"",
		m.styles.Error.Render(err.Error()),
		"",
		m.styles.Subtle.Render("Check DAY_DATA_PATH and HOUR_DATA_PATH, then restart."),
		m.styles.Subtle.Render("Press q to quit."),
	}
	return m.styles.Content.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 3

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-5        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Date range"))
	lines = append(lines, "  [ / ]      Move start back/forward a day")
	lines = append(lines, "  { / }      Move end back/forward a day")
	lines = append(lines, "  < / >      Previous/next window")
	lines = append(lines, "  a          All dates")
	lines = append(lines, "  d          Toggle single day")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	lines = append(lines, fmt.Sprintf("  e          Export (%s)", m.exportFormat))
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
