package app

import (
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/export"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// DatasetLoadedMsg carries the outcome of the initial dataset load.
type DatasetLoadedMsg struct {
	Info  DatasetInfo
	Error error
}

// ReportLoadedMsg carries a report computed for Range.
type ReportLoadedMsg struct {
	Range  models.DateRange
	Report *models.Report
	Error  error
}

// RangeChangedMsg signals that the selected range was edited.
type RangeChangedMsg struct {
	Range  models.DateRange
	Action RangeAction
}

// ExportMsg requests exporting the current report.
type ExportMsg struct {
	Format export.Format
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path   string
	Format export.Format
	Error  error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
}

// ClipboardResultMsg contains the result of a clipboard operation.
type ClipboardResultMsg struct {
	Text  string
	Error error
}
