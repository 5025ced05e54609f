// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Dataset bool
	Report  bool
}

// DatasetInfo describes the loaded tables for display.
type DatasetInfo struct {
	Sources      dataset.Sources
	Days         int
	Hours        int
	Bounds       models.DateRange
	Capabilities models.Capabilities
	LoadedAt     time.Time
}

// State is the state shared between the root model and the tabs.
type State struct {
	mu sync.RWMutex

	Loading LoadingState

	dataset *DatasetInfo
	rng     models.DateRange
	report  *models.Report
	fatal   error

	lastExport string

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates the initial state. The dataset is considered loading
// until SetDataset or SetFatal is called.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Dataset: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "dataset":
		s.Loading.Dataset = loading
	case "report":
		s.Loading.Report = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Dataset || s.Loading.Report
}

// ReportLoading reports whether a report computation is in flight.
func (s *State) ReportLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Report
}

// IsInitialLoading returns true until the first report is available or
// loading has failed.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fatal == nil && s.report == nil
}

// SetDataset records the loaded dataset and resets the range to its full span.
func (s *State) SetDataset(info DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = &info
	s.rng = info.Bounds
	s.Loading.Dataset = false
}

// GetDataset returns the loaded dataset description, or nil.
func (s *State) GetDataset() *DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil
	}
	info := *s.dataset
	return &info
}

// Bounds returns the dataset date bounds. It is zero before the dataset loads.
func (s *State) Bounds() models.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return models.DateRange{}
	}
	return s.dataset.Bounds
}

// Capabilities returns the optional-column capabilities of the dataset.
func (s *State) Capabilities() models.Capabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return models.Capabilities{}
	}
	return s.dataset.Capabilities
}

// SetRange updates the selected range.
func (s *State) SetRange(r models.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = r
}

// Range returns the selected range.
func (s *State) Range() models.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// SetReport stores the report computed for the current range.
func (s *State) SetReport(report *models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.report = report
	s.Loading.Report = false
	s.LastUpdated = time.Now()
}

// GetReport returns the current report, or nil before the first computation.
func (s *State) GetReport() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// SetLastExport records the path of the most recent export.
func (s *State) SetLastExport(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastExport = path
}

// LastExport returns the most recent export path, or "" if none.
func (s *State) LastExport() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastExport
}

// SetFatal records an error that makes every view unusable.
func (s *State) SetFatal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fatal = err
	s.Loading = LoadingState{}
}

// Fatal returns the fatal error, if any.
func (s *State) Fatal() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fatal
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = activeNotifications(s.notifications)
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activeNotifications(s.notifications)
}

func activeNotifications(all []Notification) []Notification {
	active := make([]Notification, 0, len(all))
	for _, n := range all {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
