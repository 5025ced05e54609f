// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/export"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services/watcher"
)

// AppName is the name desktop notifications are sent under.
const AppName = "bikedash"

type (
	// DatasetLoadedEvent is emitted once after the dataset has been loaded.
	DatasetLoadedEvent struct {
		Days         int
		Hours        int
		Bounds       models.DateRange
		Capabilities models.Capabilities
	}

	// SourceChangedEvent is emitted when a source file changes on disk.
	// The loaded tables are not refreshed; a restart picks up the change.
	SourceChangedEvent struct {
		Path string
	}

	// ExportCompletedEvent is emitted after a report has been written.
	ExportCompletedEvent struct {
		Path   string
		Format export.Format
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetLoadedEvent) isServiceEvent()   {}
func (SourceChangedEvent) isServiceEvent()   {}
func (ExportCompletedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	handle      *dataset.Handle
	exporter    *export.Exporter
	watcher     *watcher.Service
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	announce    sync.Once
	closeOnce   sync.Once
	notify      func(title, message string) error
}

// NewManager creates a new service manager. The dataset is not read until
// the first call to Dataset or Report.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		handle:   dataset.NewHandle(cfg.DayDataPath, cfg.HourDataPath),
		exporter: export.New(cfg.ExportDir),
		stopChan: make(chan struct{}),
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}

	if cfg.NotifyOnChange {
		beeep.AppName = AppName
	}

	if cfg.WatchSources {
		w, err := watcher.New([]string{cfg.DayDataPath, cfg.HourDataPath}, cfg.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("failed to start source watcher: %w", err)
		}
		m.watcher = w
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	var events <-chan watcher.Event
	if m.watcher != nil {
		events = m.watcher.Events()
	}

	for {
		select {
		case event := <-events:
			m.handleWatcherEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleWatcherEvent(event watcher.Event) {
	switch event.Type {
	case watcher.EventSourceChanged:
		m.broadcast(SourceChangedEvent{Path: event.Path})

		if m.cfg.NotifyOnChange {
			title := "Bike share data changed"
			body := fmt.Sprintf("%s changed on disk. Restart the dashboard to reload.", filepath.Base(event.Path))
			m.mu.RLock()
			notify := m.notify
			m.mu.RUnlock()
			if err := notify(title, body); err != nil {
				logger.Warn("desktop notification failed", "error", err)
			}
		}

	case watcher.EventError:
		m.broadcast(ErrorEvent{
			Service: "watcher",
			Error:   event.Error,
		})
	}
}

// Dataset returns the loaded dataset, reading the source files on first use.
// The outcome of the first load, success or failure, is kept for the life of
// the process.
func (m *Manager) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := m.handle.Get(ctx)

	m.announce.Do(func() {
		if err != nil {
			logger.Error("dataset unavailable", "error", err)
			m.broadcast(ErrorEvent{Service: "dataset", Error: err})
			return
		}
		m.broadcast(DatasetLoadedEvent{
			Days:         ds.DayCount(),
			Hours:        ds.HourCount(),
			Bounds:       ds.Bounds(),
			Capabilities: ds.Capabilities(),
		})
	})

	return ds, err
}

// Report builds the report for r over the loaded dataset.
func (m *Manager) Report(ctx context.Context, r models.DateRange) (*models.Report, error) {
	ds, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.BuildReport(ds, r)
}

// Export writes report in format and announces the written path.
func (m *Manager) Export(ctx context.Context, report *models.Report, format export.Format) (string, error) {
	if report == nil {
		return "", fmt.Errorf("failed to export: %w", models.ErrDataUnavailable)
	}

	ds, err := m.Dataset(ctx)
	if err != nil {
		return "", err
	}

	path, err := m.exporter.Write(ctx, report, ds.Filter(report.Requested), format)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		return "", err
	}

	m.broadcast(ExportCompletedEvent{Path: path, Format: format})
	return path, nil
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Watching reports whether source files are being watched.
func (m *Manager) Watching() bool {
	return m.watcher != nil && m.watcher.Active()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
// It yields nil once the channel is closed.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
