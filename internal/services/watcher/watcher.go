// Package watcher reports changes to the dataset source files on disk.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
)

// DefaultDebounce is used when a non-positive debounce is configured.
const DefaultDebounce = 250 * time.Millisecond

// Event represents a watcher event.
type Event struct {
	Type  EventType
	Path  string
	Error error
}

// EventType defines the type of watcher event.
type EventType int

const (
	EventSourceChanged EventType = iota
	EventError
)

// Service watches the directories holding the source files and emits one
// debounced event per file after it is written, created, renamed or removed.
// It never reloads anything itself.
type Service struct {
	mu        sync.Mutex
	files     map[string]bool
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	eventChan chan Event
	stopChan  chan struct{}
	timers    map[string]*time.Timer
	closeOnce sync.Once
}

// New starts watching the given files. Files whose directory cannot be
// watched are skipped with a warning; if none can be watched the service is
// inert but valid.
func New(paths []string, debounce time.Duration) (*Service, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		files:     make(map[string]bool),
		debounce:  debounce,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
		timers:    make(map[string]*time.Timer),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			logger.Warn("source watch disabled", "path", p, "error", err)
			continue
		}
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("source watch disabled", "path", p, "error", err)
				continue
			}
			dirs[dir] = true
		}
		s.files[abs] = true
	}

	if len(s.files) == 0 {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return s, nil
	}

	s.watcher = watcher
	go s.watchLoop()

	logger.Debug("watching sources", "files", len(s.files), "debounce", debounce)
	return s, nil
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Active reports whether at least one file is being watched.
func (s *Service) Active() bool {
	return s.watcher != nil
}

// Watched returns the absolute paths of the watched files.
func (s *Service) Watched() []string {
	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	return out
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			name := filepath.Clean(event.Name)
			if !s.files[name] || event.Op&relevant == 0 {
				continue
			}
			s.schedule(name)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// schedule (re)arms the debounce timer for path.
func (s *Service) schedule(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[path]; ok {
		t.Stop()
	}
	s.timers[path] = time.AfterFunc(s.debounce, func() {
		select {
		case <-s.stopChan:
			return
		default:
		}
		logger.Info("source file changed", "path", path)
		s.sendEvent(Event{Type: EventSourceChanged, Path: path})
	})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		for _, t := range s.timers {
			t.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
