package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestService(t *testing.T, names ...string) (*Service, []string) {
	t.Helper()
	tmpDir := t.TempDir()

	var paths []string
	for _, name := range names {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte("dteday,cnt\n"), 0600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		paths = append(paths, p)
	}

	svc, err := New(paths, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc, paths
}

func waitEvent(t *testing.T, svc *Service, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev := <-svc.Events():
		return ev, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestNew_WatchesFiles(t *testing.T) {
	svc, paths := newTestService(t, "day.csv", "hour.csv")

	if !svc.Active() {
		t.Fatal("service should be active")
	}
	if got := len(svc.Watched()); got != len(paths) {
		t.Errorf("Watched() = %d files, want %d", got, len(paths))
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "day.csv")

	svc, err := New([]string{missing}, 0)
	if err != nil {
		t.Fatalf("New() should not fail for a missing directory: %v", err)
	}
	defer svc.Close()

	if svc.Active() {
		t.Error("service should be inert when nothing can be watched")
	}
	if svc.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want default %v", svc.debounce, DefaultDebounce)
	}
}

func TestWatch_FileWriteEmitsOneEvent(t *testing.T) {
	svc, paths := newTestService(t, "day.csv")

	// Several quick writes collapse into one event.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(paths[0], []byte("dteday,cnt\n2011-01-01,1\n"), 0600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}

	ev, ok := waitEvent(t, svc, 2*time.Second)
	if !ok {
		t.Fatal("timeout waiting for EventSourceChanged")
	}
	if ev.Type != EventSourceChanged {
		t.Fatalf("event type = %v, want EventSourceChanged", ev.Type)
	}
	want, _ := filepath.Abs(paths[0])
	if ev.Path != want {
		t.Errorf("event path = %q, want %q", ev.Path, want)
	}

	if extra, ok := waitEvent(t, svc, 150*time.Millisecond); ok {
		t.Errorf("unexpected extra event %+v", extra)
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	svc, paths := newTestService(t, "day.csv")

	other := filepath.Join(filepath.Dir(paths[0]), "notes.txt")
	if err := os.WriteFile(other, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if ev, ok := waitEvent(t, svc, 150*time.Millisecond); ok {
		t.Errorf("unexpected event for unrelated file: %+v", ev)
	}
}

func TestWatch_Remove(t *testing.T) {
	svc, paths := newTestService(t, "hour.csv")

	if err := os.Remove(paths[0]); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	ev, ok := waitEvent(t, svc, 2*time.Second)
	if !ok {
		t.Fatal("timeout waiting for event after remove")
	}
	if ev.Type != EventSourceChanged {
		t.Errorf("event type = %v, want EventSourceChanged", ev.Type)
	}
}

func TestClose_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, "day.csv")

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestSendEvent_DropsOldestWhenFull(t *testing.T) {
	s := &Service{eventChan: make(chan Event, 1)}

	s.sendEvent(Event{Type: EventSourceChanged, Path: "old"})
	s.sendEvent(Event{Type: EventSourceChanged, Path: "new"})

	ev := <-s.eventChan
	if ev.Path != "new" {
		t.Errorf("kept %q, want the newest event", ev.Path)
	}
}
