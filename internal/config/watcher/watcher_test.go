package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// recorder collects events delivered to a handler.
type recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 100)}
}

func (r *recorder) handle(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestNew(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}
}

func TestNew_WithOptions(t *testing.T) {
	w, err := New(WithDebounce(0), WithErrorHandler(func(error) {}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if w.debounce != 0 {
		t.Errorf("debounce = %v, want 0", w.debounce)
	}
	if w.onError == nil {
		t.Error("error handler not set")
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.op)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.op, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")

	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch(tmpFile); err != nil {
		t.Errorf("Watch() of not-yet-created file error = %v", err)
	}
	if files := w.WatchedFiles(); len(files) != 1 {
		t.Errorf("WatchedFiles() = %v, want 1 file", files)
	}

	if err := w.Watch(filepath.Join(tmpDir, "missing", "config.toml")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcher_WatchAfterStop(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Stop()
	w.Stop()

	if err := w.Watch(filepath.Join(t.TempDir(), "c.toml")); err != ErrWatcherClosed {
		t.Errorf("Watch() after Stop error = %v, want ErrWatcherClosed", err)
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(tmpFile, []byte("a = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	rec := newRecorder()
	w.OnChange(rec.handle)
	if err := w.Watch(tmpFile); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()
	if !w.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}

	if err := os.WriteFile(tmpFile, []byte("a = 2"), 0644); err != nil {
		t.Fatal(err)
	}
	rec.wait(t)

	events := rec.snapshot()
	want, _ := filepath.Abs(tmpFile)
	if events[0].Path != want {
		t.Errorf("event path = %q, want %q", events[0].Path, want)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "config.toml")
	other := filepath.Join(tmpDir, "other.toml")
	if err := os.WriteFile(watched, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	rec := newRecorder()
	w.OnChange(rec.handle)
	if err := w.Watch(watched); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()

	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	rec.wait(t)

	for _, ev := range rec.snapshot() {
		if filepath.Base(ev.Path) != "config.toml" {
			t.Errorf("got event for unwatched file %s", ev.Path)
		}
	}
}

func TestWatcher_Debounce(t *testing.T) {
	w, err := New(WithDebounce(30 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	rec := newRecorder()
	w.OnChange(rec.handle)

	w.queueEvent("/c.toml", OpCreate)
	w.queueEvent("/c.toml", OpWrite)
	w.queueEvent("/c.toml", OpWrite)
	rec.wait(t)

	time.Sleep(60 * time.Millisecond)
	events := rec.snapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 coalesced event", len(events))
	}
	if events[0].Op != OpCreate {
		t.Errorf("coalesced op = %v, want create", events[0].Op)
	}
}

func TestWatcher_DebounceRemoveWins(t *testing.T) {
	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	rec := newRecorder()
	w.OnChange(rec.handle)

	w.queueEvent("/c.toml", OpWrite)
	w.queueEvent("/c.toml", OpRemove)
	rec.wait(t)

	if got := rec.snapshot()[0].Op; got != OpRemove {
		t.Errorf("coalesced op = %v, want remove", got)
	}
}

func TestWatcher_HandlerPanic(t *testing.T) {
	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	rec := newRecorder()
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(rec.handle)

	w.emitEvent(Event{Path: "/c.toml", Op: OpWrite, Time: time.Now()})
	rec.wait(t)
}
