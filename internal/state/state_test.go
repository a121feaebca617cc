package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/recent"
	"github.com/Paintersrp/astromark/internal/tui/message"
)

func TestNewStateCreatesConfigAndPersistsRecents(t *testing.T) {
	dir := t.TempDir()

	s, err := NewState(Options{Dir: dir})
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, constants.ConfigFile))
	if err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if string(data) != constants.DefaultScript {
		t.Fatalf("expected default script, got %q", data)
	}
	if s.Recent.Max() != recent.DefaultMax {
		t.Fatalf("expected default recent cap, got %d", s.Recent.Max())
	}

	s.Recent.Add("/tmp/a.md")
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reloaded := recent.Load(config.GetRecentPath(dir), 10)
	if !reflect.DeepEqual(reloaded.Paths(), []string{"/tmp/a.md"}) {
		t.Fatalf("expected recents to persist, got %v", reloaded.Paths())
	}
}

func TestNewStateHonoursConfigOverride(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(t.TempDir(), "custom.lua")
	if err := os.WriteFile(custom, []byte("local f = flags(); f.max_recents = 2; return f\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := NewState(Options{Dir: dir, ConfigPath: custom})
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if s.Config.Path != custom || s.Recent.Max() != 2 {
		t.Fatalf("expected custom config to apply, got path %q cap %d", s.Config.Path, s.Recent.Max())
	}
	if _, err := os.Stat(filepath.Join(dir, constants.ConfigFile)); !os.IsNotExist(err) {
		t.Fatalf("default config should not be created when overridden")
	}
}

func TestDocumentWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewDocumentWatcher()
	if err != nil {
		t.Fatalf("NewDocumentWatcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if !w.Watching(path) {
		t.Fatalf("expected path to be watched")
	}

	msgs := make(chan any, 1)
	go func() { msgs <- w.Start()() }()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case msg := <-msgs:
		changed, ok := msg.(message.FileChangedMsg)
		if !ok {
			t.Fatalf("expected FileChangedMsg, got %T", msg)
		}
		if changed.Path != path {
			t.Fatalf("expected %q, got %q", path, changed.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestDocumentWatcherReferenceCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")

	w, err := NewDocumentWatcher()
	if err != nil {
		t.Fatalf("NewDocumentWatcher: %v", err)
	}

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	w.Unwatch(path)
	if !w.Watching(path) {
		t.Fatalf("expected second reference to keep watching")
	}
	w.Unwatch(path)
	if w.Watching(path) {
		t.Fatalf("expected path to be released")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if msg := w.Start()(); msg != nil {
		t.Fatalf("expected closed watcher to return nil, got %T", msg)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
