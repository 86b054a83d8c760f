package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/calloutls/internal/config/notify"
)

func waitChange(t *testing.T, ch <-chan notify.Change) notify.Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
		return notify.Change{}
	}
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	n := notify.New()
	defer n.Close()
	changes := make(chan notify.Change, 16)
	n.SubscribePath(notify.PathCallouts, func(c notify.Change) { changes <- c })

	w, err := New(path, n, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"callouts": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := waitChange(t, changes)
	if c.Source != Source || c.Path != notify.PathCallouts || c.Value != w.Path() {
		t.Errorf("change = %+v", c)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	n := notify.New()
	defer n.Close()
	changes := make(chan notify.Change, 16)
	n.Subscribe(func(c notify.Change) { changes <- c })

	w, err := New(path, n, WithDebounce(0))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-changes:
		t.Errorf("unexpected change for unrelated file: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)
}

func TestWatcher_Lifecycle(t *testing.T) {
	n := notify.New()
	defer n.Close()

	w, err := New(filepath.Join(t.TempDir(), "data.json"), n)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Errorf("second Start error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
	if err := w.Start(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start after Close = %v, want ErrWatcherClosed", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	n := notify.New()
	defer n.Close()

	w, err := New(filepath.Join(t.TempDir(), "nope", "data.json"), n)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err == nil {
		w.Close()
		t.Error("Start should fail when the directory does not exist")
	}
}
