package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"workouttimer/internal/ui/preferences"

	log "github.com/sirupsen/logrus"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := SaveSettings(path, preferences.DefaultSettings()); err != nil {
		t.Fatal(err)
	}

	changes := make(chan preferences.Settings, 8)
	watcher, err := NewWatcher(path, func(settings preferences.Settings) {
		changes <- settings
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer watcher.Close()

	updated := preferences.DefaultSettings()
	updated.RestSeconds = 25
	if err := SaveSettings(path, updated); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case settings := <-changes:
			if settings.RestSeconds == 25 {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	changes := make(chan preferences.Settings, 8)
	watcher, err := NewWatcher(path, func(settings preferences.Settings) {
		changes <- settings
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
		t.Error("change reported for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "settings.yaml"), nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestWatcher_SkipsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var changes []preferences.Settings
	watcher := &Watcher{
		path:     path,
		onChange: func(settings preferences.Settings) { changes = append(changes, settings) },
		logger:   log.New(),
	}
	watcher.reload()
	if len(changes) != 0 {
		t.Fatalf("empty file reported as %+v", changes)
	}

	updated := preferences.DefaultSettings()
	updated.WorkSeconds = 40
	if err := SaveSettings(path, updated); err != nil {
		t.Fatal(err)
	}
	watcher.reload()
	if len(changes) != 1 || changes[0].WorkSeconds != 40 {
		t.Errorf("changes = %+v, want one reload with work 40", changes)
	}
}

func TestWatcher_TruncateThenWriteReloadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := SaveSettings(path, preferences.DefaultSettings()); err != nil {
		t.Fatal(err)
	}

	changes := make(chan preferences.Settings, 8)
	watcher, err := NewWatcher(path, func(settings preferences.Settings) {
		changes <- settings
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	updated := preferences.DefaultSettings()
	updated.WorkSeconds = 75
	if err := SaveSettings(path, updated); err != nil {
		t.Fatal(err)
	}

	select {
	case settings := <-changes:
		if settings.WorkSeconds != 75 {
			t.Errorf("WorkSeconds = %d, want 75", settings.WorkSeconds)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	select {
	case settings := <-changes:
		if settings.WorkSeconds != 75 {
			t.Errorf("reloaded defaults from a truncated file: %+v", settings)
		}
	case <-time.After(300 * time.Millisecond):
	}
}
