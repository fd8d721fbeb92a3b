package storage

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"workouttimer/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// settleDelay groups the events of one save into a single reload.
const settleDelay = 100 * time.Millisecond

// Watcher reloads the settings file whenever it changes on disk.
type Watcher struct {
	path     string
	settle   time.Duration
	watcher  *fsnotify.Watcher
	onChange func(preferences.Settings)
	logger   log.FieldLogger
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher watches the directory of path and calls onChange with the
// reloaded settings once writes settle. Unreadable and empty files are
// skipped.
func NewWatcher(path string, onChange func(preferences.Settings), logger log.FieldLogger) (*Watcher, error) {
	if logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create settings watcher")
	}

	// Editors often replace the file, so the directory is watched instead.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, errors.Wrap(err, "watch settings directory")
	}

	watcher := &Watcher{
		path:     filepath.Clean(path),
		settle:   settleDelay,
		watcher:  fsWatcher,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.watch()
	return watcher, nil
}

// Close stops watching.
func (watcher *Watcher) Close() error {
	select {
	case <-watcher.done:
		return nil
	default:
	}
	close(watcher.done)
	err := watcher.watcher.Close()
	watcher.wg.Wait()
	return err
}

func (watcher *Watcher) watch() {
	defer watcher.wg.Done()
	timer := time.NewTimer(watcher.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-watcher.done:
			return
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != watcher.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(watcher.settle)
			}
		case <-timer.C:
			watcher.reload()
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			watcher.logger.WithError(err).Warn("Settings watcher error.")
		}
	}
}

func (watcher *Watcher) reload() {
	// A truncated file is a save in progress; the write that follows reloads it.
	if info, err := os.Stat(watcher.path); err == nil && info.Size() == 0 {
		watcher.logger.WithField("path", watcher.path).Debug("Settings file empty, skipping reload.")
		return
	}
	settings, err := LoadSettings(watcher.path)
	if err != nil {
		watcher.logger.WithError(err).Warn("Could not reload settings.")
		return
	}
	watcher.logger.WithField("path", watcher.path).Debug("Settings reloaded.")
	if watcher.onChange != nil {
		watcher.onChange(settings)
	}
}
