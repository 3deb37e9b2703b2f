package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher re-runs an expansion whenever a template or resource file in its
// directory changes.
type Watcher struct {
	dir      string
	suffix   string
	debounce time.Duration
	logger   *zap.Logger
	run      func(context.Context) error
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher over dir. run is invoked once when watching
// starts and again after every burst of relevant changes.
func NewWatcher(dir, suffix string, logger *zap.Logger, run func(context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		dir:      dir,
		suffix:   suffix,
		debounce: defaultDebounce,
		logger:   logger,
		run:      run,
		watcher:  fw,
	}, nil
}

// Watch blocks until ctx is done. Failed runs are logged and do not stop
// the watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	w.runOnce(ctx)

	// wait for a while after a change to consider multiple changes as one
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isRelevant(event) {
				continue
			}
			w.logger.Debug("Change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case <-timer.C:
			w.runOnce(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error("Expansion failed", zap.Error(err))
	}
}

// isRelevant filters out events on generated outputs, which would otherwise
// retrigger the run that wrote them.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasSuffix(name, w.suffix) {
		return true
	}
	if _, err := os.Stat(filepath.Join(w.dir, name+w.suffix)); err == nil {
		return false
	}
	return true
}
