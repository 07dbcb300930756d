// Package watch reacts to rewrites of the product identifier file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fairyhunter13/product-scanner-simulator/internal/idfile"
	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
)

// Watcher calls OnChange with the identifier read back after each settled
// create or write of the watched file.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(model.ProductID)
	fw       *fsnotify.Watcher
}

// New watches the directory containing path. Editors and the scanner both
// truncate in place or replace the file, so the directory is the stable
// target.
func New(path string, debounce time.Duration, onChange func(model.ProductID)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	return &Watcher{path: abs, debounce: debounce, onChange: onChange, fw: fw}, nil
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	obs.Logger.Info("watch_started", "path", w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			obs.Logger.Warn("watch_error", "path", w.path, "error", err)
		case <-timer.C:
			w.fire()
		}
	}
}

func (w *Watcher) fire() {
	id, ok, err := idfile.Read(w.path)
	if err != nil {
		obs.Logger.Warn("watch_read_failed", "path", w.path, "error", err)
		return
	}
	if !ok {
		obs.Logger.Debug("watch_empty_file", "path", w.path)
		return
	}
	obs.Logger.Info("watch_product_scanned", "product_id", id.String())
	w.onChange(id)
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fw.Close() }
