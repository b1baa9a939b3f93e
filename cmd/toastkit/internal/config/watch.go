package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long Watch waits after the last change before
// reloading. Editors often write a file in several steps.
const DebounceDelay = 150 * time.Millisecond

// Watch reloads path whenever it changes and passes the result to fn until
// ctx is done. fn runs on a timer goroutine; a failed reload reports a nil
// config and the error. The parent directory is watched so that editors
// that replace the file by rename are followed.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch init failed: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watch add failed: %w", err)
	}
	name := filepath.Base(path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		cfg, err := Load(path)
		fn(cfg, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceDelay, reload)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				fn(nil, fmt.Errorf("config watch error: %w", err))
			}
		}
	}
}
