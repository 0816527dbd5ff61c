package hostfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AndyHazz/quickssh/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor produces for a
// single save.
const DefaultDebounce = 150 * time.Millisecond

// NotifyFunc receives nil after the watched file changed, or a watcher
// error.
type NotifyFunc func(err error)

// Watch calls notify whenever the file at path is written, created or
// renamed into place. It blocks until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, notify NotifyFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}
	filename := filepath.Base(path)
	log := logging.Component("hostfile")
	log.Debug("watching ssh config", "path", path)

	// A nil channel blocks forever, so the timer case is inert until armed.
	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("ssh config event", "op", event.Op.String())
			if debounce <= 0 {
				notify(nil)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			notify(nil)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			notify(err)
		case <-ctx.Done():
			return nil
		}
	}
}
