package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/constants"
)

// Handler receives a parsed intensity. It is called from the watcher
// goroutine and should hand the value to the owning event loop.
type Handler func(intensity int)

// Watcher delivers the intensity from a message file every time it is written.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, handler Handler) *Watcher {
	return &Watcher{
		path:     path,
		handler:  handler,
		debounce: constants.InboxDebounce,
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done. The parent directory is created if missing;
// the file itself does not need to exist yet.
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	file := filepath.Base(w.path)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create inbox directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Info().Str("path", w.path).Msg("Inbox watcher started")

	// Delivery runs on this goroutine, so it ends when Run does.
	debounce := time.NewTimer(w.debounce)
	debounce.Stop()
	defer debounce.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			pending = nil
			w.deliver()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				debounce.Reset(w.debounce)
				pending = debounce.C
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Inbox watcher error")
		}
	}
}

// deliver reads the file and forwards a valid intensity.
func (w *Watcher) deliver() {
	//nolint:gosec // G304: Path from validated config
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("Failed to read inbox message")
		return
	}

	n, ok := Parse(w.path, data)
	if !ok {
		log.Debug().Str("path", w.path).Msg("Inbox message ignored")
		return
	}

	log.Info().Int("intensity", n).Msg("Vibration intensity received")
	w.handler(n)
}
