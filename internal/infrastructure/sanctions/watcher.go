package sanctions

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// reloadDebounce coalesces the burst of fsnotify events an editor or atomic
// rename produces into one reload.
const reloadDebounce = 500 * time.Millisecond

// Watcher hot-reloads the sanctions reference set when its CSV changes on
// disk.  A reload that fails leaves the previous set in place.
type Watcher struct {
	path   string
	loader *Loader
	index  *MemoryIndex
	logger logging.Logger

	fsw *fsnotify.Watcher
}

// NewWatcher builds a watcher that reloads path into index through loader.
func NewWatcher(path string, loader *Loader, index *MemoryIndex, log logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}

	// Watch the directory rather than the file: atomic replace (write temp,
	// rename over) drops the watch on the original inode.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to watch sanctions directory")
	}

	return &Watcher{
		path:   path,
		loader: loader,
		index:  index,
		logger: log.Named("sanctions_watcher"),
		fsw:    fsw,
	}, nil
}

// Run blocks until ctx is cancelled, reloading the index on file changes.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerC = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("sanctions file watcher error", logging.Err(err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	records, err := w.loader.LoadFile(ctx, w.path)
	if err != nil {
		w.logger.Error("sanctions reference reload failed, keeping previous set",
			logging.String("path", w.path), logging.Err(err))
		return
	}
	w.index.Replace(records)
	w.logger.Info("sanctions reference set reloaded",
		logging.String("path", w.path),
		logging.Int("records", len(records)))
}
