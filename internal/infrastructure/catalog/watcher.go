package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a MemoryCatalog whenever its source file is written.  A
// file that fails to parse or validate leaves the previous contents live.
type Watcher struct {
	path     string
	target   *nomenclature.MemoryCatalog
	logger   logging.Logger
	debounce time.Duration

	fs     *fsnotify.Watcher
	stopCh chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	onReload func(n int)
	onError  func(error)
	timer    *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// OnReload registers a callback invoked with the new entry count.
func OnReload(fn func(n int)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// OnError registers a callback for reload failures.
func OnError(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// Watch starts watching path and reloading target.  The directory is
// watched rather than the file so that editors that replace the file on
// save keep triggering reloads.
func Watch(path string, target *nomenclature.MemoryCatalog, logger logging.Logger, opts ...WatcherOption) (*Watcher, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCatalogWatch, "cannot resolve catalog path").WithDetail(path)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCatalogWatch, "cannot create file watcher")
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCatalogWatch, "cannot watch catalog directory").WithDetail(abs)
	}

	w := &Watcher{
		path:     abs,
		target:   target,
		logger:   logger.Named("catalog"),
		debounce: DefaultDebounce,
		fs:       fs,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	go w.loop()
	w.logger.Info("watching catalog", logging.String("path", abs))
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer w.fs.Close()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("catalog watcher error", logging.Err(err))
			w.fail(errors.Wrap(err, errors.ErrCodeCatalogWatch, "file watcher error"))

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.Reload)
}

// Reload re-reads the file immediately.
func (w *Watcher) Reload() {
	entries, err := ReadFile(w.path)
	if err == nil {
		err = w.target.Replace(entries)
	}
	if err != nil {
		w.logger.Warn("catalog reload rejected", logging.String("path", w.path), logging.Err(err))
		w.fail(err)
		return
	}
	w.logger.Info("catalog reloaded", logging.String("path", w.path), logging.Int("entries", len(entries)))

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()
	if fn != nil {
		fn(len(entries))
	}
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return nil
}
