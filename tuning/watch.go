package tuning

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"fingershooter/game"
)

// debounce is the quiet period after the last write before an edit is reported
const debounce = 100 * time.Millisecond

// Watcher reports edits to one tuning file. The parent directory is watched so
// editors that save by renaming a temp file are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Saves arrive as bursts; report once the file has settled.
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Follow reloads path on every reported edit and hands valid configs to apply.
// An invalid edit is logged and the previous tuning stays in effect. Follow
// returns when ctx is done or the watcher is closed.
func Follow(ctx context.Context, w *Watcher, apply func(game.Config), log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "tuning")
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			cfg, err := Load(name)
			if err != nil {
				log.Warn("tuning reload rejected", slog.String("path", name), slog.Any("error", err))
				continue
			}
			log.Info("tuning reloaded", slog.String("path", name))
			apply(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Error("tuning watcher", slog.Any("error", err))
		}
	}
}
