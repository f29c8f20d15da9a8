package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk. OnReload and
// OnError run on the watcher's goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	clock    clockwork.Clock
	debounce time.Duration
	log      zerolog.Logger

	OnReload func(*Config)
	OnError  func(error)

	mu      sync.Mutex
	pending clockwork.Timer
	stop    chan struct{}
	once    sync.Once
}

func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		clock:    clockwork.NewRealClock(),
		debounce: DefaultDebounce,
		log:      log.With().Str("component", "config-watcher").Str("path", abs).Logger(),
		stop:     make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a reload. Zero reloads on
// every event.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Start watches the directory holding the file so editors that replace
// the file by rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Info().Msg("watching config")
	go w.loop(ctx)
	return nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		w.mu.Lock()
		if w.pending != nil {
			w.pending.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.log.Debug().Str("op", ev.Op.String()).Msg("config changed")
				w.schedule()
			case ev.Has(fsnotify.Remove):
				w.log.Warn().Msg("config removed")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.clock.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.stop:
		return
	default:
	}
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Error().Err(err).Msg("reload failed")
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}
	w.log.Info().Msg("config reloaded")
	if w.OnReload != nil {
		w.OnReload(cfg)
	}
}
