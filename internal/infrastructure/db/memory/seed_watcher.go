package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultDebounce = 200 * time.Millisecond

// SeedWatcher reloads a TrackerRepository whenever its seed file changes.
// The parent directory is watched so that editors which save by renaming a
// temporary file are picked up too.
type SeedWatcher struct {
	repo     *TrackerRepository
	path     string
	debounce time.Duration
	log      zerolog.Logger

	// reloaded receives the tracker count after every successful reload.
	// Nil outside tests.
	reloaded chan int
}

func NewSeedWatcher(repo *TrackerRepository, path string, log zerolog.Logger) *SeedWatcher {
	return &SeedWatcher{
		repo:     repo,
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		log:      log,
	}
}

// Run blocks until ctx is cancelled.
func (w *SeedWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("seed watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("seed watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Info().Str("path", w.path).Msg("watching seed file")

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("seed watcher: events channel closed")
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("seed watcher: errors channel closed")
			}
			w.log.Warn().Err(err).Msg("seed watcher error")
		}
	}
}

func (w *SeedWatcher) reload() {
	n, err := w.repo.Reload(w.path)
	if err != nil {
		w.log.Error().Err(err).Str("path", w.path).Msg("seed reload failed, keeping previous trackers")
		return
	}
	w.log.Info().Int("trackers", n).Msg("seed file reloaded")
	if w.reloaded != nil {
		select {
		case w.reloaded <- n:
		default:
		}
	}
}
