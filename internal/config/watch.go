package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/master-moose/aurorakvm/internal/topology"
)

const debounceInterval = 200 * time.Millisecond

// Watch reloads path into topo whenever the file changes on disk,
// debounced so editors that write via rename-then-create don't trigger a
// burst of reloads. Runs until ctx is canceled; errors from individual
// reload attempts are logged, not returned, so one bad edit doesn't kill
// the watcher.
func Watch(ctx context.Context, topo *topology.Topology, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	reload := func() {
		if _, _, err := Reload(topo, path); err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
		} else {
			log.Info("config reloaded", "path", path)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}
