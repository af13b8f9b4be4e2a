package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceTime = 100 * time.Millisecond

// Watch monitors the config file and invokes onReload with the freshly
// parsed config whenever it changes. Editors typically replace files on
// save, so the parent directory is watched rather than the file itself.
// The watcher shuts down when ctx is canceled.
func Watch(ctx context.Context, path string, onReload func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go watchLoop(ctx, watcher, path, onReload)

	log.Info("watching config for changes", "path", path)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, onReload func(*Config)) {
	defer watcher.Close()

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceTime, func() {
				cfg, err := Load(path)
				if err != nil {
					log.Error("config reload failed", "err", err)
					return
				}
				log.Info("config reloaded", "path", path)
				onReload(cfg)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("config watcher error", "err", err)
		}
	}
}
