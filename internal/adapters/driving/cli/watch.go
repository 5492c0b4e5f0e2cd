package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
	"github.com/custodia-labs/elnmap/internal/logger"
)

const defaultDebounce = 250 * time.Millisecond

// watchImport re-runs the import whenever one of paths changes, until the
// command context is cancelled. Import failures are printed and the watch
// continues.
func watchImport(cmd *cobra.Command, req driving.ImportRequest, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		// Editors save by rename, so watch the directory rather than the file.
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = struct{}{}
	}

	cmd.Printf("Watching %d file(s) for changes. Press Ctrl+C to stop.\n", len(targets))

	ctx := cmd.Context()
	debounce := watchDebounce()
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, targets) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			timer.Reset(debounce)
		case <-timer.C:
			if err := importOnce(cmd, req); err != nil {
				printImportError(cmd, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// relevantEvent reports whether event changes the content of a watched file.
func relevantEvent(event fsnotify.Event, targets map[string]struct{}) bool {
	if _, ok := targets[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func watchDebounce() time.Duration {
	if configStore == nil {
		return defaultDebounce
	}
	if ms := configStore.GetInt("watch.debounce_ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultDebounce
}
