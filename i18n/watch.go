// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

// reloadDelay coalesces the burst of events an editor or lrelease produces
// when saving a catalog into a single reload.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the catalogs in dir whenever a catalog file there is created,
// written, removed or renamed. It blocks until ctx is done.
//
// If ready is non-nil, a value is sent after the watcher is fully set up,
// allowing callers to synchronize without time.Sleep.
//
// A reload that fails keeps the previous catalogs active.
func Watch(ctx context.Context, dir string, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	Logger.Info().Str("dir", dir).Msg("Watching catalogs for changes")

	if ready != nil {
		ready <- struct{}{}
	}

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !ts.IsCatalogFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			Logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Catalog changed")

			pending = time.After(reloadDelay)
		case <-pending:
			pending = nil

			if err := Reload(ctx, os.DirFS(dir), "."); err != nil {
				Logger.Error().Err(err).Str("dir", dir).Msg("Failed to reload catalogs")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			Logger.Warn().Err(err).Msg("Catalog watcher error")
		}
	}
}
