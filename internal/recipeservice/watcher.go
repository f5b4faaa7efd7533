package recipeservice

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marnhus/skillet/internal/store"
	"github.com/marnhus/skillet/internal/uploads"
)

// WatchUploads starts an fsnotify watcher on the uploads directory and
// processes file removal events until ctx is cancelled. When a photo
// file disappears from disk, any recipe still pointing at it has its
// photo reference cleared so clients stop requesting a 404ing file.
// cb (if non-nil) is called after each cleared reference.
func WatchUploads(ctx context.Context, st store.RecipeStore, dir *uploads.Dir, logger *slog.Logger, cb func(kind, filename string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir.Root()); err != nil {
		return err
	}

	logger.Info("uploads watcher: started", slog.String("root", dir.Root()))

	for {
		select {
		case <-ctx.Done():
			logger.Info("uploads watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Rename fires on the old path only, so treat it like a removal.
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".skillet-tmp-") {
				continue
			}

			n, clearErr := st.ClearPhoto(name, time.Now().UnixMilli())
			if clearErr != nil {
				logger.Warn("uploads watcher: clear photo failed",
					slog.String("filename", name),
					slog.String("error", clearErr.Error()))
				continue
			}
			if n == 0 {
				continue
			}
			logger.Debug("uploads watcher: cleared dangling photo",
				slog.String("filename", name),
				slog.Int64("recipes", n))
			if cb != nil {
				cb(EventPhotoRemoved, name)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("uploads watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
