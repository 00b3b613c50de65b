package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jonwraymond/compendium/internal/logger"
)

// Watch calls onChange after files under root change, coalescing bursts
// that arrive within debounce. Pack directories created later are watched
// too. It blocks until ctx is done.
func Watch(ctx context.Context, root string, debounce time.Duration, onChange func(context.Context)) error {
	log := logger.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.Add(filepath.Join(root, e.Name())); err != nil {
				return fmt.Errorf("watch %s: %w", e.Name(), err)
			}
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.Add(event.Name); err != nil {
						log.Warn("pack watcher add failed", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if !relevant(event.Name) {
				continue
			}
			log.Debug("pack file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending = true
			timer.Reset(debounce)

		case <-timer.C:
			if pending {
				pending = false
				onChange(ctx)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("pack watcher error", zap.Error(err))
		}
	}
}

func relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return base == MetadataFile || filepath.Ext(base) == ".json" || filepath.Ext(base) == ""
}
