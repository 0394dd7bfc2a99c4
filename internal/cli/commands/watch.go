package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce collapses bursts of events from a single save.
const watchDebounce = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-check a file every time it changes",
		Long: `Check a file, then keep watching it and check it again after every
write. Each run registers the file as a new source. Stop with Ctrl+C.`,
		Example: `  casm watch main.casm`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), NewCommandContext(cmd), args[0])
		},
	}
}

func runWatch(ctx context.Context, c *CommandContext, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	c.watchCheck(ctx, path)
	c.Logger.Info("watching for changes", slog.String("path", abs))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(watchDebounce)
			fire = debounce.C

		case <-fire:
			fire = nil
			c.Logger.Debug("change detected", slog.String("path", abs))
			c.watchCheck(ctx, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// watchCheck runs one check pass. Failures are printed, never returned, so
// the watch keeps going.
func (c *CommandContext) watchCheck(ctx context.Context, path string) {
	results, err := c.LexPaths(ctx, []string{path})
	if err != nil {
		c.ReportError(err)
		return
	}
	_ = c.reportCheck(results)
}
