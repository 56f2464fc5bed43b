package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/scenario"
)

// defaultDebounce coalesces the burst of events an editor produces on save.
const defaultDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var format string
	debounce := defaultDebounce

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-resolve a scenario file every time it changes",
		Long: `Resolve a scenario file and keep resolving it whenever it is saved.

Rapid saves are coalesced; only the latest contents are printed. Invalid
files are reported and the watch continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text or json)", format)
			}
			out := cmd.OutOrStdout()
			logger := loggerFromContext(cmd.Context())
			logger.Info("watching", "file", args[0])
			return watchScenarios(cmd.Context(), args[0], debounce, func(scenarios []scenario.Scenario, err error) {
				printWatchResult(out, logger, format, scenarios, err)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text, json")
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before re-resolving")

	return cmd
}

func printWatchResult(w io.Writer, logger *log.Logger, format string, scenarios []scenario.Scenario, err error) {
	if err != nil {
		logger.Error("reload failed", "err", errors.UserMessage(err))
		return
	}
	results := resolveAll(scenarios)
	if err := writeResults(w, format, results); err != nil {
		logger.Error("write results", "err", err)
	}
}

// watchScenarios loads path once, then again after every change, and hands
// each outcome to onLoad. It blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temp file over the original keep being seen.
func watchScenarios(ctx context.Context, path string, debounce time.Duration, onLoad func([]scenario.Scenario, error)) error {
	if _, err := scenario.FormatOf(path); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(abs))
	}

	logger := loggerFromContext(ctx)
	onLoad(scenario.Load(abs))

	// fire is nil while no reload is pending.
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file event", "op", event.Op.String(), "file", event.Name)
			// Restart the quiet period; the newest event wins.
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-fire:
			fire = nil
			onLoad(scenario.Load(abs))
		}
	}
}
