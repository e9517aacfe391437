package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/engine"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/ontology/document"
	"github.com/conduit-lang/ontogen/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch [ontology]",
		Short: "Regenerate whenever the ontology changes",
		Long: `Generate once, then watch the ontology document and every document it
imports. Each save triggers a new generation; saves arriving while one
runs are batched into the next run.

Errors are reported and the watcher keeps running, so a half-edited
document does not end the session.`,
		Example: `  ontogen watch zoo.yaml
  ontogen watch --abstract --delay 300ms`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd, cfg, delay)
		},
	}

	addGenerationFlags(cmd)
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "Quiet period before regenerating")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, delay time.Duration) error {
	fs := afero.NewOsFs()
	loader := document.NewLoader(fs)
	out := cmd.OutOrStdout()
	nc := noColor(cmd)

	files, err := loader.Files(cfg.Ontology)
	if err != nil {
		return err
	}

	var watcher *watch.FileWatcher
	regenerate := func(changed []string) error {
		if len(changed) > 0 {
			color.New(color.FgCyan).Fprintf(out, "Changed: %v\n", changed)
		}
		result, err := engine.Run(ctx, fs, engineOptions(cfg))
		if err != nil {
			ui.WriteError(cmd.ErrOrStderr(), err, nc)
			return nil
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Generated %d files in %s", len(result.Written), result.Duration.Round(time.Millisecond)), nc))

		// Imports may have changed.
		if watcher != nil {
			if files, err := loader.Files(cfg.Ontology); err == nil {
				if err := watcher.SetFiles(files); err != nil {
					logger.Warnw("Updating watched files failed", "error", err)
				}
			}
		}
		return nil
	}

	if err := regenerate(nil); err != nil {
		return err
	}

	watcher, err = watch.NewFileWatcher(files, delay, regenerate)
	if err != nil {
		return err
	}
	watcher.Start()
	logger.Infow("Watching ontology", "files", watcher.Files())

	fmt.Fprintln(out)
	color.New(color.FgCyan, color.Bold).Fprintf(out, "Watching %d file(s)\n", len(files))
	color.New(color.FgYellow).Fprintln(out, "Press Ctrl+C to stop")

	<-ctx.Done()
	fmt.Fprintln(out, "\nShutting down...")
	return watcher.Stop()
}
