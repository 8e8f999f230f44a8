package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/logger"
	"github.com/custodia-labs/qalint/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>...",
	Short: "Re-validate documents whenever they change",
	Long: `Validates the given files or directories, then validates each document
again every time it is written, until interrupted with Ctrl+C.

Only local paths can be watched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if validationService == nil || newWatcher == nil {
		return errors.New("watch service not configured")
	}
	for _, arg := range args {
		if arg == "-" || strings.Contains(arg, "://") {
			return fmt.Errorf("%w: cannot watch %s, only local paths", domain.ErrInvalidInput, arg)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	printer := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings.Color)

	refs, err := validationService.Expand(ctx, args)
	if err != nil {
		return err
	}
	reports, err := validationService.ValidateBatch(ctx, refs)
	if err != nil {
		return err
	}
	if err := printer.Print(reports, domain.OutputText); err != nil {
		return err
	}

	watcher := newWatcher()
	defer watcher.Close()

	changes, err := watcher.Watch(ctx, args)
	if err != nil {
		return fmt.Errorf("watching %v: %w", args, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d path(s), press Ctrl+C to stop.\n", len(args))

	return watchLoop(ctx, cmd, printer, changes)
}

func watchLoop(ctx context.Context, cmd *cobra.Command, printer *report.Printer, changes <-chan domain.FileChange) error {
	for change := range changes {
		logger.Debug("%s %s", change.Type, change.Path)
		if change.Type == domain.ChangeDeleted {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: removed\n", change.Path)
			continue
		}

		r, err := validationService.ValidateSource(ctx, change.Path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		if err := printer.Print([]*domain.Report{r}, domain.OutputText); err != nil {
			return err
		}
	}
	return nil
}
