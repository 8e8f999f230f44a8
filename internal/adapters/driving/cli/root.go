// Package cli implements the qalint command line interface with cobra.
//
// Commands reach the core through package-level driving ports. The
// binary installs a [Bootstrap] that builds them from the global flags;
// tests assign them directly.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
	"github.com/custodia-labs/qalint/internal/logger"
)

// Options are the global flag values handed to a Bootstrap.
type Options struct {
	// ConfigDir overrides the configuration directory (~/.qalint).
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services are the ports commands run against.
type Services struct {
	Validation driving.ValidationService
	Settings   driving.SettingsService
	Format     driving.FormatService

	// History may be nil when no run store is available.
	History driving.HistoryService

	// NewWatcher creates a document watcher for the watch command.
	NewWatcher func() driven.DocumentWatcher
}

// Bootstrap builds services for a command invocation. The returned
// close function is called once the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	version = "dev"

	verbose   bool
	configDir string

	validationService driving.ValidationService
	settingsService   driving.SettingsService
	formatService     driving.FormatService
	historyService    driving.HistoryService
	newWatcher        func() driven.DocumentWatcher

	bootstrap Bootstrap
	closers   []func() error
)

var rootCmd = &cobra.Command{
	Use:   "qalint",
	Short: "Validate interview-style Q&A Markdown documents",
	Long: `qalint checks Q&A Markdown documents (numbered questions with
collapsible answers, grouped into sections) against an explicit document
grammar and reports every violation in one pass.

Violations are printed one per line as

  path:line: entry N: rule: message

and the exit status is 1 when any document has violations or cannot be read.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.qalint)")
}

// SetServices installs services directly, bypassing any Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	validationService = s.Validation
	settingsService = s.Settings
	formatService = s.Format
	historyService = s.History
	newWatcher = s.NewWatcher
}

// SetBootstrap installs the service factory used before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeServices(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	services, closeFn, err := bootstrap(cmd.Context(), Options{
		ConfigDir: configDir,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	if closeFn != nil {
		closers = append(closers, closeFn)
	}
	return nil
}

func closeServices() error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	closers = nil
	return errors.Join(errs...)
}
