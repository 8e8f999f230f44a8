package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/logger"
	"github.com/custodia-labs/qalint/internal/report"
)

var (
	validateFormat string
	validateColor  string
	validateRecord bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate Q&A documents",
	Long: `Validates each document and prints every violation.

A path may be a file, a directory (every Markdown file below it), "-" for
standard input, or a GitHub reference:

  github://owner/repo/path/to/questions.md[@ref]
  github://owner/repo[@ref]      (every Markdown file in the repository)

Violations go to stderr one per line. A clean document prints a success
line to stdout. The exit status is 1 if any document has violations or
cannot be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
	validateCmd.Flags().StringVar(&validateColor, "color", "", "colour mode: auto, always or never (default from config)")
	validateCmd.Flags().BoolVar(&validateRecord, "record", false, "store the run in history")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}
	ctx := cmd.Context()

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	format, err := resolveFormat(validateFormat, settings)
	if err != nil {
		return err
	}
	color, err := resolveColor(validateColor, settings)
	if err != nil {
		return err
	}

	refs, err := validationService.Expand(ctx, args)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w: no documents found in %v", domain.ErrInvalidInput, args)
	}

	reports, err := validationService.ValidateBatch(ctx, refs)
	if err != nil {
		return err
	}

	if validateRecord || settings.HistoryEnabled {
		recordRuns(ctx, reports)
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), color)
	if err := printer.Print(reports, format); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.OK() {
			return domain.ErrViolationsFound
		}
	}
	return nil
}

// recordRuns stores reports in history. Failures are logged and do not
// change the validation outcome.
func recordRuns(ctx context.Context, reports []*domain.Report) {
	if historyService == nil {
		logger.Warn("history is not available, runs are not recorded")
		return
	}
	for _, r := range reports {
		if err := historyService.Record(ctx, r); err != nil {
			logger.Warn("recording run for %s: %v", r.Source, err)
		}
	}
}

func currentSettings() (*domain.Settings, error) {
	if settingsService == nil {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func resolveFormat(flag string, settings *domain.Settings) (domain.OutputFormat, error) {
	format := settings.Output
	if flag != "" {
		format = domain.OutputFormat(flag)
	}
	if format == "" {
		return domain.OutputText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w: unknown format %q (want text, json or yaml)", domain.ErrInvalidInput, format)
	}
	return format, nil
}

func resolveColor(flag string, settings *domain.Settings) (domain.ColorMode, error) {
	mode := settings.Color
	if flag != "" {
		mode = domain.ColorMode(flag)
	}
	if mode == "" {
		return domain.ColorAuto, nil
	}
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: unknown colour mode %q (want auto, always or never)", domain.ErrInvalidInput, mode)
	}
	return mode, nil
}
