package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Shows or changes keys in the configuration file (~/.qalint/config.toml).

Keys:
  languages.extra             extra allowed code languages (comma separated)
  rules.disabled              rule ids to skip (comma separated)
  rules.require_code_language report code blocks without a language tag
  rules.code_syntax           parse code blocks with tree-sitter (cgo builds)
  answer.ignore_patterns      regular expressions for answer lines to ignore
  history.enabled             record every validation run
  github.token                token for github:// sources
  output.format               default report format: text, json or yaml
  output.color                colour mode: auto, always or never
  batch.concurrency           documents validated in parallel (0 = CPUs)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Long: `Sets a configuration key. List values are comma separated; an empty
value clears the key back to its default.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	out := cmd.OutOrStdout()

	if path := settingsService.Path(); path != "" {
		fmt.Fprintf(out, "# %s\n", path)
	}
	for _, key := range settingsService.Keys() {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(out, "%-28s %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	shown, err := settingsService.Value(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, shown)
	return nil
}
