package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <path>",
	Short: "Browse a document's entries and violations interactively",
	Long: `Open an interactive terminal view of one Q&A document.

Every entry is listed with its violation count. Open an entry to see its
question, answer and the violations attached to it.

Controls:
  ↑/k, ↓/j - Navigate entries
  Enter    - Open entry
  n        - Jump to the next entry with violations
  f        - Show only entries with violations
  r        - Revalidate the document
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) (err error) {
	if args[0] == "-" {
		return errors.New("browse needs a file or github:// reference, not stdin")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(validationService), args[0])
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
