package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the allowed code and diagram languages",
	Long: `Prints the effective code-language allow-list (built-in languages plus
languages.extra from config) and the diagram languages that are checked
against a grammar.`,
	Args: cobra.NoArgs,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	languages, err := settingsService.Languages()
	if err != nil {
		return fmt.Errorf("failed to get languages: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Code languages (%d):\n", len(languages))
	for _, line := range wrap(languages, 72) {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Diagram languages:")
	fmt.Fprintf(out, "  %s\n", strings.Join(domain.DiagramLanguages(), ", "))
	return nil
}

// wrap joins words with ", " into lines no wider than width.
func wrap(words []string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for i, w := range words {
		piece := w
		if i < len(words)-1 {
			piece += ","
		}
		if line.Len() > 0 && line.Len()+1+len(piece) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(piece)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
