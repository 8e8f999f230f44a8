package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

var renumberWrite bool

var renumberCmd = &cobra.Command{
	Use:   "renumber <path>",
	Short: "Rewrite entry ordinals to be contiguous",
	Long: `Rewrites the ordinal of every entry so they run 1..N in document order.
Everything else in the document is left byte for byte.

The result is printed to stdout, or written back to the file with --write.`,
	Args: cobra.ExactArgs(1),
	RunE: runRenumber,
}

func init() {
	renumberCmd.Flags().BoolVarP(&renumberWrite, "write", "w", false, "write the result back to the file")
	rootCmd.AddCommand(renumberCmd)
}

func runRenumber(cmd *cobra.Command, args []string) error {
	if formatService == nil || validationService == nil {
		return errors.New("format service not configured")
	}
	ctx := cmd.Context()
	ref := args[0]

	raw, err := validationService.Load(ctx, ref)
	if err != nil {
		return err
	}

	out, changed, err := formatService.Renumber(ctx, raw.URI, raw.Content)
	if err != nil {
		return fmt.Errorf("renumber %s: %w", ref, err)
	}

	if !renumberWrite {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	info, err := os.Stat(ref)
	if err != nil {
		return fmt.Errorf("%w: --write needs a local file: %w", domain.ErrInvalidInput, err)
	}
	if changed == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: already numbered 1..N\n", ref)
		return nil
	}
	if err := os.WriteFile(ref, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", ref, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: renumbered %d entries\n", ref, changed)
	return nil
}
