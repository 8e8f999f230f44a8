package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/report"
)

var (
	historyLimit  int
	historyDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded validation runs",
	Long: `Lists recorded validation runs, newest first. With a run ID (or a unique
prefix of at least four characters) prints that run's violations.

Runs are recorded by "qalint validate --record", or on every validation
when history.enabled is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "delete the given run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if historyDelete {
			return errors.New("--delete needs a run ID")
		}
		runs, err := historyService.List(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCHECKED\tSOURCE\tENTRIES\tVIOLATIONS")
		for i := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
				shortID(runs[i].ID),
				runs[i].CheckedAt.Local().Format(time.DateTime),
				runs[i].Source,
				runs[i].Entries,
				len(runs[i].Violations))
		}
		return w.Flush()
	}

	run, err := historyService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", args[0], err)
	}

	if historyDelete {
		if err := historyService.Delete(ctx, run.ID); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		fmt.Fprintf(out, "Deleted run %s.\n", run.ID)
		return nil
	}

	fmt.Fprintf(out, "Run:      %s\n", run.ID)
	fmt.Fprintf(out, "Source:   %s\n", run.Source)
	fmt.Fprintf(out, "Checked:  %s\n", run.CheckedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Sections: %d\n", run.Sections)
	fmt.Fprintf(out, "Entries:  %d\n", run.Entries)
	fmt.Fprintln(out)
	if run.OK() {
		fmt.Fprintln(out, "No violations.")
		return nil
	}
	fmt.Fprintf(out, "Violations (%d):\n", len(run.Violations))
	for _, v := range run.Violations {
		fmt.Fprintf(out, "  %s\n", report.Line(run.Source, v))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
