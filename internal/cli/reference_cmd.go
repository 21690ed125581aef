package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"avenstudio/internal/reference"
)

func newReferenceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print static UK self-build reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "phases",
		Short: "List build phases with typical durations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDER\tID\tNAME\tWEEKS")
			for _, p := range reference.Phases() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.Order, p.ID, p.Name, p.TypicalDurationWeeks)
			}
			fmt.Fprintf(w, "\t\tTotal\t%d\n", reference.EstimateDurationWeeks())
			return w.Flush()
		},
	})
	return cmd
}
