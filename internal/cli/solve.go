package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/latin"
	"github.com/roach88/latsq/internal/search"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Stream all completions of each stdin partial square",
		Long: `Read one partial square per line from standard input and write every
Latin square completing it, one per line.

Example:
  echo '0123....23013210' | latsq solve`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			return ForEachPartial(cmd.InOrStdin(), func(p latin.Partial) error {
				g := search.NewSquareGeneratorFromPartial(p)
				for {
					sq, ok := g.Next()
					if !ok {
						return nil
					}
					fmt.Fprintln(w, sq)
				}
			})
		},
	}
}
