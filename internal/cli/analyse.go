package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/latin"
)

// NewAnalyseCommand creates the analyse command.
func NewAnalyseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyse",
		Short: "Report structural properties of each stdin square",
		Long: `Read one square per line from standard input and report its transversal
count, the cycle structures of its row, column and symbol pairs, and
whether it is the canonical representative of its isotopy and main class.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				fmt.Fprint(out, analysisReport(sq))
				return nil
			})
		},
	}
}

func cycleCounts(w *strings.Builder, label string, cycles [][]int) {
	counts := map[string]int{}
	for _, c := range cycles {
		counts[fmt.Sprint(c)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %d\n", k, counts[k])
	}
	w.WriteByte('\n')
}

func analysisReport(sq latin.Square) string {
	var w strings.Builder
	lookup := lookupFor(sq.N())

	w.WriteString(sq.Pretty())
	w.WriteByte('\n')

	fmt.Fprintf(&w, "Transversals: %d\n\n", sq.Transversals())

	cycleCounts(&w, "Row cycles", sq.RowCycles())
	cycleCounts(&w, "Col cycles", sq.ColCycles())
	cycleCounts(&w, "Val cycles", sq.ValCycles())

	if iso := sq.IsotopyClass(lookup); iso.Equal(sq) {
		w.WriteString("Is isotopy class reduced\n")
	} else {
		fmt.Fprintf(&w, "Isotopy class: %s\n", iso)
	}
	if main := sq.MainClass(lookup); main.Equal(sq) {
		w.WriteString("Is main class reduced\n")
	} else {
		fmt.Fprintf(&w, "Main class: %s\n", main)
	}
	w.WriteByte('\n')
	return w.String()
}
