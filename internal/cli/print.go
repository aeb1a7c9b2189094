package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/latin"
)

// NewPrettyPrintCommand creates the pretty-print command.
func NewPrettyPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pretty-print",
		Short: "Render squares from stdin as ASCII grids",
		Long: `Read one square or partial square per line from standard input and
render each as a boxed grid. Empty cells of partial squares are left blank.

Example:
  echo 012120201 | latsq pretty-print`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ForEachPartial(cmd.InOrStdin(), func(p latin.Partial) error {
				fmt.Fprintln(cmd.OutOrStdout(), p.Pretty())
				return nil
			})
		},
	}
}

// NewNormalizeParatopyCommand creates the normalize-paratopy command.
func NewNormalizeParatopyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-paratopy",
		Short: "Emit the main-class form of each stdin square",
		Long: `Read one square per line from standard input and write its main-class
representative: the lexicographic minimum over the reduced orbit of all six
conjugates under row, column and symbol permutations.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				fmt.Fprintln(cmd.OutOrStdout(), sq.MainClass(lookupFor(sq.N())))
				return nil
			})
		},
	}
}

// NewNormalizeMOLSCommand creates the normalize-mols command.
func NewNormalizeMOLSCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-mols",
		Short: "Emit the main-class form of each stdin MOLS set",
		Long: `Read one set of mutually orthogonal squares per line, members joined by
'-', and write its main-class representative: the minimum over all choices
of two of the k+2 orthogonal-array coordinates for the row and column
roles, followed by isotopy canonicalisation of the whole family.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ForEachMOLS(cmd.InOrStdin(), func(m latin.MOLS) error {
				fmt.Fprintln(cmd.OutOrStdout(), m.MainClassSet(lookupFor(m.N())))
				return nil
			})
		},
	}
}
