package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/search"
)

// NewGenerateLatinSquaresCommand creates the generate-latin-squares command.
func NewGenerateLatinSquaresCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-latin-squares <n>",
		Short: "Stream all reduced Latin squares of order n",
		Long: `Enumerate every reduced Latin square of order n (first row and first
column in natural order), one per line, in lexicographic order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			g := search.NewSquareGenerator(n)
			for {
				sq, ok := g.Next()
				if !ok {
					return nil
				}
				fmt.Fprintln(w, sq)
			}
		},
	}
}

// NewGenerateIsotopyClassesCommand creates the generate-isotopy-classes
// command.
func NewGenerateIsotopyClassesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate-isotopy-classes <n>",
		Short: "Stream isotopy-class representatives of order n",
		Long: `Enumerate one canonical representative per isotopy class of order n,
one per line. The stream is duplicate-free.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			g := search.NewIsotopyClassGenerator(lookupFor(n))
			for {
				sq, ok := g.Next()
				if !ok {
					return nil
				}
				fmt.Fprintln(w, sq)
			}
		},
	}
}
