package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/critical"
	"github.com/roach88/latsq/internal/latin"
)

// CSOptions holds flags for the find-scs command.
type CSOptions struct {
	*RootOptions
	Reverse bool
}

// NewFindSCSCommand creates the find-scs command.
func NewFindSCSCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CSOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find-scs",
		Short: "Find a smallest critical set of each stdin square",
		Long: `Read one square per line from standard input and find a smallest
critical set: a partial square that completes uniquely to the input and
loses that property when any entry is removed. Each result is written as
the square followed by the critical set.

With --reverse, candidate sizes are probed from large to small instead of
growing from the known lower bound.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				fmt.Fprintln(out, sq)
				scs, ok := critical.FindSCS(sq, opts.Reverse)
				if !ok {
					return fmt.Errorf("no critical set found for %s", sq)
				}
				fmt.Fprintln(out, scs)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Reverse, "reverse", false, "probe sizes from large to small")

	return cmd
}

// NewFindLCSCommand creates the find-lcs command.
func NewFindLCSCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find-lcs",
		Short: "Find the largest critical sets of each stdin square",
		Long: `Read one square per line from standard input and find its largest
critical sets. Each result is written as the square followed by every
critical set of maximal size.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				fmt.Fprintln(out, sq)
				for _, p := range critical.FindLCS(sq) {
					fmt.Fprintln(out, p)
				}
				return nil
			})
		},
	}
}
