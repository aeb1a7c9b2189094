package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/latin"
	"github.com/roach88/latsq/internal/search"
)

// NewFindMOLSCommand creates the find-mols command.
func NewFindMOLSCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find-mols <k>",
		Short: "Find k mutually orthogonal squares containing each stdin square",
		Long: `Read one square per line from standard input and search for a set of k
mutually orthogonal Latin squares whose first member is the input square.
The first set found is written per input; inputs admitting none produce no
output.

Example:
  echo 0123103223013210 | latsq find-mols 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				g := search.NewMOLSGeneratorFromPartial(sq.Partial(), k)
				if m, ok := g.Next(); ok {
					fmt.Fprintln(out, m)
				}
				return nil
			})
		},
	}
}

// FindOrthogonalOptions holds flags for the find-orthogonal command.
type FindOrthogonalOptions struct {
	*RootOptions
	All bool
}

// NewFindOrthogonalCommand creates the find-orthogonal command.
func NewFindOrthogonalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOrthogonalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find-orthogonal",
		Short: "Find orthogonal mates of each stdin square",
		Long: `Read one square per line from standard input and write the square
followed by an orthogonal mate, if one exists. With --all, every mate is
written in search order. Squares without a mate are echoed alone.

Example:
  echo 0123103223013210 | latsq find-orthogonal --all`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				fmt.Fprintln(w, sq)
				g := search.NewMOLSGeneratorFromPartial(sq.Partial(), 2)
				for {
					m, ok := g.Next()
					if !ok {
						return nil
					}
					fmt.Fprintln(w, m.Squares()[1])
					if !opts.All {
						return nil
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "write every mate, not just the first")

	return cmd
}

// MOLSOptions holds flags for the find-all-mols command.
type MOLSOptions struct {
	*RootOptions
	Checkpoint string
	Resume     bool
}

// NewFindAllMOLSCommand creates the find-all-mols command.
func NewFindAllMOLSCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MOLSOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find-all-mols <n> <k>",
		Short: "Stream all sets of k mutually orthogonal squares of order n",
		Long: `Enumerate every set of k mutually orthogonal Latin squares of order n
whose first member is reduced, one set per line in search order.

With --checkpoint, the current search cursor trail is written to the named
file at most once per second; --resume restarts a previous run from that
file and replays the remaining stream.

Example:
  latsq find-all-mols 4 2 --checkpoint run.ckpt
  latsq find-all-mols 4 2 --checkpoint run.ckpt --resume`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.RootOptions)

			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			k, err := parseOrder(args[1])
			if err != nil {
				return err
			}

			var g *search.MOLSGenerator
			if opts.Resume {
				if opts.Checkpoint == "" {
					return NewExitError(ExitCommandError, "--resume requires --checkpoint")
				}
				data, err := os.ReadFile(opts.Checkpoint)
				if err != nil {
					return WrapExitError(ExitCommandError, "reading checkpoint", err)
				}
				g, err = search.ResumeMOLSGenerator(n, k, strings.TrimSpace(string(data)))
				if err != nil {
					return WrapExitError(ExitCommandError, "restoring checkpoint", err)
				}
			} else {
				g = search.NewMOLSGenerator(n, k)
			}

			run := uuid.Must(uuid.NewV7()).String()
			if opts.Checkpoint != "" {
				slog.Info("mols search started", "run", run, "n", n, "k", k,
					"checkpoint", opts.Checkpoint, "resumed", opts.Resume)
				g.OnCheckpoint = func(trail string) {
					if err := os.WriteFile(opts.Checkpoint, []byte(trail+"\n"), 0o644); err != nil {
						slog.Error("writing checkpoint", "run", run, "error", err)
						return
					}
					slog.Debug("checkpoint written", "run", run, "trail", trail)
				}
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			for {
				m, ok := g.Next()
				if !ok {
					return nil
				}
				fmt.Fprintln(w, m)
			}
		},
	}

	cmd.Flags().StringVar(&opts.Checkpoint, "checkpoint", "", "file receiving the search cursor trail")
	cmd.Flags().BoolVar(&opts.Resume, "resume", false, "resume from the checkpoint file")

	return cmd
}
