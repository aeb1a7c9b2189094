package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the latsq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "latsq",
		Short: "latsq - Latin square toolkit",
		Long:  "Enumeration, canonicalisation and critical-set search for Latin squares and MOLS.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewPrettyPrintCommand(opts))
	cmd.AddCommand(NewNormalizeParatopyCommand(opts))
	cmd.AddCommand(NewNormalizeMOLSCommand(opts))
	cmd.AddCommand(NewGenerateLatinSquaresCommand(opts))
	cmd.AddCommand(NewGenerateIsotopyClassesCommand(opts))
	cmd.AddCommand(NewGenerateParatopyClassesCommand(opts))
	cmd.AddCommand(NewFindSCSCommand(opts))
	cmd.AddCommand(NewFindLCSCommand(opts))
	cmd.AddCommand(NewFindMOLSCommand(opts))
	cmd.AddCommand(NewFindAllMOLSCommand(opts))
	cmd.AddCommand(NewFindOrthogonalCommand(opts))
	cmd.AddCommand(NewFindAllCSCommand(opts))
	cmd.AddCommand(NewDecodeCSCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewRandomCommand(opts))
	cmd.AddCommand(NewShuffleCommand(opts))
	cmd.AddCommand(NewAnalyseCommand(opts))
	cmd.AddCommand(NewTestingCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setupLogging configures the default slog handler on stderr, at debug
// level when verbose is set.
func setupLogging(opts *RootOptions) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
