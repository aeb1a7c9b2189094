package cli

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/critical"
	"github.com/roach88/latsq/internal/latin"
)

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <n>",
		Short: "Pack stdin squares of order n into the binary row-rank form",
		Long: `Read one square of order n per line from standard input and write its
binary form to standard output: one little-endian 32-bit permutation rank
per row, 4n bytes per square. Decode with 'latsq decode'.`,
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
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				if sq.N() != n {
					return fmt.Errorf("square of order %d, want %d", sq.N(), n)
				}
				_, err := w.Write(sq.AppendCompressed(nil))
				return err
			})
		},
	}
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <n>",
		Short: "Unpack binary row-rank squares of order n from stdin",
		Long: `Read the binary form written by 'latsq encode' from standard input and
write one square of order n per line.`,
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

			r := bufio.NewReader(cmd.InOrStdin())
			buf := make([]byte, latin.CompressedSize(n))
			for {
				if _, err := io.ReadFull(r, buf); err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return WrapExitError(ExitCommandError, "reading compressed input", err)
				}
				sq, err := latin.DecodeCompressed(n, buf)
				if err != nil {
					return WrapExitError(ExitCommandError, "decoding square", err)
				}
				fmt.Fprintln(w, sq)
			}
		},
	}
}

// maskBytes is the byte length of a critical-set cell mask of order n.
func maskBytes(n int) int { return (n*n + 7) / 8 }

// NewFindAllCSCommand creates the find-all-cs command.
func NewFindAllCSCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find-all-cs",
		Short: "Stream every critical set of each stdin square in binary form",
		Long: `Read one square per line from standard input and enumerate all its
critical sets. Each set is written to standard output as its cell mask,
little-endian, ceil(n*n/8) bytes per set. Decode with 'latsq decode-cs'.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			return ForEachSquare(cmd.InOrStdin(), func(sq latin.Square) error {
				size := maskBytes(sq.N())
				var b [16]byte
				for _, p := range critical.CriticalSets(sq) {
					lo, hi := p.FilledMask().Words()
					binary.LittleEndian.PutUint64(b[0:8], lo)
					binary.LittleEndian.PutUint64(b[8:16], hi)
					if _, err := w.Write(b[:size]); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

// NewDecodeCSCommand creates the decode-cs command.
func NewDecodeCSCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-cs <square>",
		Short: "Render binary critical-set masks of a square as partial squares",
		Long: `Read the cell masks written by 'latsq find-all-cs' from standard input
and write each as a partial square of the given square, one per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sq, err := latin.ParseSquare(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "parsing square", err)
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			r := bufio.NewReader(cmd.InOrStdin())
			buf := make([]byte, maskBytes(sq.N()))
			var b [16]byte
			for {
				if _, err := io.ReadFull(r, buf); err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return WrapExitError(ExitCommandError, "reading mask input", err)
				}
				copy(b[:], buf)
				mask := bitset.FromWords(
					binary.LittleEndian.Uint64(b[0:8]),
					binary.LittleEndian.Uint64(b[8:16]),
				)
				fmt.Fprintln(w, sq.Mask(mask))
			}
		},
	}
}
