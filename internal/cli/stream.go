package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/latin"
)

// forEachLine calls fn for every non-empty input line. Parse failures
// inside fn abort the walk with a command error carrying the line
// number.
func forEachLine(r io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("line %d", lineNo), err)
		}
	}
	if err := sc.Err(); err != nil {
		return WrapExitError(ExitCommandError, "reading input", err)
	}
	return nil
}

// ForEachSquare parses one complete square per input line.
func ForEachSquare(r io.Reader, fn func(latin.Square) error) error {
	return forEachLine(r, func(line string) error {
		sq, err := latin.ParseSquare(line)
		if err != nil {
			return err
		}
		return fn(sq)
	})
}

// ForEachPartial parses one partial square per input line.
func ForEachPartial(r io.Reader, fn func(latin.Partial) error) error {
	return forEachLine(r, func(line string) error {
		p, err := latin.ParsePartial(line)
		if err != nil {
			return err
		}
		return fn(p)
	})
}

// ForEachMOLS parses one MOLS set per input line.
func ForEachMOLS(r io.Reader, fn func(latin.MOLS) error) error {
	return forEachLine(r, func(line string) error {
		m, err := latin.ParseMOLS(line)
		if err != nil {
			return err
		}
		return fn(m)
	})
}

// parseOrder validates a square-order argument.
func parseOrder(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid order %q", arg))
	}
	if n < 1 || n > latin.MaxOrder {
		return 0, NewExitError(ExitCommandError,
			fmt.Sprintf("order %d out of range [1, %d]", n, latin.MaxOrder))
	}
	return n, nil
}

var (
	lookupMu    sync.Mutex
	lookupCache = map[int]*cycles.Lookup{}
)

// lookupFor returns the process-wide cycle-structure table for order n.
// Tables are immutable once built and shared by every generator.
func lookupFor(n int) *cycles.Lookup {
	lookupMu.Lock()
	defer lookupMu.Unlock()
	l, ok := lookupCache[n]
	if !ok {
		l = cycles.NewLookup(n)
		lookupCache[n] = l
	}
	return l
}
