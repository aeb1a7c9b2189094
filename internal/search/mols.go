package search

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/latsq/internal/constraint"
	"github.com/roach88/latsq/internal/latin"
)

type oaFrame struct {
	grid   *constraint.OAGrid
	cell   constraint.Cell
	kids   []*constraint.OAGrid
	cursor int
}

// MOLSGenerator searches for sets of k mutually orthogonal Latin
// squares of order n over the joint orthogonal-array constraints.
// Children of each frame are visited in order of (total possibility
// log, filled cells), descending the most constrained frontier first.
type MOLSGenerator struct {
	stack []oaFrame

	// OnCheckpoint, if set, receives the cursor trail roughly once per
	// second while the search runs; feed it back through
	// ResumeMOLSGenerator to continue an interrupted search.
	OnCheckpoint func(trail string)
	lastSave     time.Time
}

// NewMOLSGenerator searches for k mutually orthogonal squares of
// order n, the first square reduced.
func NewMOLSGenerator(n, k int) *MOLSGenerator {
	return newMOLSGenerator(constraint.NewOAReduced(n, k))
}

// NewMOLSGeneratorFromPartial seeds the first square of the set from a
// partial square.
func NewMOLSGeneratorFromPartial(p latin.Partial, k int) *MOLSGenerator {
	return newMOLSGenerator(constraint.NewOAFromPartial(p, k))
}

func newMOLSGenerator(g *constraint.OAGrid) *MOLSGenerator {
	cell, _ := g.MostConstrainedCell()
	return &MOLSGenerator{stack: []oaFrame{{grid: g, cell: cell}}}
}

// expand builds, propagates, and orders the child states of a frame.
func expand(g *constraint.OAGrid, cell constraint.Cell) []*constraint.OAGrid {
	values := g.ValuesForCell(cell.Row, cell.Col)
	type keyed struct {
		grid   *constraint.OAGrid
		log    uint64
		filled int
	}
	kids := make([]keyed, 0, values.Len())
	for it := values.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		kid := g.Clone()
		kid.SetAndPropagate(cell.Row, cell.Col, t)
		kid.FindSingles()
		kids = append(kids, keyed{kid, uint64(kid.PossibleValuesLog()), kid.FilledCells()})
	}
	slices.SortStableFunc(kids, func(a, b keyed) int {
		if c := cmp.Compare(a.log, b.log); c != 0 {
			return c
		}
		return cmp.Compare(a.filled, b.filled)
	})
	out := make([]*constraint.OAGrid, len(kids))
	for i, k := range kids {
		out[i] = k.grid
	}
	return out
}

// Next returns the next MOLS, or ok=false when the search space is
// exhausted.
func (m *MOLSGenerator) Next() (latin.MOLS, bool) {
	for len(m.stack) > 0 {
		f := &m.stack[len(m.stack)-1]

		if f.grid.IsSolved() {
			sqs, _ := f.grid.Squares()
			m.stack = m.stack[:len(m.stack)-1]
			return latin.NewMOLSUnchecked(sqs), true
		}

		if f.kids == nil {
			f.kids = expand(f.grid, f.cell)
		}

		descended := false
		for f.cursor < len(f.kids) {
			kid := f.kids[f.cursor]
			f.cursor++

			if !kid.IsSolvable() {
				m.maybeCheckpoint()
				continue
			}
			if cell, ok := kid.MostConstrainedCell(); ok {
				m.stack = append(m.stack, oaFrame{grid: kid, cell: cell})
				m.maybeCheckpoint()
				descended = true
				break
			}
			if kid.IsSolved() {
				sqs, _ := kid.Squares()
				return latin.NewMOLSUnchecked(sqs), true
			}
		}
		if !descended {
			m.stack = m.stack[:len(m.stack)-1]
		}
	}
	return latin.MOLS{}, false
}

// Trail renders the DFS position as a comma-separated list, one index
// per stack frame: the child descended into for interior frames, and
// the cursor (next child to visit) for the innermost frame. The
// innermost cursor may name a solved or dead child already consumed,
// or sit one past the last child.
func (m *MOLSGenerator) Trail() string {
	parts := make([]string, len(m.stack))
	for i, f := range m.stack {
		c := f.cursor
		if i < len(m.stack)-1 {
			c--
		}
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func (m *MOLSGenerator) maybeCheckpoint() {
	if m.OnCheckpoint == nil || time.Since(m.lastSave) < time.Second {
		return
	}
	m.lastSave = time.Now()
	m.OnCheckpoint(m.Trail())
}

// ResumeMOLSGenerator rebuilds a reduced search of order n over k
// squares from a cursor trail produced by Trail. The resumed generator
// continues the stream exactly where the trail was captured.
func ResumeMOLSGenerator(n, k int, trail string) (*MOLSGenerator, error) {
	m := NewMOLSGenerator(n, k)
	fields := strings.Split(strings.TrimSpace(trail), ",")
	for fi, field := range fields {
		idx, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("search: parse checkpoint index %q: %w", field, err)
		}
		f := &m.stack[len(m.stack)-1]
		f.kids = expand(f.grid, f.cell)

		if fi == len(fields)-1 {
			// the innermost index is a cursor, not a descent: it may sit
			// one past the last child when the frame is exhausted
			if idx < 0 || idx > len(f.kids) {
				return nil, fmt.Errorf("search: checkpoint cursor %d out of range 0..%d", idx, len(f.kids))
			}
			f.cursor = idx
			break
		}

		if idx < 0 || idx >= len(f.kids) {
			return nil, fmt.Errorf("search: checkpoint index %d out of range 0..%d", idx, len(f.kids)-1)
		}
		kid := f.kids[idx]
		f.cursor = idx + 1
		cell, ok := kid.MostConstrainedCell()
		if !ok {
			return nil, fmt.Errorf("search: checkpoint descends through a leaf state")
		}
		m.stack = append(m.stack, oaFrame{grid: kid, cell: cell})
	}
	return m, nil
}
