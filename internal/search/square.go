package search

import (
	"github.com/roach88/latsq/internal/constraint"
	"github.com/roach88/latsq/internal/latin"
)

type squareFrame struct {
	grid *constraint.Grid
	cell constraint.Cell
	next int // lowest value not yet tried at cell
}

// SquareGenerator enumerates Latin squares by depth-first search over
// the constraint grid. Each branch owns its own grid clone, so
// backtracking is a plain stack pop.
type SquareGenerator struct {
	stack []squareFrame
}

// NewSquareGenerator enumerates every reduced Latin square of order n
// in row-major lexicographic order.
func NewSquareGenerator(n int) *SquareGenerator {
	return newSquareGenerator(constraint.NewReduced(n))
}

// NewSquareGeneratorFromPartial enumerates every completion of the
// given partial square.
func NewSquareGeneratorFromPartial(p latin.Partial) *SquareGenerator {
	g := constraint.NewFromPartial(p)
	g.FindSingles()
	return newSquareGenerator(g)
}

func newSquareGenerator(g *constraint.Grid) *SquareGenerator {
	cell, _ := g.FirstEmpty()
	return &SquareGenerator{stack: []squareFrame{{grid: g, cell: cell}}}
}

// Next returns the next square, or ok=false when the search space is
// exhausted.
func (s *SquareGenerator) Next() (latin.Square, bool) {
	if len(s.stack) == 0 {
		return latin.Square{}, false
	}

	// The seed may already be fully determined by propagation.
	if s.stack[0].grid.IsSolved() {
		sq, ok := s.stack[0].grid.Square()
		s.stack = nil
		return sq, ok
	}

	for len(s.stack) > 0 {
		f := &s.stack[len(s.stack)-1]
		values := f.grid.Get(f.cell.Row, f.cell.Col)

		descended := false
		for it := values.Iter(); ; {
			v, ok := it.Next()
			if !ok {
				break
			}
			if v < f.next {
				continue
			}
			f.next = v + 1

			next := f.grid.Clone()
			next.Set(f.cell.Row, f.cell.Col, v)
			next.FindSingles()

			if next.IsSolved() {
				sq, _ := next.Square()
				return sq, true
			}
			if cell, ok := next.FirstEmpty(); ok {
				if next.IsSolvable() {
					s.stack = append(s.stack, squareFrame{grid: next, cell: cell})
				}
				descended = true
				break
			}
		}
		if !descended {
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	return latin.Square{}, false
}
