// Package constraint implements the possibility-set engines the
// backtracking generators branch over: a per-cell symbol grid for a
// single Latin square and a joint tuple grid for k mutually orthogonal
// squares.
package constraint

import (
	"fmt"
	"slices"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/latin"
)

// Cell addresses a grid position.
type Cell struct {
	Row, Col int
}

// Grid holds one possibility set per cell of a single square. A cell
// with an empty set is in contradiction; a singleton set is determined.
// Mutated only through Set and the inference passes; search branches
// take clones.
type Grid struct {
	n     int
	cells []bitset.Set16
}

// New returns the unconstrained grid of order n.
func New(n int) *Grid {
	cells := make([]bitset.Set16, n*n)
	full := bitset.All16LessThan(n)
	for i := range cells {
		cells[i] = full
	}
	return &Grid{n: n, cells: cells}
}

// NewFirstRow returns a grid with row 0 fixed to the identity.
func NewFirstRow(n int) *Grid {
	g := New(n)
	for j := 0; j < n; j++ {
		g.Set(0, j, j)
	}
	return g
}

// NewReduced returns a grid with row 0 and column 0 fixed to the
// identity.
func NewReduced(n int) *Grid {
	g := New(n)
	for i := 0; i < n; i++ {
		g.Set(0, i, i)
		g.Set(i, 0, i)
	}
	return g
}

// NewFromPartial seeds a grid with the filled cells of a partial
// square. A partial whose clues contradict each other under propagation
// yields an unsolvable grid rather than a panic.
func NewFromPartial(p latin.Partial) *Grid {
	g := New(p.N())
	for i := 0; i < p.N(); i++ {
		for j := 0; j < p.N(); j++ {
			v, ok := p.Get(i, j)
			if !ok {
				continue
			}
			if !g.Get(i, j).Contains(v) {
				g.cells[i*g.n+j] = bitset.Set16(0)
				return g
			}
			g.Set(i, j, v)
		}
	}
	return g
}

// N returns the order.
func (g *Grid) N() int { return g.n }

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	return &Grid{n: g.n, cells: slices.Clone(g.cells)}
}

// Get returns the possibility set of cell (i, j).
func (g *Grid) Get(i, j int) bitset.Set16 { return g.cells[i*g.n+j] }

// IsSet reports whether cell (i, j) is determined.
func (g *Grid) IsSet(i, j int) bool { return g.cells[i*g.n+j].IsSingle() }

// Set determines cell (i, j) to v and propagates to a fixed point.
// Calling it with a value outside the cell's possibility set is a
// programmer error.
func (g *Grid) Set(i, j, v int) {
	if !g.Get(i, j).Contains(v) {
		panic(fmt.Sprintf("constraint: set(%d, %d, %d) outside possibility set %v",
			i, j, v, g.Get(i, j).Elems()))
	}
	type assign struct{ i, j, v int }
	worklist := []assign{{i, j, v}}
	g.cells[i*g.n+j] = bitset.Single16(v)

	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for k := 0; k < g.n; k++ {
			for _, idx := range [2]int{a.i*g.n + k, k*g.n + a.j} {
				if idx == a.i*g.n+a.j {
					continue
				}
				s := g.cells[idx]
				if !s.Contains(a.v) {
					continue
				}
				s.Remove(a.v)
				g.cells[idx] = s
				if s.IsSingle() {
					worklist = append(worklist, assign{idx / g.n, idx % g.n, s.First()})
				}
			}
		}
	}
}

// FindSingles runs the hidden-single inference: in every row and every
// column, a symbol that fits only one undetermined cell is placed
// there. Repeats until no placement fires.
func (g *Grid) FindSingles() {
	for {
		if !g.findSinglesOnce() {
			return
		}
	}
}

func (g *Grid) findSinglesOnce() bool {
	placed := false
	for line := 0; line < g.n; line++ {
		for _, byRow := range [2]bool{true, false} {
			var counts [latin.MaxOrder]int
			for k := 0; k < g.n; k++ {
				s := g.cell(line, k, byRow)
				if s.IsSingle() {
					continue
				}
				for it := s.Iter(); ; {
					v, ok := it.Next()
					if !ok {
						break
					}
					counts[v]++
				}
			}
			for v := 0; v < g.n; v++ {
				if counts[v] != 1 {
					continue
				}
				for k := 0; k < g.n; k++ {
					s := g.cell(line, k, byRow)
					if !s.IsSingle() && s.Contains(v) {
						i, j := line, k
						if !byRow {
							i, j = k, line
						}
						g.Set(i, j, v)
						placed = true
						break
					}
				}
			}
		}
	}
	return placed
}

func (g *Grid) cell(line, k int, byRow bool) bitset.Set16 {
	if byRow {
		return g.cells[line*g.n+k]
	}
	return g.cells[k*g.n+line]
}

// IsSolvable reports whether no cell is in contradiction and every row
// and column can still cover all symbols.
func (g *Grid) IsSolvable() bool {
	full := bitset.All16LessThan(g.n)
	for line := 0; line < g.n; line++ {
		var row, col bitset.Set16
		for k := 0; k < g.n; k++ {
			rs := g.cells[line*g.n+k]
			cs := g.cells[k*g.n+line]
			if rs.IsEmpty() || cs.IsEmpty() {
				return false
			}
			row = row.Union(rs)
			col = col.Union(cs)
		}
		if row != full || col != full {
			return false
		}
	}
	return true
}

// IsSolved reports whether every cell is determined and the grid forms
// a Latin square.
func (g *Grid) IsSolved() bool {
	for _, s := range g.cells {
		if !s.IsSingle() {
			return false
		}
	}
	return g.IsSolvable()
}

// MostConstrainedCell returns an undetermined cell with the fewest
// possibilities, or ok=false if every cell is determined.
func (g *Grid) MostConstrainedCell() (Cell, bool) {
	best, bestLen := Cell{}, 0
	found := false
	for idx, s := range g.cells {
		if s.IsSingle() {
			continue
		}
		if !found || s.Len() < bestLen {
			best, bestLen, found = Cell{idx / g.n, idx % g.n}, s.Len(), true
		}
	}
	return best, found
}

// FirstEmpty returns the first undetermined cell in row-major order.
func (g *Grid) FirstEmpty() (Cell, bool) {
	for idx, s := range g.cells {
		if !s.IsSingle() {
			return Cell{idx / g.n, idx % g.n}, true
		}
	}
	return Cell{}, false
}

// FirstUnsolved scans row 0, then column 0, then the rest of the grid
// for an undetermined cell, preferring the fewest possibilities in the
// final phase.
func (g *Grid) FirstUnsolved() (Cell, bool) {
	for i := 0; i < g.n; i++ {
		if !g.IsSet(0, i) {
			return Cell{0, i}, true
		}
	}
	for i := 0; i < g.n; i++ {
		if !g.IsSet(i, 0) {
			return Cell{i, 0}, true
		}
	}
	return g.MostConstrainedCell()
}

// MakeOrthogonalTo removes from every undetermined cell the symbols
// already paired with sq's symbol at that position elsewhere in the
// grid.
func (g *Grid) MakeOrthogonalTo(sq latin.Square) {
	var known [latin.MaxOrder]bitset.Set16
	for idx, s := range g.cells {
		if s.IsSingle() {
			known[sq.Get(idx/g.n, idx%g.n)].Insert(s.First())
		}
	}
	for idx := range g.cells {
		s := g.cells[idx]
		if s.IsSingle() {
			continue
		}
		next := s.Difference(known[sq.Get(idx/g.n, idx%g.n)])
		g.cells[idx] = next
		if next.IsSingle() {
			g.Set(idx/g.n, idx%g.n, next.First())
		}
	}
}

// Square converts a solved grid into a Latin square.
func (g *Grid) Square() (latin.Square, bool) {
	cells := make([]uint8, len(g.cells))
	for idx, s := range g.cells {
		if !s.IsSingle() {
			return latin.Square{}, false
		}
		cells[idx] = uint8(s.First())
	}
	return latin.NewSquare(g.n, cells)
}

// Partial converts the determined cells into a partial square.
func (g *Grid) Partial() latin.Partial {
	p := latin.NewPartial(g.n)
	for idx, s := range g.cells {
		if s.IsSingle() {
			p.Set(idx/g.n, idx%g.n, s.First())
		}
	}
	return p
}
