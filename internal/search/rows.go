package search

import (
	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/latin"
)

// rowGen fills the next row of a RowPartial in every way that survives
// the cycle-structure pruning. An odometer over the per-column
// candidate lists drives the enumeration; index i counts positions into
// the candidate set of column i after the columns to its left are
// fixed.
type rowGen struct {
	sq      *RowPartial
	indices []int
	lookup  *cycles.Lookup
}

func newRowGen(sq *RowPartial, lookup *cycles.Lookup) *rowGen {
	return &rowGen{sq: sq, indices: make([]int, sq.N()), lookup: lookup}
}

func (g *rowGen) next() (*RowPartial, bool) {
	n := g.sq.N()
	if g.sq.IsComplete() {
		return nil, false
	}
l:
	for {
		sq := g.sq.Clone()
		newRow := make([]uint8, n)

		values := bitset.All16LessThan(n)
		// Column 0 takes its first available symbol; any other choice
		// leaves the first column unsorted.
		first := values.Intersect(sq.ColMask(0)).First()
		newRow[0] = uint8(first)
		values.Remove(first)

		for i := 1; i < n; i++ {
			possible := values.Intersect(sq.ColMask(i))
			if g.indices[i] >= possible.Len() {
				if i == 1 {
					return nil, false
				}
				g.indices[i-1]++
				for j := i; j < n; j++ {
					g.indices[j] = 0
				}
				continue l
			}
			v := possible.Nth(g.indices[i])
			values.Remove(v)
			newRow[i] = uint8(v)
		}
		g.indices[n-1]++

		if !sq.AddRow(newRow) {
			continue
		}
		// With one row left the final row is forced and checked by the
		// caller once complete.
		if sq.FullRows() != n-1 && !sq.IsMinimal(g.lookup) {
			continue
		}
		return sq, true
	}
}

// IsotopyClassGenerator streams the canonical representative of every
// isotopy class of order lookup.Order(), building squares row by row
// and pruning prefixes that cannot be minimal.
type IsotopyClassGenerator struct {
	stack   []*rowGen
	lookup  *cycles.Lookup
	pending *latin.Square
}

func NewIsotopyClassGenerator(lookup *cycles.Lookup) *IsotopyClassGenerator {
	seed := NewRowPartial(lookup.Order())
	g := &IsotopyClassGenerator{lookup: lookup}
	if seed.IsComplete() {
		sq, _ := seed.Square()
		g.pending = &sq
		return g
	}
	g.stack = []*rowGen{newRowGen(seed, lookup)}
	return g
}

func (g *IsotopyClassGenerator) Next() (latin.Square, bool) {
	if g.pending != nil {
		sq := *g.pending
		g.pending = nil
		return sq, true
	}
	for len(g.stack) > 0 {
		top := g.stack[len(g.stack)-1]
		sq, ok := top.next()
		if !ok {
			g.stack = g.stack[:len(g.stack)-1]
			continue
		}
		if sq.IsComplete() {
			out, _ := sq.Square()
			return out, true
		}
		g.stack = append(g.stack, newRowGen(sq, g.lookup))
	}
	return latin.Square{}, false
}

// MainClassGenerator streams the canonical representative of every
// main class, each exactly once: the isotopy stream is duplicate-free,
// and a square passes only if it equals its own main-class form.
type MainClassGenerator struct {
	inner  *IsotopyClassGenerator
	lookup *cycles.Lookup
}

func NewMainClassGenerator(lookup *cycles.Lookup) *MainClassGenerator {
	return &MainClassGenerator{inner: NewIsotopyClassGenerator(lookup), lookup: lookup}
}

func (g *MainClassGenerator) Next() (latin.Square, bool) {
	for {
		sq, ok := g.inner.Next()
		if !ok {
			return latin.Square{}, false
		}
		if sq.IsMainClassMinimal(g.lookup) {
			return sq, true
		}
	}
}
