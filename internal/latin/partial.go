package latin

import (
	"slices"

	"github.com/roach88/latsq/internal/bitset"
)

// Partial is a partially filled square: each symbol appears at most once
// per row and per column, and cells may be empty.
type Partial struct {
	n     int
	cells []int8
}

// NewPartial returns the empty partial square of order n.
func NewPartial(n int) Partial {
	cells := make([]int8, n*n)
	for i := range cells {
		cells[i] = -1
	}
	return Partial{n: n, cells: cells}
}

// N returns the order.
func (p Partial) N() int { return p.n }

// Get returns the symbol at (i, j) and whether the cell is filled.
func (p Partial) Get(i, j int) (int, bool) {
	c := p.cells[i*p.n+j]
	return int(c), c >= 0
}

// Set fills cell (i, j).
func (p *Partial) Set(i, j, v int) { p.cells[i*p.n+j] = int8(v) }

// Clear empties cell (i, j).
func (p *Partial) Clear(i, j int) { p.cells[i*p.n+j] = -1 }

// Clone returns an independent copy.
func (p Partial) Clone() Partial {
	return Partial{n: p.n, cells: slices.Clone(p.cells)}
}

// Equal reports cell-wise equality.
func (p Partial) Equal(o Partial) bool {
	return p.n == o.n && slices.Equal(p.cells, o.cells)
}

// CountFilled returns the number of filled cells.
func (p Partial) CountFilled() int {
	filled := 0
	for _, c := range p.cells {
		if c >= 0 {
			filled++
		}
	}
	return filled
}

// FilledMask returns the flat-index set of filled cells.
func (p Partial) FilledMask() bitset.Set128 {
	var mask bitset.Set128
	for idx, c := range p.cells {
		if c >= 0 {
			mask.Insert(idx)
		}
	}
	return mask
}

// FirstEmpty returns the row-major first empty cell, or ok=false when
// the square is full.
func (p Partial) FirstEmpty() (i, j int, ok bool) {
	for idx, c := range p.cells {
		if c < 0 {
			return idx / p.n, idx % p.n, true
		}
	}
	return 0, 0, false
}

// Square converts a fully filled partial into a Square. Returns false
// when cells are missing or the Latin property fails.
func (p Partial) Square() (Square, bool) {
	cells := make([]uint8, len(p.cells))
	for idx, c := range p.cells {
		if c < 0 {
			return Square{}, false
		}
		cells[idx] = uint8(c)
	}
	return NewSquare(p.n, cells)
}

func (p Partial) isValid() bool {
	for i := 0; i < p.n; i++ {
		var row, col bitset.Set16
		for j := 0; j < p.n; j++ {
			if v, ok := p.Get(i, j); ok {
				if row.Contains(v) {
					return false
				}
				row.Insert(v)
			}
			if v, ok := p.Get(j, i); ok {
				if col.Contains(v) {
					return false
				}
				col.Insert(v)
			}
		}
	}
	return true
}
