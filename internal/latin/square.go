// Package latin implements Latin squares, partial squares, and mutually
// orthogonal families, together with their textual encodings and the
// canonical-form operators for isotopy and main (paratopy) classes.
package latin

import (
	"slices"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/perm"
)

// MaxOrder bounds the supported square orders. With n ≤ 11 every cell
// mask fits a 128-bit set and every symbol set a 16-bit set.
const MaxOrder = 11

// Square is a Latin square of order n: every row and every column is a
// permutation of the symbols [0, n). Immutable once constructed;
// transformations return new values.
type Square struct {
	n     int
	cells []uint8
}

// NewSquare validates the row-major cell array and wraps it. Returns
// false if the array does not satisfy the Latin property.
func NewSquare(n int, cells []uint8) (Square, bool) {
	if len(cells) != n*n || !isLatin(n, cells) {
		return Square{}, false
	}
	return Square{n: n, cells: cells}, true
}

func isLatin(n int, cells []uint8) bool {
	full := bitset.All16LessThan(n)
	for i := 0; i < n; i++ {
		var row, col bitset.Set16
		for j := 0; j < n; j++ {
			if int(cells[i*n+j]) >= n || int(cells[j*n+i]) >= n {
				return false
			}
			row.Insert(int(cells[i*n+j]))
			col.Insert(int(cells[j*n+i]))
		}
		if row != full || col != full {
			return false
		}
	}
	return true
}

// N returns the order of the square.
func (s Square) N() int { return s.n }

// Get returns the symbol at row i, column j.
func (s Square) Get(i, j int) int { return int(s.cells[i*s.n+j]) }

// Cells exposes the row-major cell array. Callers must not modify it.
func (s Square) Cells() []uint8 { return s.cells }

// Row returns row i as a fresh slice.
func (s Square) Row(i int) []uint8 {
	row := make([]uint8, s.n)
	copy(row, s.cells[i*s.n:(i+1)*s.n])
	return row
}

// Col returns column j as a fresh slice.
func (s Square) Col(j int) []uint8 {
	col := make([]uint8, s.n)
	for i := 0; i < s.n; i++ {
		col[i] = s.cells[i*s.n+j]
	}
	return col
}

// Equal reports cell-wise equality.
func (s Square) Equal(o Square) bool {
	return s.n == o.n && slices.Equal(s.cells, o.cells)
}

// CmpRows compares two squares of equal order row-major
// lexicographically. This is the total order used everywhere a minimum
// over an orbit is taken.
func (s Square) CmpRows(o Square) int {
	return slices.Compare(s.cells, o.cells)
}

// IsReduced reports whether row 0 and column 0 both read 0, 1, …, n-1.
func (s Square) IsReduced() bool {
	for i := 0; i < s.n; i++ {
		if s.Get(0, i) != i || s.Get(i, 0) != i {
			return false
		}
	}
	return true
}

// IsOrthogonalTo reports whether superimposing s and o covers all n²
// ordered symbol pairs.
func (s Square) IsOrthogonalTo(o Square) bool {
	if s.n != o.n {
		return false
	}
	full := bitset.All16LessThan(s.n)
	for v := 0; v < s.n; v++ {
		var paired bitset.Set16
		for idx, c := range s.cells {
			if int(c) == v {
				paired.Insert(int(o.cells[idx]))
			}
		}
		if paired != full {
			return false
		}
	}
	return true
}

// PermutedRows returns the square with row i moved to row p(i).
func (s Square) PermutedRows(p perm.Perm) Square {
	cells := make([]uint8, len(s.cells))
	for i := 0; i < s.n; i++ {
		copy(cells[p.Apply(i)*s.n:], s.cells[i*s.n:(i+1)*s.n])
	}
	return Square{n: s.n, cells: cells}
}

// PermutedCols returns the square with column j moved to column p(j).
func (s Square) PermutedCols(p perm.Perm) Square {
	cells := make([]uint8, len(s.cells))
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.n; j++ {
			cells[i*s.n+p.Apply(j)] = s.cells[i*s.n+j]
		}
	}
	return Square{n: s.n, cells: cells}
}

// PermutedVals returns the square with every symbol v relabelled p(v).
func (s Square) PermutedVals(p perm.Perm) Square {
	cells := make([]uint8, len(s.cells))
	for idx, c := range s.cells {
		cells[idx] = p[c]
	}
	return Square{n: s.n, cells: cells}
}

// Apply permutes rows, columns, and symbols in one step.
func (s Square) Apply(rows, cols, vals perm.Perm) Square {
	return s.PermutedRows(rows).PermutedCols(cols).PermutedVals(vals)
}

// Reduce returns the isotopic reduced square obtained by relabelling
// symbols so row 0 is the identity, then sorting rows by their first
// column entry.
func (s Square) Reduce() Square {
	vals := perm.FromImage(s.Row(0)).Inverse()
	relabelled := s.PermutedVals(vals)

	rowImage := make([]uint8, s.n)
	for i := 0; i < s.n; i++ {
		rowImage[i] = relabelled.cells[i*s.n]
	}
	return relabelled.PermutedRows(perm.FromImage(rowImage))
}

// ReduceSymbols relabels symbols so row 0 becomes the identity, leaving
// rows and columns in place.
func (s Square) ReduceSymbols() Square {
	return s.PermutedVals(perm.FromImage(s.Row(0)).Inverse())
}

// Conjugate returns the square obtained by permuting the three roles of
// the (row, column, symbol) relation: the cell triple (i, j, v) of s
// contributes the triple with coordinate k taken from position role[k].
// role must be a permutation of width 3; the identity returns s itself.
func (s Square) Conjugate(role perm.Perm) Square {
	cells := make([]uint8, len(s.cells))
	var t [3]int
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.n; j++ {
			triple := [3]int{i, j, s.Get(i, j)}
			for k := 0; k < 3; k++ {
				t[role.Apply(k)] = triple[k]
			}
			cells[t[0]*s.n+t[1]] = uint8(t[2])
		}
	}
	return Square{n: s.n, cells: cells}
}

// FromRCS builds a square out of three n×n coordinate arrays: for every
// cell position the triple (rows[p], cols[p], syms[p]) is a point of the
// ternary relation. The arrays must jointly describe a Latin square, as
// any three coordinates of an orthogonal-array view do.
func FromRCS(n int, rows, cols, syms []uint8) Square {
	cells := make([]uint8, n*n)
	for p := range rows {
		cells[int(rows[p])*n+int(cols[p])] = syms[p]
	}
	return Square{n: n, cells: cells}
}

// RowsArray and ColsArray are the two constant coordinate arrays of the
// orthogonal-array view: cell (i, j) holds i, respectively j.
func RowsArray(n int) []uint8 {
	a := make([]uint8, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = uint8(i)
		}
	}
	return a
}

func ColsArray(n int) []uint8 {
	a := make([]uint8, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = uint8(j)
		}
	}
	return a
}

// DifferenceMask returns the set of flat cell indices where s and o
// disagree.
func (s Square) DifferenceMask(o Square) bitset.Set128 {
	var mask bitset.Set128
	for idx := range s.cells {
		if s.cells[idx] != o.cells[idx] {
			mask.Insert(idx)
		}
	}
	return mask
}

// Mask keeps only the cells named by the flat-index mask, as a partial
// square.
func (s Square) Mask(mask bitset.Set128) Partial {
	p := NewPartial(s.n)
	for it := mask.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			return p
		}
		p.Set(idx/s.n, idx%s.n, int(s.cells[idx]))
	}
}

// WithoutRows blanks the named rows.
func (s Square) WithoutRows(rows ...int) Partial {
	p := s.Partial()
	for _, r := range rows {
		for j := 0; j < s.n; j++ {
			p.Clear(r, j)
		}
	}
	return p
}

// WithoutCols blanks the named columns.
func (s Square) WithoutCols(cols ...int) Partial {
	p := s.Partial()
	for _, c := range cols {
		for i := 0; i < s.n; i++ {
			p.Clear(i, c)
		}
	}
	return p
}

// WithoutVals blanks every cell holding one of the named symbols.
func (s Square) WithoutVals(vals ...int) Partial {
	p := s.Partial()
	for _, v := range vals {
		for idx, c := range s.cells {
			if int(c) == v {
				p.Clear(idx/s.n, idx%s.n)
			}
		}
	}
	return p
}

// Partial returns the fully filled partial view of s.
func (s Square) Partial() Partial {
	p := NewPartial(s.n)
	for idx, c := range s.cells {
		p.cells[idx] = int8(c)
	}
	return p
}
