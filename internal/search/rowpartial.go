package search

import (
	"bytes"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/latin"
	"github.com/roach88/latsq/internal/perm"
)

// RowPartial is a square built one full row at a time, tracking per
// column which symbols remain and, across all completed row pairs,
// the smallest row-cycle structure seen so far. The row-at-a-time
// generators use it to prune branches that cannot be canonical.
type RowPartial struct {
	n        int
	rows     [][]uint8
	colMasks []bitset.Set16
	fullRows int

	// minCycles[i][j] marks ordered row pairs realizing minIndex.
	minCycles [][]bool
	minIndex  int
}

// NewRowPartial returns a partial of order n holding only the identity
// first row.
func NewRowPartial(n int) *RowPartial {
	rp := &RowPartial{
		n:         n,
		rows:      make([][]uint8, n),
		colMasks:  make([]bitset.Set16, n),
		fullRows:  1,
		minCycles: make([][]bool, n),
	}
	row0 := make([]uint8, n)
	for i := range row0 {
		row0[i] = uint8(i)
		rp.colMasks[i] = bitset.All16LessThan(n)
		rp.colMasks[i].Remove(i)
	}
	rp.rows[0] = row0
	for i := range rp.minCycles {
		rp.minCycles[i] = make([]bool, n)
	}
	return rp
}

func (rp *RowPartial) N() int        { return rp.n }
func (rp *RowPartial) FullRows() int { return rp.fullRows }

// Row returns the i-th completed row.
func (rp *RowPartial) Row(i int) []uint8 { return rp.rows[i] }

// ColMask returns the symbols still unused in column j.
func (rp *RowPartial) ColMask(j int) bitset.Set16 { return rp.colMasks[j] }

func (rp *RowPartial) IsComplete() bool { return rp.fullRows == rp.n }

func (rp *RowPartial) Clone() *RowPartial {
	out := &RowPartial{
		n:         rp.n,
		rows:      make([][]uint8, rp.n),
		colMasks:  make([]bitset.Set16, rp.n),
		fullRows:  rp.fullRows,
		minCycles: make([][]bool, rp.n),
		minIndex:  rp.minIndex,
	}
	copy(out.colMasks, rp.colMasks)
	for i := range rp.rows {
		if rp.rows[i] != nil {
			out.rows[i] = bytes.Clone(rp.rows[i])
		}
		out.minCycles[i] = make([]bool, rp.n)
		copy(out.minCycles[i], rp.minCycles[i])
	}
	return out
}

// cycleIndex returns the cycle-structure table index of the permutation
// carrying row a onto row b.
func (rp *RowPartial) cycleIndex(a, b []uint8) int {
	p := cycles.RowPerm([2][]uint8{a, b})
	return cycles.StructureIndex(rp.n, p.CycleLengths())
}

// AddRow appends a completed row. It returns false when some pair
// involving the new row has a cycle structure strictly below the
// running minimum, which no canonical square can contain. The receiver
// is left partially updated on failure; callers branch on clones.
func (rp *RowPartial) AddRow(row []uint8) bool {
	for i := 0; i < rp.n; i++ {
		rp.colMasks[i].Remove(int(row[i]))
	}
	newIdx := rp.fullRows
	rp.rows[newIdx] = row

	if rp.fullRows == 1 {
		rp.minIndex = rp.cycleIndex(rp.rows[0], rp.rows[1])
		rp.minCycles[0][1] = true
		rp.fullRows = 2
		return true
	}

	for i := 0; i < rp.fullRows; i++ {
		for _, pair := range [2][2][]uint8{{rp.rows[i], row}, {row, rp.rows[i]}} {
			idx := rp.cycleIndex(pair[0], pair[1])
			if idx < rp.minIndex {
				return false
			}
			if idx == rp.minIndex {
				rp.minCycles[i][newIdx] = true
			}
		}
	}
	rp.fullRows++
	return true
}

// MinCycleIndex returns the table index of the smallest row-cycle
// structure among the completed row pairs.
func (rp *RowPartial) MinCycleIndex() int { return rp.minIndex }

// IsMinimal reports whether no symbol/column pair from the cycle table,
// applied after moving a minimal-cycle row pair to the top, produces a
// lexicographically smaller row prefix. Rows falling outside the prefix
// after the transform do not disqualify it.
func (rp *RowPartial) IsMinimal(lookup *cycles.Lookup) bool {
	it := NewTupleIter(rp.fullRows, 2)
	for {
		t, ok := it.Next()
		if !ok {
			return true
		}
		if !rp.minCycles[t[0]][t[1]] {
			continue
		}
		for _, ord := range [2][2]int{{t[0], t[1]}, {t[1], t[0]}} {
			prefix := [2][]uint8{rp.rows[ord[0]], rp.rows[ord[1]]}
			for _, pair := range lookup.MinimizingPairs(prefix) {
				cand, full := permuteRowsSorted(rp.rows[:rp.fullRows], pair.InvCol, pair.Symbol, rp.n)
				if full != rp.fullRows {
					continue
				}
				cmp := 0
				for i := 0; i < rp.fullRows && cmp == 0; i++ {
					cmp = bytes.Compare(rp.rows[i], cand[i])
				}
				if cmp > 0 {
					return false
				}
			}
		}
	}
}

// permuteRowsSorted reorders each row's columns by invCol, relabels
// symbols, and places the result at the index of its new first symbol.
// Rows whose first symbol lands outside the shrinking prefix are
// dropped; the second result is the number of rows kept.
func permuteRowsSorted(rows [][]uint8, invCol, sym perm.Perm, n int) ([][]uint8, int) {
	out := make([][]uint8, len(rows))
	full := len(rows)
	for _, row := range rows {
		nr := make([]uint8, n)
		for i := 0; i < n; i++ {
			nr[i] = sym[row[invCol.Apply(i)]]
		}
		if full > int(nr[0]) {
			out[nr[0]] = nr
		} else {
			full--
		}
	}
	return out, full
}

// Square converts a complete RowPartial into a Latin square.
func (rp *RowPartial) Square() (latin.Square, bool) {
	if !rp.IsComplete() {
		return latin.Square{}, false
	}
	cells := make([]uint8, 0, rp.n*rp.n)
	for _, row := range rp.rows {
		cells = append(cells, row...)
	}
	return latin.NewSquare(rp.n, cells)
}
