package latin

import (
	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/perm"
)

// Transversals counts the transversals of s: selections of one cell
// per row with all columns and all symbols distinct.
func (s Square) Transversals() int {
	return s.countTransversals(0, 0, 0)
}

func (s Square) countTransversals(row int, usedCols, usedVals uint) int {
	if row == s.n {
		return 1
	}
	count := 0
	for j := 0; j < s.n; j++ {
		if usedCols&(1<<j) != 0 {
			continue
		}
		v := s.Get(row, j)
		if usedVals&(1<<v) != 0 {
			continue
		}
		count += s.countTransversals(row+1, usedCols|1<<j, usedVals|1<<v)
	}
	return count
}

func rowPairCycles(s Square) [][]int {
	var out [][]int
	for i := 0; i < s.n; i++ {
		for j := i + 1; j < s.n; j++ {
			out = append(out, cycles.RowPerm([2][]uint8{s.Row(i), s.Row(j)}).CycleLengths())
		}
	}
	return out
}

// RowCycles returns the cycle structure of every unordered row pair.
func (s Square) RowCycles() [][]int { return rowPairCycles(s) }

// ColCycles returns the cycle structure of every unordered column
// pair, via the conjugate that swaps the row and column roles.
func (s Square) ColCycles() [][]int {
	return rowPairCycles(s.Conjugate(perm.FromImage([]uint8{1, 0, 2})))
}

// ValCycles returns the cycle structure of every unordered symbol
// pair, via the conjugate that swaps the row and symbol roles.
func (s Square) ValCycles() [][]int {
	return rowPairCycles(s.Conjugate(perm.FromImage([]uint8{2, 1, 0})))
}
