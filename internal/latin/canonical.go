package latin

import (
	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/perm"
)

// Triple is a row/column/symbol permutation triple carrying a square
// onto an isotopic one.
type Triple struct {
	Row perm.Perm
	Col perm.Perm
	Sym perm.Perm
}

// IsotopyClass returns the canonical form of s under independent row,
// column, and symbol permutation: the row-major smallest reduced member
// of the orbit.
func (s Square) IsotopyClass(lookup *cycles.Lookup) Square {
	min, _ := s.IsotopyClassPermutations(lookup)
	return min
}

// IsotopyClassPermutations returns the canonical form together with
// every permutation triple mapping s onto it.
//
// Candidates are narrowed through the cycle table: for every ordered
// row pair, only the symbol/column pairs mapping that pair onto its
// cycle structure's canonical prefix can yield a reduced square whose
// first two rows are minimal. Each surviving candidate is completed by
// placing every transformed row at the index of its first symbol, which
// forces column 0 to the identity.
func (s Square) IsotopyClassPermutations(lookup *cycles.Lookup) (Square, []Triple) {
	n := s.n
	var min Square
	var triples []Triple

	for r0 := 0; r0 < n; r0++ {
		for r1 := 0; r1 < n; r1++ {
			if r1 == r0 {
				continue
			}
			prefix := [2][]uint8{s.Row(r0), s.Row(r1)}
			for _, pair := range lookup.MinimizingPairs(prefix) {
				cand, rowPerm := s.permutedColsVals(pair.InvCol, pair.Symbol)
				switch {
				case min.cells == nil || cand.CmpRows(min) < 0:
					min = cand
					triples = triples[:0]
					fallthrough
				case cand.CmpRows(min) == 0:
					triples = append(triples, Triple{
						Row: rowPerm,
						Col: pair.InvCol.Inverse(),
						Sym: pair.Symbol,
					})
				}
			}
		}
	}
	return min, triples
}

// permutedColsVals reorders columns by invCol, relabels symbols, and
// places each resulting row at the index of its first entry. Returns
// the square and the induced row permutation.
func (s Square) permutedColsVals(invCol, sym perm.Perm) (Square, perm.Perm) {
	n := s.n
	cells := make([]uint8, n*n)
	rowPerm := make(perm.Perm, n)
	for r := 0; r < n; r++ {
		base := r * n
		first := sym[s.cells[base+invCol.Apply(0)]]
		rowPerm[r] = first
		dst := int(first) * n
		for i := 0; i < n; i++ {
			cells[dst+i] = sym[s.cells[base+invCol.Apply(i)]]
		}
	}
	return Square{n: n, cells: cells}, rowPerm
}

// roleAssignments lists the six permutations of the (row, column,
// symbol) axes.
func roleAssignments() []perm.Perm {
	roles := make([]perm.Perm, 0, 6)
	it := perm.NewIter(3)
	for {
		p, ok := it.Next()
		if !ok {
			return roles
		}
		roles = append(roles, p)
	}
}

// MainClass returns the canonical form of s under paratopy: the minimum
// of the isotopy canonical forms of all six conjugates.
func (s Square) MainClass(lookup *cycles.Lookup) Square {
	var min Square
	for _, role := range roleAssignments() {
		cand := s.Conjugate(role).IsotopyClass(lookup)
		if min.cells == nil || cand.CmpRows(min) < 0 {
			min = cand
		}
	}
	return min
}

// IsMainClassMinimal reports whether s equals its main-class canonical
// form.
func (s Square) IsMainClassMinimal(lookup *cycles.Lookup) bool {
	return s.Equal(s.MainClass(lookup))
}
