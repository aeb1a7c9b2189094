// Package cycles classifies pairs of Latin-square rows by the cycle
// structure of the permutation carrying one row to the other, and
// precomputes the normalising permutation pairs for each structure. The
// lookup tables are what keep canonical-form checks cheap: instead of
// scanning all (n!)³ isotopies, a minimality check only walks the pairs
// stored for the cycle structure at hand.
package cycles

import (
	"slices"
	"sort"

	"github.com/roach88/latsq/internal/perm"
)

// Structures returns every sorted list of integers ≥ 2 summing to n, in
// lexicographic order. These are the possible cycle structures of a
// fixed-point-free permutation of n elements.
func Structures(n int) [][]int {
	structures := [][]int{{n}}
	for i := 2; i <= n/2; i++ {
		for _, s := range Structures(n - i) {
			withPart := append(slices.Clone(s), i)
			sort.Ints(withPart)
			structures = append(structures, withPart)
		}
	}
	sort.Slice(structures, func(i, j int) bool {
		return slices.Compare(structures[i], structures[j]) < 0
	})
	return slices.CompactFunc(structures, func(a, b []int) bool {
		return slices.Equal(a, b)
	})
}

// StructureIndex returns the position of the given sorted cycle-length
// list in Structures(n), or -1 if it is not a valid structure.
func StructureIndex(n int, lengths []int) int {
	for i, s := range Structures(n) {
		if slices.Equal(s, lengths) {
			return i
		}
	}
	return -1
}

// PermPair is a symbol relabelling together with the inverse of the
// column permutation it induces. Applying both to a two-row prefix with
// the pair's cycle structure maps it onto the canonical prefix for that
// structure.
type PermPair struct {
	Symbol perm.Perm
	InvCol perm.Perm
}

// Lookup holds, per cycle structure of order n, every permutation pair
// fixing that structure's canonical two-row prefix. Indexed by
// StructureIndex. Immutable once built; generators share one instance
// without synchronisation.
type Lookup struct {
	n     int
	pairs [][]PermPair
}

// NewLookup builds the full table for order n. Intended to run once at
// process start.
func NewLookup(n int) *Lookup {
	structures := Structures(n)
	pairs := make([][]PermPair, len(structures))
	for i, structure := range structures {
		pairs[i] = stabilizerPairs(n, canonicalRows(n, structure))
	}
	return &Lookup{n: n, pairs: pairs}
}

// Order returns the order the table was built for.
func (l *Lookup) Order() int { return l.n }

// Pairs returns the permutation pairs for the structure at the given
// index.
func (l *Lookup) Pairs(structureIndex int) []PermPair {
	return l.pairs[structureIndex]
}

// canonicalRows builds the representative two-row prefix of a cycle
// structure: row 0 is the identity, row 1 rotates each block by one.
func canonicalRows(n int, structure []int) [2][]uint8 {
	rows := [2][]uint8{make([]uint8, n), make([]uint8, n)}
	for i := range rows[0] {
		rows[0][i] = uint8(i)
	}
	start := 0
	for _, c := range structure {
		for j := 0; j < c; j++ {
			rows[1][start+j] = uint8(start + (j+1)%c)
		}
		start += c
	}
	return rows
}

// RowPerm returns the permutation carrying row 0 to row 1: the image of
// symbol i is the symbol of row 1 in the column where row 0 holds i.
func RowPerm(rows [2][]uint8) perm.Perm {
	p := make(perm.Perm, len(rows[0]))
	for col, v := range rows[0] {
		p[v] = rows[1][col]
	}
	return p
}

// stabilizerPairs enumerates every (symbol, inverse column) pair mapping
// the given two-row prefix onto itself, deduplicated and sorted. Pairs
// arise from reordering the cycles within each length class and rotating
// each cycle.
func stabilizerPairs(n int, rows [2][]uint8) []PermPair {
	cyclesByLen := make([][][]int, n+1)
	for _, c := range RowPerm(rows).Cycles() {
		cyclesByLen[len(c)] = append(cyclesByLen[len(c)], c)
	}
	for _, group := range cyclesByLen {
		sort.Slice(group, func(i, j int) bool {
			return slices.Compare(group[i], group[j]) < 0
		})
	}

	var pairs []PermPair
	symbol := make(perm.Perm, n)

	// Per length class: an ordering of the class's cycles and a rotation
	// offset per cycle. emit walks the cartesian product.
	var emit func(length, index int)
	emit = func(length, index int) {
		if length > n {
			sp := symbol.Clone()
			colImage := make([]uint8, n)
			for i, v := range rows[0] {
				colImage[i] = sp[v]
			}
			pairs = append(pairs, PermPair{
				Symbol: sp,
				InvCol: perm.FromImage(colImage).Inverse(),
			})
			return
		}
		group := cyclesByLen[length]
		if len(group) == 0 {
			emit(length+1, index)
			return
		}
		width := length * len(group)

		order := perm.NewIter(len(group))
		for {
			ordering, ok := order.Next()
			if !ok {
				break
			}
			offsets := make([]int, len(group))
			for {
				start := index
				for slot := range group {
					cycle := group[ordering.Apply(slot)]
					offset := offsets[ordering.Apply(slot)]
					for j := 0; j < length; j++ {
						symbol[cycle[(j+offset)%length]] = uint8(start + j)
					}
					start += length
				}
				emit(length+1, index+width)

				carry := 0
				for carry < len(offsets) {
					offsets[carry]++
					if offsets[carry] < length {
						break
					}
					offsets[carry] = 0
					carry++
				}
				if carry == len(offsets) {
					break
				}
			}
		}
	}
	emit(1, 0)

	sort.Slice(pairs, func(i, j int) bool {
		if c := slices.Compare(pairs[i].Symbol, pairs[j].Symbol); c != 0 {
			return c < 0
		}
		return slices.Compare(pairs[i].InvCol, pairs[j].InvCol) < 0
	})
	return slices.CompactFunc(pairs, func(a, b PermPair) bool {
		return a.Symbol.Equal(b.Symbol) && a.InvCol.Equal(b.InvCol)
	})
}

// MinimizingPairs returns every (symbol, inverse column) pair that maps
// the given two-row prefix onto the canonical prefix of its cycle
// structure. The prefix rows must disagree in every column.
func (l *Lookup) MinimizingPairs(rows [2][]uint8) []PermPair {
	rowPerm := RowPerm(rows)
	cycleList := rowPerm.Cycles()
	sort.SliceStable(cycleList, func(i, j int) bool {
		return len(cycleList[i]) < len(cycleList[j])
	})

	lengths := make([]int, len(cycleList))
	for i, c := range cycleList {
		lengths[i] = len(c)
	}

	// Base normalisation carrying these rows onto the canonical prefix.
	baseSymbol := make(perm.Perm, l.n)
	index := 0
	for _, cycle := range cycleList {
		for i, v := range cycle {
			baseSymbol[v] = uint8(index + (i+1)%len(cycle))
		}
		index += len(cycle)
	}

	inv := baseSymbol.Inverse()
	stab := l.pairs[StructureIndex(l.n, lengths)]

	out := make([]PermPair, len(stab))
	for i, p := range stab {
		symbol := perm.FromImage(perm.ApplySlice(inv, []uint8(p.Symbol)))
		// The composed symbol permutation forces the column permutation:
		// the column holding symbol v in row 0 ends up at column
		// symbol[v].
		composed := make([]uint8, l.n)
		for c, v := range rows[0] {
			composed[c] = symbol[v]
		}
		out[i] = PermPair{
			Symbol: symbol,
			InvCol: perm.FromImage(composed).Inverse(),
		}
	}
	return out
}
