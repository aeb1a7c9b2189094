package search

import "github.com/roach88/latsq/internal/latin"

// PartialSquareGenerator enumerates the partial squares obtained by
// copying entries of a solved square onto a seed, one subset of the
// seed's empty cells at a time, subsets in lexicographic order of
// their row-major cell indices.
type PartialSquareGenerator struct {
	sq    latin.Square
	seed  latin.Partial
	empty []int
	it    *TupleIter
}

// NewPartialSquareGenerator enumerates every partial square with
// numEntries entries agreeing with sq.
func NewPartialSquareGenerator(sq latin.Square, numEntries int) *PartialSquareGenerator {
	return NewPartialSquareGeneratorFromPartial(sq, latin.NewPartial(sq.N()), numEntries)
}

// NewPartialSquareGeneratorFromPartial enumerates every extension of
// seed to numEntries total entries, all taken from sq.
func NewPartialSquareGeneratorFromPartial(sq latin.Square, seed latin.Partial, numEntries int) *PartialSquareGenerator {
	n := sq.N()
	var empty []int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if _, ok := seed.Get(i, j); !ok {
				empty = append(empty, i*n+j)
			}
		}
	}
	add := numEntries - seed.CountFilled()
	if add < 0 {
		// the seed already exceeds the target size
		add = len(empty) + 1
	}
	return &PartialSquareGenerator{
		sq:    sq,
		seed:  seed,
		empty: empty,
		it:    NewTupleIter(len(empty), add),
	}
}

// Next returns the next partial square, or ok=false when the subsets
// are exhausted.
func (g *PartialSquareGenerator) Next() (latin.Partial, bool) {
	t, ok := g.it.Next()
	if !ok {
		return latin.Partial{}, false
	}
	out := g.seed.Clone()
	n := g.sq.N()
	for _, k := range t {
		idx := g.empty[k]
		out.Set(idx/n, idx%n, g.sq.Get(idx/n, idx%n))
	}
	return out, true
}
