// Package critical finds smallest and largest critical sets of Latin
// squares: partial squares that complete uniquely to the given square
// and lose that property when any entry is removed.
package critical

import (
	"cmp"
	"slices"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/hitting"
	"github.com/roach88/latsq/internal/latin"
	"github.com/roach88/latsq/internal/search"
)

// knownSCS holds the smallest critical-set sizes by order; the
// back-circulant square of order n attains floor(n^2/4).
var knownSCS = [...]int{0, 0, 1, 2, 4, 6, 9, 12, 16}

func cmpSet128(a, b bitset.Set128) int {
	alo, ahi := a.Words()
	blo, bhi := b.Words()
	if c := cmp.Compare(ahi, bhi); c != 0 {
		return c
	}
	return cmp.Compare(alo, blo)
}

// insertDifference adds a nonempty difference mask to the family
// unless a known set is contained in it, dropping known supersets so
// the family stays an antichain. The second result reports whether the
// family changed.
func insertDifference(sets []bitset.Set128, diff bitset.Set128) ([]bitset.Set128, bool) {
	if diff.IsEmpty() {
		return sets, false
	}
	for _, s := range sets {
		if s.IsSubsetOf(diff) {
			return sets, false
		}
	}
	sets = slices.DeleteFunc(sets, func(s bitset.Set128) bool {
		return diff.IsSubsetOf(s)
	})
	return append(sets, diff), true
}

// Differences enumerates the minimal unavoidable sets of sq: for every
// 3-subset of rows, columns, and values, the punctured square is
// recompleted, and each alternative completion contributes the cell
// set on which it differs. Supersets of an already-known set are
// dropped so the family stays an antichain.
func Differences(sq latin.Square) []bitset.Set128 {
	n := sq.N()
	var sets []bitset.Set128

	it := search.NewTupleIter(n, 3)
	for {
		t, ok := it.Next()
		if !ok {
			break
		}
		punctures := []latin.Partial{
			sq.WithoutRows(t...),
			sq.WithoutCols(t...),
			sq.WithoutVals(t...),
		}
		for _, p := range punctures {
			g := search.NewSquareGeneratorFromPartial(p)
			for {
				sol, ok := g.Next()
				if !ok {
					break
				}
				sets, _ = insertDifference(sets, sq.DifferenceMask(sol))
			}
		}
	}

	slices.SortFunc(sets, func(a, b bitset.Set128) int {
		if c := cmp.Compare(a.Len(), b.Len()); c != 0 {
			return c
		}
		return cmpSet128(a, b)
	})
	return slices.Compact(sets)
}

// IsUniquelyCompletableTo reports whether p has exactly one completion
// and that completion is sq.
func IsUniquelyCompletableTo(p latin.Partial, sq latin.Square) bool {
	g := search.NewSquareGeneratorFromPartial(p)
	first, ok := g.Next()
	if !ok {
		return false
	}
	if _, second := g.Next(); second {
		return false
	}
	return first.Equal(sq)
}

// IsUniquelyCompletable reports whether p has exactly one completion.
func IsUniquelyCompletable(p latin.Partial) bool {
	g := search.NewSquareGeneratorFromPartial(p)
	if _, ok := g.Next(); !ok {
		return false
	}
	_, second := g.Next()
	return !second
}

// IsCriticalSetOf reports whether p completes uniquely to sq and every
// entry is necessary for uniqueness.
func IsCriticalSetOf(p latin.Partial, sq latin.Square) bool {
	if !IsUniquelyCompletableTo(p, sq) {
		return false
	}
	n := p.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if _, set := p.Get(i, j); !set {
				continue
			}
			smaller := p.Clone()
			smaller.Clear(i, j)
			if IsUniquelyCompletable(smaller) {
				return false
			}
		}
	}
	return true
}

// uniquelyCompletableOfSize pads seed to size entries from sq and
// returns the first padding that completes uniquely to sq.
func uniquelyCompletableOfSize(sq latin.Square, seed latin.Partial, size int) (latin.Partial, bool) {
	g := search.NewPartialSquareGeneratorFromPartial(sq, seed, size)
	for {
		p, ok := g.Next()
		if !ok {
			return latin.Partial{}, false
		}
		if IsUniquelyCompletableTo(p, sq) {
			return p, true
		}
	}
}

// FindSCS returns a smallest critical set of sq. Every critical set
// hits every unavoidable set, so candidate sizes are probed with
// minimal hitting sets of the difference family, padded up to the
// probe size. The forward mode grows the size from the best known
// lower bound; the reverse mode shrinks it from n^2-1 and keeps the
// last size that still admits a uniquely completing set.
func FindSCS(sq latin.Square, reverse bool) (latin.Partial, bool) {
	n := sq.N()
	diffs := Differences(sq)

	start := n
	if n < len(knownSCS) {
		start = knownSCS[n]
	}
	end := n*n - 1

	if len(diffs) == 0 {
		// nothing is unavoidable; probe plain paddings of the empty
		// partial
		for size := start; size <= end; size++ {
			if p, ok := uniquelyCompletableOfSize(sq, latin.NewPartial(n), size); ok {
				return p, true
			}
		}
		return latin.Partial{}, false
	}

	if !reverse {
		for size := start; size <= end; size++ {
			g := hitting.NewMMCS(diffs, size)
			for {
				hs, ok := g.Next()
				if !ok {
					break
				}
				if p, ok := uniquelyCompletableOfSize(sq, sq.Mask(hs), size); ok {
					return p, true
				}
			}
		}
		return latin.Partial{}, false
	}

	g := hitting.NewMMCS(diffs, end)
	var scs latin.Partial
	any := false
	for size := end; size >= start; size-- {
		found := false
		for {
			hs, ok := g.Next()
			if !ok {
				break
			}
			if p, ok := uniquelyCompletableOfSize(sq, sq.Mask(hs), size); ok {
				scs, found, any = p, true, true
				break
			}
		}
		g.DecreaseBound()
		if !found {
			break
		}
	}
	return scs, any
}

// FindLCS returns every largest critical set of sq reachable from the
// minimal hitting sets of its difference family: each hitting set is
// either critical as-is or padded entry by entry until criticality is
// reached, and only the largest critical sets found are kept.
func FindLCS(sq latin.Square) []latin.Partial {
	n := sq.N()
	diffs := Differences(sq)
	if len(diffs) == 0 {
		return nil
	}

	g := hitting.NewMMCS(diffs, n*n)
	lcsSize := -1
	var all []latin.Partial

	record := func(p latin.Partial) bool {
		switch size := p.CountFilled(); {
		case size > lcsSize:
			lcsSize = size
			all = append(all[:0], p)
			return true
		case size == lcsSize:
			all = append(all, p)
		}
		return false
	}

	for {
		hs, ok := g.Next()
		if !ok {
			break
		}
		p := sq.Mask(hs)

		if IsCriticalSetOf(p, sq) {
			record(p)
			continue
		}

		for {
			target := p.CountFilled() + 1
			if lcsSize+1 > target {
				target = lcsSize + 1
			}
			improved := false
			ext := search.NewPartialSquareGeneratorFromPartial(sq, p, target)
			for {
				cand, ok := ext.Next()
				if !ok {
					break
				}
				if !IsCriticalSetOf(cand, sq) {
					continue
				}
				if record(cand) {
					improved = true
					break
				}
			}
			if !improved {
				break
			}
		}
	}

	// distinct hitting sets can grow into the same critical set
	uniq := dedupPartials(all)
	return uniq
}

func dedupPartials(all []latin.Partial) []latin.Partial {
	uniq := all[:0]
	for _, p := range all {
		dup := false
		for _, q := range uniq {
			if p.Equal(q) {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
		}
	}
	return uniq
}

// CriticalSets enumerates every critical set of sq. The 3-subset
// punctures can miss unavoidable sets, so the difference family is
// first enriched: every minimal hitting set that is not critical has a
// completion besides sq, and that completion's difference mask is a
// new unavoidable set. At the fixpoint the minimal hitting sets of the
// family are exactly the critical sets.
func CriticalSets(sq latin.Square) []latin.Partial {
	n := sq.N()
	diffs := Differences(sq)

	if len(diffs) == 0 {
		var out []latin.Partial
		for size := 0; size < n*n; size++ {
			g := search.NewPartialSquareGenerator(sq, size)
			for {
				p, ok := g.Next()
				if !ok {
					break
				}
				if IsCriticalSetOf(p, sq) {
					out = append(out, p)
				}
			}
		}
		return out
	}

	for {
		grown := false
		g := hitting.NewMMCS(diffs, n*n)
		for {
			hs, ok := g.Next()
			if !ok {
				break
			}
			p := sq.Mask(hs)
			if IsCriticalSetOf(p, sq) {
				continue
			}
			cg := search.NewSquareGeneratorFromPartial(p)
			for {
				sol, ok := cg.Next()
				if !ok {
					break
				}
				var changed bool
				diffs, changed = insertDifference(diffs, sq.DifferenceMask(sol))
				grown = grown || changed
			}
		}
		if !grown {
			break
		}
	}

	var out []latin.Partial
	g := hitting.NewMMCS(diffs, n*n)
	for {
		hs, ok := g.Next()
		if !ok {
			break
		}
		if p := sq.Mask(hs); IsCriticalSetOf(p, sq) {
			out = append(out, p)
		}
	}
	return out
}
