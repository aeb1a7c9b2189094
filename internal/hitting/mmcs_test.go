package hitting

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/bitset"
)

func collect(g *MMCS) []bitset.Set128 {
	var out []bitset.Set128
	for {
		hs, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, hs)
	}
}

func sortedElems(sets []bitset.Set128) [][]int {
	if len(sets) == 0 {
		return nil
	}
	out := make([][]int, len(sets))
	for i, s := range sets {
		out[i] = s.Elems()
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

// bruteMinimalHittingSets enumerates subsets of [0, universe) of size
// at most bound that hit every set and have no hitting proper subset.
func bruteMinimalHittingSets(sets []bitset.Set128, universe, bound int) [][]int {
	hits := func(hs bitset.Set128) bool {
		for _, s := range sets {
			if s.IsDisjoint(hs) {
				return false
			}
		}
		return true
	}

	var out [][]int
	for mask := 0; mask < 1<<universe; mask++ {
		var hs bitset.Set128
		for v := 0; v < universe; v++ {
			if mask&(1<<v) != 0 {
				hs.Insert(v)
			}
		}
		if hs.Len() > bound || !hits(hs) {
			continue
		}
		minimal := true
		for _, v := range hs.Elems() {
			smaller := hs
			smaller.Remove(v)
			if hits(smaller) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, hs.Elems())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

func TestMMCSSmallFamily(t *testing.T) {
	sets := []bitset.Set128{
		bitset.From128(0, 1),
		bitset.From128(1, 2),
		bitset.From128(0, 2, 3),
	}
	got := collect(NewMMCS(sets, 2))

	assert.ElementsMatch(t, [][]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}}, sortedElems(got))
}

func TestMMCSNoDuplicatesAndAllMinimal(t *testing.T) {
	sets := []bitset.Set128{
		bitset.From128(0, 1),
		bitset.From128(1, 2),
		bitset.From128(0, 2, 3),
	}
	got := collect(NewMMCS(sets, 3))

	seen := map[[2]uint64]bool{}
	for _, hs := range got {
		lo, hi := hs.Words()
		key := [2]uint64{lo, hi}
		assert.False(t, seen[key], "duplicate %v", hs.Elems())
		seen[key] = true

		for _, s := range sets {
			assert.False(t, s.IsDisjoint(hs), "set %v not hit by %v", s.Elems(), hs.Elems())
		}
	}
}

func TestMMCSMatchesBruteForce(t *testing.T) {
	cases := [][]bitset.Set128{
		{
			bitset.From128(0, 1),
			bitset.From128(1, 2),
			bitset.From128(0, 2, 3),
		},
		{
			bitset.From128(0, 3),
			bitset.From128(1, 4),
			bitset.From128(2, 5),
			bitset.From128(0, 1, 2),
			bitset.From128(3, 4, 5),
		},
		{
			bitset.From128(0),
			bitset.From128(0, 1, 2, 3, 4),
			bitset.From128(2, 4),
			bitset.From128(1, 3, 5),
		},
	}
	for i, sets := range cases {
		for bound := 1; bound <= 4; bound++ {
			want := bruteMinimalHittingSets(sets, 8, bound)
			got := sortedElems(collect(NewMMCS(sets, bound)))
			require.Equal(t, want, got, "case %d bound %d", i, bound)
		}
	}
}

func TestMMCSDecreaseBound(t *testing.T) {
	sets := []bitset.Set128{
		bitset.From128(0, 1),
		bitset.From128(1, 2),
		bitset.From128(0, 2, 3),
	}
	g := NewMMCS(sets, 2)

	first, ok := g.Next()
	require.True(t, ok)
	require.Equal(t, 2, first.Len())

	g.DecreaseBound()
	for {
		hs, ok := g.Next()
		if !ok {
			break
		}
		assert.LessOrEqual(t, hs.Len(), 1)
	}
}
