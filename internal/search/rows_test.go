package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/latin"
)

func TestRowPartialAddRowTracksMinimumCycleStructure(t *testing.T) {
	rp := NewRowPartial(4)
	require.True(t, rp.AddRow([]uint8{1, 2, 3, 0}))
	// a single 4-cycle sits above [2,2] in the table
	assert.Equal(t, 1, rp.MinCycleIndex())

	// rows 0 and 2 form two 2-cycles, below the current minimum
	assert.False(t, rp.Clone().AddRow([]uint8{2, 3, 0, 1}))
}

func TestRowPartialCanonicalPrefixIsMinimal(t *testing.T) {
	lookup := cycles.NewLookup(4)

	rp := NewRowPartial(4)
	require.True(t, rp.AddRow([]uint8{1, 0, 3, 2}))
	assert.True(t, rp.IsMinimal(lookup))

	four := NewRowPartial(4)
	require.True(t, four.AddRow([]uint8{1, 2, 3, 0}))
	assert.True(t, four.IsMinimal(lookup))
}

func TestRowPartialSquareRoundTrip(t *testing.T) {
	rp := NewRowPartial(4)
	require.True(t, rp.AddRow([]uint8{1, 0, 3, 2}))
	require.True(t, rp.AddRow([]uint8{2, 3, 0, 1}))
	require.True(t, rp.AddRow([]uint8{3, 2, 1, 0}))
	require.True(t, rp.IsComplete())

	sq, ok := rp.Square()
	require.True(t, ok)
	assert.Equal(t, "0123103223013210", sq.String())
}

func collectIsotopy(t *testing.T, lookup *cycles.Lookup, limit int) []latin.Square {
	t.Helper()
	g := NewIsotopyClassGenerator(lookup)
	var out []latin.Square
	for {
		sq, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, sq)
		require.LessOrEqual(t, len(out), limit)
	}
}

func TestIsotopyClassCounts(t *testing.T) {
	assert.Len(t, collectIsotopy(t, cycles.NewLookup(4), 2), 2)
	assert.Len(t, collectIsotopy(t, cycles.NewLookup(5), 2), 2)
	assert.Len(t, collectIsotopy(t, cycles.NewLookup(6), 22), 22)
}

func TestIsotopyClassCountOrder7(t *testing.T) {
	if testing.Short() {
		t.Skip("order 7 enumeration is slow")
	}
	assert.Len(t, collectIsotopy(t, cycles.NewLookup(7), 564), 564)
}

func TestIsotopyClassOutputsAreCanonical(t *testing.T) {
	lookup := cycles.NewLookup(5)
	for _, sq := range collectIsotopy(t, lookup, 2) {
		assert.True(t, sq.Equal(sq.IsotopyClass(lookup)))
	}
}

func TestMainClassCounts(t *testing.T) {
	counts := map[int]int{4: 2, 5: 2, 6: 12}
	for n, want := range counts {
		lookup := cycles.NewLookup(n)
		g := NewMainClassGenerator(lookup)
		var got []latin.Square
		for {
			sq, ok := g.Next()
			if !ok {
				break
			}
			assert.True(t, sq.IsMainClassMinimal(lookup))
			got = append(got, sq)
			require.LessOrEqual(t, len(got), want)
		}
		assert.Len(t, got, want, "order %d", n)
	}
}
