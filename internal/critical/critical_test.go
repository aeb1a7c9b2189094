package critical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/latin"
)

func mustSquare(t *testing.T, s string) latin.Square {
	t.Helper()
	sq, err := latin.ParseSquare(s)
	require.NoError(t, err)
	return sq
}

func TestDifferencesIntercalates(t *testing.T) {
	// the xor square: every row pair decomposes into two transpositions,
	// so all two-row trades are intercalates
	sq := mustSquare(t, "0123103223013210")
	diffs := Differences(sq)

	intercalates := 0
	for _, d := range diffs {
		assert.False(t, d.IsEmpty())
		assert.GreaterOrEqual(t, d.Len(), 4)
		if d.Len() == 4 {
			intercalates++
		}
	}
	assert.Equal(t, 12, intercalates)

	for i, a := range diffs {
		for j, b := range diffs {
			if i == j {
				continue
			}
			assert.False(t, a.IsSubsetOf(b), "family must be an antichain")
		}
	}
}

func TestIsUniquelyCompletable(t *testing.T) {
	sq := mustSquare(t, "0123103223013210")

	p := sq.WithoutVals(3)
	assert.True(t, IsUniquelyCompletable(p))
	assert.True(t, IsUniquelyCompletableTo(p, sq))

	other := mustSquare(t, "0123123023013012")
	assert.False(t, IsUniquelyCompletableTo(p, other))

	assert.False(t, IsUniquelyCompletable(latin.NewPartial(4)))
}

func TestIsCriticalSetOf(t *testing.T) {
	sq := mustSquare(t, "012120201")

	p := latin.NewPartial(3)
	p.Set(0, 0, 0)
	p.Set(1, 1, 2)
	assert.True(t, IsCriticalSetOf(p, sq))

	// two full values complete uniquely but carry redundant entries
	assert.False(t, IsCriticalSetOf(sq.WithoutVals(2), sq))

	// not even uniquely completable
	assert.False(t, IsCriticalSetOf(latin.NewPartial(3), sq))
}

func TestFindSCSOrder3(t *testing.T) {
	sq := mustSquare(t, "012120201")

	scs, ok := FindSCS(sq, false)
	require.True(t, ok)
	assert.Equal(t, 2, scs.CountFilled())
	assert.True(t, IsCriticalSetOf(scs, sq))
}

func TestFindSCSOrder4BackCirculant(t *testing.T) {
	sq := mustSquare(t, "0123123023013012")

	scs, ok := FindSCS(sq, false)
	require.True(t, ok)
	assert.Equal(t, 4, scs.CountFilled())
	assert.True(t, IsCriticalSetOf(scs, sq))
}

func TestFindSCSReverse(t *testing.T) {
	sq := mustSquare(t, "012120201")

	scs, ok := FindSCS(sq, true)
	require.True(t, ok)
	assert.True(t, IsUniquelyCompletableTo(scs, sq))
}

func mustPartial(t *testing.T, s string) latin.Partial {
	t.Helper()
	p, err := latin.ParsePartial(s)
	require.NoError(t, err)
	return p
}

func containsPartial(all []latin.Partial, want latin.Partial) bool {
	for _, p := range all {
		if p.Equal(want) {
			return true
		}
	}
	return false
}

func TestCriticalSetsOrder3(t *testing.T) {
	sq := mustSquare(t, "012120201")
	all := CriticalSets(sq)
	require.NotEmpty(t, all)

	sizes := map[int]int{}
	for i, p := range all {
		assert.True(t, IsCriticalSetOf(p, sq))
		sizes[p.CountFilled()]++
		for _, q := range all[:i] {
			assert.False(t, p.Equal(q), "duplicate critical set")
		}
	}
	// smallest critical sets carry 2 entries, largest 3
	assert.NotZero(t, sizes[2])
	assert.NotZero(t, sizes[3])
	assert.Len(t, sizes, 2)

	assert.True(t, containsPartial(all, mustPartial(t, "0...2....")))
	assert.True(t, containsPartial(all, mustPartial(t, "01.1.....")))
}

func TestCriticalSetsOrderOne(t *testing.T) {
	sq := mustSquare(t, "0")
	all := CriticalSets(sq)
	require.Len(t, all, 1)
	assert.Equal(t, 0, all[0].CountFilled())
}

func TestFindLCSOrder3(t *testing.T) {
	sq := mustSquare(t, "012120201")

	all := FindLCS(sq)
	require.NotEmpty(t, all)
	for _, p := range all {
		assert.Equal(t, 3, p.CountFilled())
		assert.True(t, IsCriticalSetOf(p, sq))
	}
}
