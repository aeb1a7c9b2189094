package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/latin"
)

func TestOATupleCodec(t *testing.T) {
	for tt := 0; tt < 27; tt++ {
		tuple := decodeTuple(tt, 3, 3)
		assert.Equal(t, tt, encodeTuple(tuple, 3))
	}
	assert.Equal(t, []int{2, 1}, decodeTuple(5, 3, 2))
}

func TestOASetRemovesSlotAndPairClashes(t *testing.T) {
	g := NewOA(3, 2)
	g.Set(0, 0, encodeTuple([]int{0, 0}, 3))

	// same row: no tuple with slot 0 = 0 or slot 1 = 0
	values := g.ValuesForCell(0, 1)
	assert.False(t, values.Contains(encodeTuple([]int{0, 1}, 3)))
	assert.False(t, values.Contains(encodeTuple([]int{1, 0}, 3)))
	assert.True(t, values.Contains(encodeTuple([]int{1, 2}, 3)))

	// different row and column: only the pair (0,0) is excluded
	values = g.ValuesForCell(1, 1)
	assert.False(t, values.Contains(encodeTuple([]int{0, 0}, 3)))
	assert.True(t, values.Contains(encodeTuple([]int{0, 1}, 3)))
}

func TestOAReducedFrame(t *testing.T) {
	g := NewOAReduced(3, 2)
	for j := 0; j < 3; j++ {
		assert.False(t, g.empty.Contains(j))
	}
	// column 0 of the first square is pinned to the identity
	values := g.ValuesForCell(1, 0)
	for it := values.Iter(); ; {
		tt, ok := it.Next()
		if !ok {
			break
		}
		assert.Equal(t, 1, decodeTuple(tt, 3, 2)[0])
	}
}

func TestOASearchFindsOrthogonalPair(t *testing.T) {
	sqs, ok := solveOA(NewOAReduced(4, 2))
	require.True(t, ok)
	require.Len(t, sqs, 2)
	assert.True(t, sqs[0].IsOrthogonalTo(sqs[1]))
	for _, sq := range sqs {
		_, valid := latin.NewSquare(sq.N(), sq.Cells())
		assert.True(t, valid)
	}
}

func TestOAOrderTwoHasNoOrthogonalPair(t *testing.T) {
	_, ok := solveOA(NewOAReduced(2, 2))
	assert.False(t, ok)
}

func TestOAFromPartialPinsFirstSquare(t *testing.T) {
	p, err := latin.ParsePartial("012120201")
	require.NoError(t, err)

	g := NewOAFromPartial(p, 1)
	sqs, ok := solveOA(g)
	require.True(t, ok)
	assert.Equal(t, "012120201", sqs[0].String())
}

// solveOA runs a plain DFS over the joint grid and returns the first
// solution.
func solveOA(g *OAGrid) ([]latin.Square, bool) {
	if g.IsSolved() {
		return g.Squares()
	}
	if !g.IsSolvable() {
		return nil, false
	}
	cell, ok := g.MostConstrainedCell()
	if !ok {
		return nil, false
	}
	values := g.ValuesForCell(cell.Row, cell.Col)
	for it := values.Iter(); ; {
		tt, ok := it.Next()
		if !ok {
			return nil, false
		}
		child := g.Clone()
		child.SetAndPropagate(cell.Row, cell.Col, tt)
		if sqs, ok := solveOA(child); ok {
			return sqs, true
		}
	}
}
