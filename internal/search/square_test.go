package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/latin"
)

func mustParse(t *testing.T, text string) latin.Square {
	t.Helper()
	sq, err := latin.ParseSquare(text)
	require.NoError(t, err)
	return sq
}

func collectSquares(t *testing.T, g *SquareGenerator, limit int) []latin.Square {
	t.Helper()
	var out []latin.Square
	for {
		sq, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, sq)
		require.LessOrEqual(t, len(out), limit, "generator exceeded expected output size")
	}
}

func TestSquareGeneratorReducedCounts(t *testing.T) {
	// reduced Latin squares of order n
	counts := map[int]int{1: 1, 2: 1, 3: 1, 4: 4, 5: 56}
	for n, want := range counts {
		sqs := collectSquares(t, NewSquareGenerator(n), want)
		assert.Len(t, sqs, want, "order %d", n)
		for _, sq := range sqs {
			assert.True(t, sq.IsReduced(), "order %d emitted %s", n, sq)
		}
	}
}

func TestSquareGeneratorEmitsDistinctSquares(t *testing.T) {
	seen := map[string]bool{}
	g := NewSquareGenerator(4)
	for {
		sq, ok := g.Next()
		if !ok {
			break
		}
		assert.False(t, seen[sq.String()], "duplicate %s", sq)
		seen[sq.String()] = true
	}
	assert.Len(t, seen, 4)
}

func TestSquareGeneratorFromPartialUniqueCompletion(t *testing.T) {
	sq := mustParse(t, "0123103223013210")
	// dropping one symbol leaves one missing entry per line, so the
	// completion is forced
	g := NewSquareGeneratorFromPartial(sq.WithoutVals(3))

	got, ok := g.Next()
	require.True(t, ok)
	assert.True(t, sq.Equal(got))

	_, ok = g.Next()
	assert.False(t, ok)
}

func TestSquareGeneratorFromPartialComplete(t *testing.T) {
	sq := mustParse(t, "012120201")
	g := NewSquareGeneratorFromPartial(sq.Partial())

	got, ok := g.Next()
	require.True(t, ok)
	assert.True(t, sq.Equal(got))

	_, ok = g.Next()
	assert.False(t, ok)
}

func TestSquareGeneratorFromPartialContradiction(t *testing.T) {
	// (0,2) is forced to 2, clashing with the clue at (2,2)
	p, err := latin.ParsePartial("01......2")
	require.NoError(t, err)
	g := NewSquareGeneratorFromPartial(p)
	_, ok := g.Next()
	assert.False(t, ok)
}
