package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/latin"
)

func TestPartialSquareGeneratorFillsToFullSquare(t *testing.T) {
	sq := mustParse(t, "012120201")
	seed := latin.NewPartial(3)
	seed.Set(0, 0, 0)

	g := NewPartialSquareGeneratorFromPartial(sq, seed, 9)

	got, ok := g.Next()
	require.True(t, ok)
	assert.True(t, got.Equal(sq.Partial()))

	_, ok = g.Next()
	assert.False(t, ok)
}

func TestPartialSquareGeneratorSubsetCount(t *testing.T) {
	sq := mustParse(t, "012120201")
	g := NewPartialSquareGenerator(sq, 2)

	count := 0
	for {
		p, ok := g.Next()
		if !ok {
			break
		}
		count++
		assert.Equal(t, 2, p.CountFilled())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if v, set := p.Get(i, j); set {
					assert.Equal(t, sq.Get(i, j), v)
				}
			}
		}
	}
	assert.Equal(t, 36, count) // C(9, 2)
}

func TestPartialSquareGeneratorOversizedSeed(t *testing.T) {
	sq := mustParse(t, "012120201")
	g := NewPartialSquareGeneratorFromPartial(sq, sq.Partial(), 4)
	_, ok := g.Next()
	assert.False(t, ok)
}
