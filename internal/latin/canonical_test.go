package latin

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/perm"
)

func randomPerm(rng *rand.Rand, n int) perm.Perm {
	return perm.FromRank(rng.Intn(perm.Factorial(n)), n)
}

func TestIsotopyClassIsReducedAndIdempotent(t *testing.T) {
	lookup := cycles.NewLookup(4)
	sq := mustParse(t, "0123103223013210")

	canonical := sq.IsotopyClass(lookup)
	assert.True(t, canonical.IsReduced())
	assert.True(t, canonical.IsotopyClass(lookup).Equal(canonical))
}

func TestIsotopyClassInvariantUnderRowSwap(t *testing.T) {
	lookup := cycles.NewLookup(4)

	sq := mustParse(t, "0123103223013210")
	swapped := mustParse(t, "1032012332102301")
	require.True(t, swapped.Equal(sq.PermutedRows(perm.FromImage([]uint8{1, 0, 3, 2}))))

	assert.True(t, sq.IsotopyClass(lookup).Equal(swapped.IsotopyClass(lookup)))
	assert.True(t, sq.MainClass(lookup).Equal(swapped.MainClass(lookup)))
}

func TestIsotopyClassInvariantUnderRandomIsotopies(t *testing.T) {
	lookup := cycles.NewLookup(5)
	rng := rand.New(rand.NewSource(1))

	sq := mustParse(t, "0123412340234013401240123")
	want := sq.IsotopyClass(lookup)

	for i := 0; i < 20; i++ {
		applied := sq.Apply(randomPerm(rng, 5), randomPerm(rng, 5), randomPerm(rng, 5))
		assert.True(t, applied.IsotopyClass(lookup).Equal(want), "iteration %d", i)
	}
}

func TestIsotopyClassInvariantAtOrderSix(t *testing.T) {
	lookup := cycles.NewLookup(6)
	rng := rand.New(rand.NewSource(3))

	sq := mustParse(t, "012345123450234501345012450123501234")
	want := sq.IsotopyClass(lookup)

	for i := 0; i < 20; i++ {
		applied := sq.Apply(randomPerm(rng, 6), randomPerm(rng, 6), randomPerm(rng, 6))
		assert.True(t, applied.IsotopyClass(lookup).Equal(want), "iteration %d", i)
	}
}

func TestMainClassInvariantUnderConjugation(t *testing.T) {
	lookup := cycles.NewLookup(4)
	rng := rand.New(rand.NewSource(2))

	sq := mustParse(t, "0123103223013210")
	want := sq.MainClass(lookup)

	it := perm.NewIter(3)
	for {
		role, ok := it.Next()
		if !ok {
			break
		}
		conj := sq.Conjugate(role)
		assert.True(t, conj.MainClass(lookup).Equal(want), "role %v", role)

		applied := conj.Apply(randomPerm(rng, 4), randomPerm(rng, 4), randomPerm(rng, 4))
		assert.True(t, applied.MainClass(lookup).Equal(want), "role %v with isotopy", role)
	}
}

func TestIsotopyPermutationsMapOntoCanonical(t *testing.T) {
	lookup := cycles.NewLookup(4)
	sq := mustParse(t, "0123230132101032")

	canonical, triples := sq.IsotopyClassPermutations(lookup)
	require.NotEmpty(t, triples)
	for _, triple := range triples {
		assert.True(t, sq.Apply(triple.Row, triple.Col, triple.Sym).Equal(canonical))
	}
}

func TestMainClassMinimal(t *testing.T) {
	lookup := cycles.NewLookup(4)
	sq := mustParse(t, "0123103223013210")

	canonical := sq.MainClass(lookup)
	assert.True(t, canonical.IsMainClassMinimal(lookup))
	assert.True(t, canonical.CmpRows(sq) <= 0)
}
