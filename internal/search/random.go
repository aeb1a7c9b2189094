package search

import (
	"math/bits"

	"github.com/roach88/latsq/internal/constraint"
	"github.com/roach88/latsq/internal/latin"
)

// Rand is xoshiro256** with the four-word state seeded as
// [seed, 1, 2, 3].
// https://en.wikipedia.org/wiki/Xorshift#xoshiro256**
type Rand struct {
	s [4]uint64
}

// NewRand returns a deterministic generator for the seed.
func NewRand(seed uint64) *Rand {
	return &Rand{s: [4]uint64{seed, 1, 2, 3}}
}

// Uint64 returns the next value in the sequence.
func (x *Rand) Uint64() uint64 {
	s := x.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	x.s = [4]uint64{
		s[0] ^ s[1] ^ s[3],
		s[0] ^ s[1] ^ s[2],
		s[2] ^ s[0] ^ (s[1] << 17),
		bits.RotateLeft64(s[3]^s[1], 45),
	}
	return result
}

// RandomGenerator produces Latin squares by randomised construction:
// repeatedly pick a random undetermined cell and a random admissible
// value, restarting from an empty grid on contradiction. The sequence
// is fully determined by the seed.
type RandomGenerator struct {
	n   int
	rng *Rand
}

// NewRandomGenerator returns a seeded generator of random Latin
// squares of order n.
func NewRandomGenerator(n int, seed uint64) *RandomGenerator {
	return &RandomGenerator{n: n, rng: NewRand(seed)}
}

// Next returns a random Latin square. It always succeeds; dead ends
// restart the construction.
func (g *RandomGenerator) Next() latin.Square {
	n := g.n
	grid := constraint.New(n)
	cell := constraint.Cell{}

	for {
		values := grid.Get(cell.Row, cell.Col)
		if values.IsEmpty() {
			grid = constraint.New(n)
			cell = constraint.Cell{}
			continue
		}
		v := values.Nth(int(g.rng.Uint64() % uint64(values.Len())))

		next := grid.Clone()
		next.Set(cell.Row, cell.Col, v)
		next.FindSingles()
		if next.IsSolved() {
			sq, _ := next.Square()
			return sq
		}
		if !next.IsSolvable() {
			grid = constraint.New(n)
			cell = constraint.Cell{}
			continue
		}

		grid = next
		for {
			cell = constraint.Cell{
				Row: int(g.rng.Uint64() % uint64(n)),
				Col: int(g.rng.Uint64() % uint64(n)),
			}
			if !grid.IsSet(cell.Row, cell.Col) {
				break
			}
		}
	}
}
