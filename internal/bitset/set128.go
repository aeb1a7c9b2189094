package bitset

import "math/bits"

// Set128 is a bit set over [0, 128). Cell masks of an n×n grid fit here
// for every supported order (11² = 121).
type Set128 struct {
	lo, hi uint64
}

// All128LessThan returns the set {0, …, n-1}.
func All128LessThan(n int) Set128 {
	switch {
	case n <= 0:
		return Set128{}
	case n < 64:
		return Set128{lo: 1<<n - 1}
	case n == 64:
		return Set128{lo: ^uint64(0)}
	case n < 128:
		return Set128{lo: ^uint64(0), hi: 1<<(n-64) - 1}
	default:
		return Set128{lo: ^uint64(0), hi: ^uint64(0)}
	}
}

// Single128 returns the set {i}.
func Single128(i int) Set128 {
	var s Set128
	s.Insert(i)
	return s
}

// From128 builds a set from the given elements.
func From128(elems ...int) Set128 {
	var s Set128
	for _, e := range elems {
		s.Insert(e)
	}
	return s
}

func (s *Set128) Insert(i int) {
	if i < 64 {
		s.lo |= 1 << i
	} else {
		s.hi |= 1 << (i - 64)
	}
}

func (s *Set128) Remove(i int) {
	if i < 64 {
		s.lo &^= 1 << i
	} else {
		s.hi &^= 1 << (i - 64)
	}
}

func (s Set128) Contains(i int) bool {
	if i < 64 {
		return s.lo&(1<<i) != 0
	}
	return s.hi&(1<<(i-64)) != 0
}

func (s Set128) Union(o Set128) Set128     { return Set128{s.lo | o.lo, s.hi | o.hi} }
func (s Set128) Intersect(o Set128) Set128 { return Set128{s.lo & o.lo, s.hi & o.hi} }
func (s Set128) Difference(o Set128) Set128 {
	return Set128{s.lo &^ o.lo, s.hi &^ o.hi}
}
func (s Set128) Complement() Set128 { return Set128{^s.lo, ^s.hi} }
func (s Set128) IsEmpty() bool      { return s.lo == 0 && s.hi == 0 }
func (s Set128) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}
func (s Set128) IsSingle() bool          { return s.Len() == 1 }
func (s Set128) IsSubsetOf(o Set128) bool { return s.lo&o.lo == s.lo && s.hi&o.hi == s.hi }
func (s Set128) IsDisjoint(o Set128) bool { return s.lo&o.lo == 0 && s.hi&o.hi == 0 }

// First returns the smallest element, or -1 if the set is empty.
func (s Set128) First() int {
	if s.lo != 0 {
		return bits.TrailingZeros64(s.lo)
	}
	if s.hi != 0 {
		return 64 + bits.TrailingZeros64(s.hi)
	}
	return -1
}

func (s Set128) Iter() Iter128 { return Iter128{s} }

func (s Set128) Elems() []int {
	elems := make([]int, 0, s.Len())
	for it := s.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			return elems
		}
		elems = append(elems, e)
	}
}

// Words returns the two 64-bit backing words, low word first. Used by the
// binary critical-set encoding.
func (s Set128) Words() (lo, hi uint64) { return s.lo, s.hi }

// FromWords rebuilds a set from its backing words.
func FromWords(lo, hi uint64) Set128 { return Set128{lo, hi} }

type Iter128 struct{ s Set128 }

func (it *Iter128) Next() (int, bool) {
	if it.s.lo != 0 {
		i := bits.TrailingZeros64(it.s.lo)
		it.s.lo &= it.s.lo - 1
		return i, true
	}
	if it.s.hi != 0 {
		i := bits.TrailingZeros64(it.s.hi)
		it.s.hi &= it.s.hi - 1
		return 64 + i, true
	}
	return 0, false
}

// Set192 is a bit set over [0, 192). It covers joint tuple spaces that
// outgrow Set128 but do not warrant a heap-backed Vec, e.g. pair universes
// at hypothetical orders 12–13; the engines for n ≤ 11 select the
// narrower widths.
type Set192 struct {
	w [3]uint64
}

func All192LessThan(n int) Set192 {
	var s Set192
	for i := range s.w {
		switch {
		case n >= 64:
			s.w[i] = ^uint64(0)
		case n > 0:
			s.w[i] = 1<<n - 1
		}
		n -= 64
	}
	return s
}

func Single192(i int) Set192 {
	var s Set192
	s.Insert(i)
	return s
}

func (s *Set192) Insert(i int)      { s.w[i/64] |= 1 << (i % 64) }
func (s *Set192) Remove(i int)      { s.w[i/64] &^= 1 << (i % 64) }
func (s Set192) Contains(i int) bool { return s.w[i/64]&(1<<(i%64)) != 0 }

func (s Set192) Union(o Set192) Set192 {
	return Set192{[3]uint64{s.w[0] | o.w[0], s.w[1] | o.w[1], s.w[2] | o.w[2]}}
}
func (s Set192) Intersect(o Set192) Set192 {
	return Set192{[3]uint64{s.w[0] & o.w[0], s.w[1] & o.w[1], s.w[2] & o.w[2]}}
}
func (s Set192) Difference(o Set192) Set192 {
	return Set192{[3]uint64{s.w[0] &^ o.w[0], s.w[1] &^ o.w[1], s.w[2] &^ o.w[2]}}
}
func (s Set192) Complement() Set192 {
	return Set192{[3]uint64{^s.w[0], ^s.w[1], ^s.w[2]}}
}
func (s Set192) IsEmpty() bool { return s.w[0] == 0 && s.w[1] == 0 && s.w[2] == 0 }
func (s Set192) Len() int {
	return bits.OnesCount64(s.w[0]) + bits.OnesCount64(s.w[1]) + bits.OnesCount64(s.w[2])
}
func (s Set192) IsSingle() bool { return s.Len() == 1 }
func (s Set192) IsSubsetOf(o Set192) bool {
	return s.w[0]&o.w[0] == s.w[0] && s.w[1]&o.w[1] == s.w[1] && s.w[2]&o.w[2] == s.w[2]
}
func (s Set192) IsDisjoint(o Set192) bool {
	return s.w[0]&o.w[0] == 0 && s.w[1]&o.w[1] == 0 && s.w[2]&o.w[2] == 0
}

func (s Set192) First() int {
	for i, w := range s.w {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

func (s Set192) Iter() Iter192 { return Iter192{s} }

type Iter192 struct{ s Set192 }

func (it *Iter192) Next() (int, bool) {
	for i := range it.s.w {
		if it.s.w[i] != 0 {
			b := bits.TrailingZeros64(it.s.w[i])
			it.s.w[i] &= it.s.w[i] - 1
			return i*64 + b, true
		}
	}
	return 0, false
}
