package bitset

import "math/bits"

// Set16 is a bit set over [0, 16). It is the working size for symbol sets
// and per-column masks.
type Set16 uint16

// All16LessThan returns the set {0, …, n-1}.
func All16LessThan(n int) Set16 {
	return Set16(uint32(1)<<n - 1)
}

// Single16 returns the set {i}.
func Single16(i int) Set16 { return Set16(1) << i }

// From16 builds a set from the given elements.
func From16(elems ...int) Set16 {
	var s Set16
	for _, e := range elems {
		s |= 1 << e
	}
	return s
}

func (s Set16) Contains(i int) bool    { return s&(1<<i) != 0 }
func (s *Set16) Insert(i int)          { *s |= 1 << i }
func (s *Set16) Remove(i int)          { *s &^= 1 << i }
func (s Set16) Union(o Set16) Set16    { return s | o }
func (s Set16) Intersect(o Set16) Set16 { return s & o }
func (s Set16) Difference(o Set16) Set16 { return s &^ o }
func (s Set16) Complement() Set16      { return ^s }
func (s Set16) IsEmpty() bool          { return s == 0 }
func (s Set16) Len() int               { return bits.OnesCount16(uint16(s)) }

// IsSingle reports whether exactly one bit is set.
func (s Set16) IsSingle() bool { return s != 0 && s&(s-1) == 0 }

func (s Set16) IsSubsetOf(o Set16) bool { return s&o == s }
func (s Set16) IsDisjoint(o Set16) bool { return s&o == 0 }

// First returns the smallest element, or -1 if the set is empty.
func (s Set16) First() int {
	if s == 0 {
		return -1
	}
	return bits.TrailingZeros16(uint16(s))
}

// Iter returns an iterator over the elements in increasing order.
func (s Set16) Iter() Iter16 { return Iter16{s} }

// Elems returns the elements in increasing order.
func (s Set16) Elems() []int {
	elems := make([]int, 0, s.Len())
	for it := s.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			return elems
		}
		elems = append(elems, e)
	}
}

// Nth returns the n-th smallest element (0-based), or -1 if the set has
// fewer than n+1 elements.
func (s Set16) Nth(n int) int {
	for it := s.Iter(); ; n-- {
		e, ok := it.Next()
		if !ok {
			return -1
		}
		if n == 0 {
			return e
		}
	}
}

// Iter16 iterates a Set16 low to high. Next clears the lowest set bit of
// its private copy and returns that bit's index.
type Iter16 struct{ s Set16 }

func (it *Iter16) Next() (int, bool) {
	if it.s == 0 {
		return 0, false
	}
	i := bits.TrailingZeros16(uint16(it.s))
	it.s &= it.s - 1
	return i, true
}

// Set64 is a bit set over [0, 64).
type Set64 uint64

func All64LessThan(n int) Set64 {
	if n >= 64 {
		return ^Set64(0)
	}
	return Set64(uint64(1)<<n - 1)
}

func Single64(i int) Set64 { return Set64(1) << i }

// From64 builds a set from the given elements.
func From64(elems ...int) Set64 {
	var s Set64
	for _, e := range elems {
		s.Insert(e)
	}
	return s
}

func (s Set64) Contains(i int) bool      { return s&(1<<i) != 0 }
func (s *Set64) Insert(i int)            { *s |= 1 << i }
func (s *Set64) Remove(i int)            { *s &^= 1 << i }
func (s Set64) Union(o Set64) Set64      { return s | o }
func (s Set64) Intersect(o Set64) Set64  { return s & o }
func (s Set64) Difference(o Set64) Set64 { return s &^ o }
func (s Set64) Complement() Set64        { return ^s }
func (s Set64) IsEmpty() bool            { return s == 0 }
func (s Set64) Len() int                 { return bits.OnesCount64(uint64(s)) }
func (s Set64) IsSingle() bool           { return s != 0 && s&(s-1) == 0 }
func (s Set64) IsSubsetOf(o Set64) bool  { return s&o == s }
func (s Set64) IsDisjoint(o Set64) bool  { return s&o == 0 }

func (s Set64) First() int {
	if s == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(s))
}

func (s Set64) Iter() Iter64 { return Iter64{s} }

type Iter64 struct{ s Set64 }

func (it *Iter64) Next() (int, bool) {
	if it.s == 0 {
		return 0, false
	}
	i := bits.TrailingZeros64(uint64(it.s))
	it.s &= it.s - 1
	return i, true
}
