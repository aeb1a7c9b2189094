package bitset

import "math/bits"

// Vec is a growable bit set backed by a word slice. It carries the tuple
// possibility spaces of the joint orthogonal-array engine, whose universe
// size n^k has no useful compile-time bound.
type Vec struct {
	words []uint64
}

// NewVec returns an empty set able to hold [0, capacity) without growing.
func NewVec(capacity int) Vec {
	return Vec{words: make([]uint64, (capacity+63)/64)}
}

// VecAllLessThan returns the set {0, …, n-1}.
func VecAllLessThan(n int) Vec {
	v := NewVec(n)
	for i := range v.words {
		v.words[i] = ^uint64(0)
	}
	if r := n % 64; r != 0 {
		v.words[len(v.words)-1] = 1<<r - 1
	}
	return v
}

func (v *Vec) grow(word int) {
	for len(v.words) <= word {
		v.words = append(v.words, 0)
	}
}

func (v *Vec) Insert(i int) {
	v.grow(i / 64)
	v.words[i/64] |= 1 << (i % 64)
}

func (v *Vec) Remove(i int) {
	if i/64 < len(v.words) {
		v.words[i/64] &^= 1 << (i % 64)
	}
}

func (v Vec) Contains(i int) bool {
	return i/64 < len(v.words) && v.words[i/64]&(1<<(i%64)) != 0
}

// UnionWith adds every element of o to v in place.
func (v *Vec) UnionWith(o Vec) {
	v.grow(len(o.words) - 1)
	for i, w := range o.words {
		v.words[i] |= w
	}
}

// IntersectWith removes every element of v not in o, in place.
func (v *Vec) IntersectWith(o Vec) {
	for i := range v.words {
		if i < len(o.words) {
			v.words[i] &= o.words[i]
		} else {
			v.words[i] = 0
		}
	}
}

// MinusWith removes every element of o from v in place.
func (v *Vec) MinusWith(o Vec) {
	for i := range v.words {
		if i < len(o.words) {
			v.words[i] &^= o.words[i]
		}
	}
}

func (v Vec) IsSubsetOf(o Vec) bool {
	for i, w := range v.words {
		var ow uint64
		if i < len(o.words) {
			ow = o.words[i]
		}
		if w&ow != w {
			return false
		}
	}
	return true
}

func (v Vec) IsDisjoint(o Vec) bool {
	for i, w := range v.words {
		if i < len(o.words) && w&o.words[i] != 0 {
			return false
		}
	}
	return true
}

func (v Vec) IsEmpty() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (v Vec) Len() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (v Vec) IsSingle() bool { return v.Len() == 1 }

// FirstOne returns the smallest element, or -1 if the set is empty.
func (v Vec) FirstOne() int {
	for i, w := range v.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// FirstZero returns the smallest absent value. The result is unbounded:
// for a set equal to its backing capacity it is the capacity itself.
func (v Vec) FirstZero() int {
	for i, w := range v.words {
		if w != ^uint64(0) {
			return i*64 + bits.TrailingZeros64(^w)
		}
	}
	return len(v.words) * 64
}

func (v Vec) Clone() Vec {
	words := make([]uint64, len(v.words))
	copy(words, v.words)
	return Vec{words: words}
}

func (v Vec) Iter() VecIter { return VecIter{v: v.Clone()} }

func (v Vec) Elems() []int {
	elems := make([]int, 0, v.Len())
	for it := v.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			return elems
		}
		elems = append(elems, e)
	}
}

// VecIter owns a private copy of the words so advancing it never mutates
// the iterated set.
type VecIter struct {
	v Vec
}

func (it *VecIter) Next() (int, bool) {
	for i := range it.v.words {
		if it.v.words[i] != 0 {
			b := bits.TrailingZeros64(it.v.words[i])
			it.v.words[i] &= it.v.words[i] - 1
			return i*64 + b, true
		}
	}
	return 0, false
}
