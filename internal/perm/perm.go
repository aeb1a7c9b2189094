// Package perm implements permutations of {0, …, n-1} stored as image
// arrays, together with lexicographic enumeration and rank decoding.
package perm

import "fmt"

// Perm is a permutation stored as its image array: p[i] is the image of i.
type Perm []uint8

// Factorial returns n!.
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// Identity returns the identity permutation of width n.
func Identity(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = uint8(i)
	}
	return p
}

// FromImage wraps an image array as a permutation. It panics if the array
// is not a bijection of [0, n); callers constructing permutations from
// untrusted input must validate first.
func FromImage(image []uint8) Perm {
	seen := make([]bool, len(image))
	for _, v := range image {
		if int(v) >= len(image) || seen[v] {
			panic(fmt.Sprintf("perm: not a bijection: %v", image))
		}
		seen[v] = true
	}
	return Perm(image)
}

// FromRank decodes the permutation of width n at the given position in
// lexicographic order, using the factorial number system.
func FromRank(rank, n int) Perm {
	p := make(Perm, n)
	left := make([]uint8, n)
	for i := range left {
		left[i] = uint8(i)
	}
	for k := 0; k < n; k++ {
		fac := Factorial(n - k - 1)
		d := rank / fac
		p[k] = left[d]
		left = append(left[:d], left[d+1:]...)
		rank %= fac
	}
	return p
}

// Rank returns the position of p in the lexicographic order of
// permutations of its width. Inverse of FromRank.
func (p Perm) Rank() int {
	n := len(p)
	left := make([]uint8, n)
	for i := range left {
		left[i] = uint8(i)
	}
	rank := 0
	for k, v := range p {
		d := 0
		for left[d] != v {
			d++
		}
		left = append(left[:d], left[d+1:]...)
		rank += d * Factorial(n-k-1)
	}
	return rank
}

// Apply returns the image of x.
func (p Perm) Apply(x int) int { return int(p[x]) }

// Inverse returns the permutation q with q[p[i]] = i.
func (p Perm) Inverse() Perm {
	inv := make(Perm, len(p))
	for i, v := range p {
		inv[v] = uint8(i)
	}
	return inv
}

// Then returns the composition applying p first and then q.
func (p Perm) Then(q Perm) Perm {
	r := make(Perm, len(p))
	for i, v := range p {
		r[i] = q[v]
	}
	return r
}

// Clone returns an independent copy of p.
func (p Perm) Clone() Perm {
	c := make(Perm, len(p))
	copy(c, p)
	return c
}

// Equal reports whether p and q are the same permutation.
func (p Perm) Equal(q Perm) bool {
	if len(p) != len(q) {
		return false
	}
	for i, v := range p {
		if q[i] != v {
			return false
		}
	}
	return true
}

// Cycles returns the cycle decomposition. Each cycle is rotated so its
// smallest element comes first, and cycles are ordered by that element.
// Fixed points appear as length-1 cycles.
func (p Perm) Cycles() [][]int {
	var cycles [][]int
	seen := make([]bool, len(p))
	for i := range p {
		if seen[i] {
			continue
		}
		cycle := []int{i}
		seen[i] = true
		for j := int(p[i]); j != i; j = int(p[j]) {
			cycle = append(cycle, j)
			seen[j] = true
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// CycleLengths returns the sorted multiset of cycle lengths.
func (p Perm) CycleLengths() []int {
	lengths := make([]int, 0, len(p))
	for _, c := range p.Cycles() {
		lengths = append(lengths, len(c))
	}
	for i := 1; i < len(lengths); i++ {
		for j := i; j > 0 && lengths[j-1] > lengths[j]; j-- {
			lengths[j-1], lengths[j] = lengths[j], lengths[j-1]
		}
	}
	return lengths
}

// PadWithID extends p to width n, fixing the added positions. It panics
// when p is already wider than n.
func (p Perm) PadWithID(n int) Perm {
	if len(p) > n {
		panic("perm: cannot pad to a smaller width")
	}
	padded := Identity(n)
	copy(padded, p)
	return padded
}

// ApplySlice repositions the values of s: the value at index i moves to
// index p[i].
func ApplySlice[T any](p Perm, s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[p[i]] = v
	}
	return out
}

// Iter enumerates all permutations of a given width in lexicographic
// order.
type Iter struct {
	cur  Perm
	left int
}

// NewIter returns an iterator over the n! permutations of width n.
func NewIter(n int) *Iter {
	return &Iter{cur: Identity(n), left: Factorial(n)}
}

// Len returns the number of permutations not yet yielded.
func (it *Iter) Len() int { return it.left }

// Next returns the next permutation, or false when exhausted.
func (it *Iter) Next() (Perm, bool) {
	if it.left == 0 {
		return nil, false
	}
	it.left--
	out := it.cur.Clone()
	it.advance()
	return out, true
}

func (it *Iter) advance() {
	p := it.cur
	n := len(p)
	i := n - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return
	}
	j := n - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}
