// Package search provides the lazy square enumerators: full reduced
// enumeration, row-at-a-time isotopy and main-class streams, randomised
// generation, partial-square subsets, and the joint MOLS search.
package search

import "slices"

// TupleIter enumerates the k-element subsets of [0, n) in
// lexicographic order.
type TupleIter struct {
	n, k int
	cur  []int
	done bool
}

// NewTupleIter returns an iterator over all k-subsets of [0, n).
func NewTupleIter(n, k int) *TupleIter {
	it := &TupleIter{n: n, k: k, cur: make([]int, k)}
	for i := range it.cur {
		it.cur[i] = i
	}
	it.done = k > n
	return it
}

// Next returns the next subset in increasing-element form, or ok=false
// when the sequence is exhausted.
func (it *TupleIter) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}
	out := slices.Clone(it.cur)
	i := it.k - 1
	for i >= 0 && it.cur[i] == it.n-it.k+i {
		i--
	}
	if i < 0 {
		it.done = true
	} else {
		it.cur[i]++
		for j := i + 1; j < it.k; j++ {
			it.cur[j] = it.cur[j-1] + 1
		}
	}
	return out, true
}
