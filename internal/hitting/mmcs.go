// Package hitting enumerates inclusion-minimal hitting sets of a
// family of bitsets with the MMCS branch-and-bound algorithm.
package hitting

import "github.com/roach88/latsq/internal/bitset"

type frame struct {
	hs        bitset.Set128
	cand      bitset.Set128
	uncovered bitset.Vec
	critical  []bitset.Vec
	cSet      bitset.Set128
	c         bitset.Iter128
}

// MMCS lazily enumerates every inclusion-minimal hitting set of the
// input family whose size does not exceed the bound. Each minimal set
// is produced exactly once.
//
// At every frame the branching set is an uncovered set with the
// fewest candidate elements, and candidates that fail the criticality
// test in one branch are withheld from sibling branches when the
// frame is left.
type MMCS struct {
	sets        []bitset.Set128
	entryToSets []bitset.Vec
	stack       []frame
	bound       int
}

// NewMMCS prepares the enumeration of minimal hitting sets of size at
// most bound. Input sets must be non-empty.
func NewMMCS(sets []bitset.Set128, bound int) *MMCS {
	universe := 0
	for _, s := range sets {
		elems := s.Elems()
		if last := elems[len(elems)-1] + 1; last > universe {
			universe = last
		}
	}

	entryToSets := make([]bitset.Vec, universe)
	for i, s := range sets {
		for it := s.Iter(); ; {
			v, ok := it.Next()
			if !ok {
				break
			}
			entryToSets[v].Insert(i)
		}
	}

	g := &MMCS{sets: sets, entryToSets: entryToSets, bound: bound}

	cand := bitset.All128LessThan(universe)
	uncovered := bitset.VecAllLessThan(len(sets))
	cSet := g.branchSet(uncovered, cand)

	g.stack = []frame{{
		cand:      cand.Difference(cSet),
		uncovered: uncovered,
		critical:  make([]bitset.Vec, universe),
		cSet:      cSet,
		c:         cSet.Iter(),
	}}
	return g
}

// branchSet picks an uncovered set with the smallest candidate
// intersection and returns that intersection.
func (g *MMCS) branchSet(uncovered bitset.Vec, cand bitset.Set128) bitset.Set128 {
	best := bitset.Set128{}
	bestLen, found := 0, false
	for it := uncovered.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			return best
		}
		c := g.sets[idx].Intersect(cand)
		if !found || c.Len() < bestLen {
			best, bestLen, found = c, c.Len(), true
		}
	}
}

// DecreaseBound lowers the size bound by one. Branches already on the
// stack are pruned against the new bound as they resume.
func (g *MMCS) DecreaseBound() { g.bound-- }

func cloneVecs(vs []bitset.Vec) []bitset.Vec {
	out := make([]bitset.Vec, len(vs))
	for i := range vs {
		out[i] = vs[i].Clone()
	}
	return out
}

// Next returns the next minimal hitting set, or ok=false when the
// search is exhausted.
func (g *MMCS) Next() (bitset.Set128, bool) {
	for len(g.stack) > 0 {
		f := &g.stack[len(g.stack)-1]

		descended := false
		for {
			v, ok := f.c.Next()
			if !ok {
				break
			}
			if f.hs.Len()+1 > g.bound {
				continue
			}

			child := frame{
				hs:        f.hs,
				uncovered: f.uncovered.Clone(),
				critical:  cloneVecs(f.critical),
			}
			child.hs.Insert(v)

			for it := g.entryToSets[v].Iter(); ; {
				s, ok := it.Next()
				if !ok {
					break
				}
				for u := range child.critical {
					if !child.critical[u].IsEmpty() {
						child.critical[u].Remove(s)
					}
				}
				if child.uncovered.Contains(s) {
					child.uncovered.Remove(s)
					child.critical[v].Insert(s)
				}
			}

			if !g.extensible(f.hs, &child) {
				continue
			}
			f.cand.Insert(v)

			if child.uncovered.IsEmpty() {
				return child.hs, true
			}
			if child.hs.Len() >= g.bound {
				// no deeper set can stay within the bound
				continue
			}

			cSet := g.branchSet(child.uncovered, f.cand)
			child.cand = f.cand.Difference(cSet)
			child.cSet = cSet
			child.c = cSet.Iter()
			g.stack = append(g.stack, child)
			descended = true
			break
		}

		if !descended {
			leaving := f.cand
			g.stack = g.stack[:len(g.stack)-1]
			if len(g.stack) > 0 {
				parent := &g.stack[len(g.stack)-1]
				parent.cand = parent.cand.Intersect(leaving)
			}
		}
	}
	return bitset.Set128{}, false
}

// extensible checks that after adding the newest element every earlier
// member of the hitting set still uniquely covers some input set.
func (g *MMCS) extensible(prev bitset.Set128, child *frame) bool {
	for it := prev.Iter(); ; {
		u, ok := it.Next()
		if !ok {
			return true
		}
		found := false
		for cit := child.critical[u].Iter(); ; {
			s, ok := cit.Next()
			if !ok {
				break
			}
			if g.sets[s].Intersect(child.hs) == bitset.Single128(u) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
}
