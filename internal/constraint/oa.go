package constraint

import (
	"fmt"
	"math"

	"github.com/roach88/latsq/internal/bitset"
	"github.com/roach88/latsq/internal/latin"
)

// OAGrid is the joint constraint state for k mutually orthogonal
// squares of order n, in the orthogonal-array view: each of the n²
// cells holds a possibility set over the n^k symbol tuples. The Latin
// property is kept per slot through row and column masks; orthogonality
// is kept through a global mask excluding tuples whose slot-pair values
// are already used.
type OAGrid struct {
	n, k int

	rows     []bitset.Vec // tuples still allowed per row
	cols     []bitset.Vec // tuples still allowed per column
	allowed  bitset.Vec   // tuples not clashing with any used slot pair
	cellMask []bitset.Vec // extra per-cell restrictions (seeded partials)

	empty  bitset.Set128 // cells not yet determined
	placed []int         // determined tuple per cell, -1 when empty

	masks *oaMasks
}

// oaMasks holds the immutable precomputed tuple masks for one (n, k).
// Shared by every clone of a grid.
type oaMasks struct {
	n, k int

	// withSlotValue[s][v]: tuples whose slot s holds v.
	withSlotValue [][]bitset.Vec
	// withPairValue[p][a*n+b]: tuples whose slot pair p holds (a, b),
	// with p ranging over ordered slot pairs u < v.
	withPairValue [][]bitset.Vec
	pairs         [][2]int
}

func newOAMasks(n, k int) *oaMasks {
	total := pow(n, k)
	m := &oaMasks{n: n, k: k}

	m.withSlotValue = make([][]bitset.Vec, k)
	for s := 0; s < k; s++ {
		m.withSlotValue[s] = make([]bitset.Vec, n)
		for v := 0; v < n; v++ {
			m.withSlotValue[s][v] = bitset.NewVec(total)
		}
	}
	for u := 0; u < k; u++ {
		for v := u + 1; v < k; v++ {
			m.pairs = append(m.pairs, [2]int{u, v})
		}
	}
	m.withPairValue = make([][]bitset.Vec, len(m.pairs))
	for p := range m.pairs {
		m.withPairValue[p] = make([]bitset.Vec, n*n)
		for ab := range m.withPairValue[p] {
			m.withPairValue[p][ab] = bitset.NewVec(total)
		}
	}

	for t := 0; t < total; t++ {
		tuple := decodeTuple(t, n, k)
		for s, v := range tuple {
			m.withSlotValue[s][v].Insert(t)
		}
		for p, pair := range m.pairs {
			ab := tuple[pair[0]]*n + tuple[pair[1]]
			m.withPairValue[p][ab].Insert(t)
		}
	}
	return m
}

func pow(n, k int) int {
	r := 1
	for i := 0; i < k; i++ {
		r *= n
	}
	return r
}

// decodeTuple expands a tuple index into its k slot values, slot 0
// least significant.
func decodeTuple(t, n, k int) []int {
	tuple := make([]int, k)
	for s := 0; s < k; s++ {
		tuple[s] = t % n
		t /= n
	}
	return tuple
}

// encodeTuple packs k slot values into a tuple index.
func encodeTuple(tuple []int, n int) int {
	t := 0
	for s := len(tuple) - 1; s >= 0; s-- {
		t = t*n + tuple[s]
	}
	return t
}

// NewOA returns the unconstrained joint grid for k squares of order n.
func NewOA(n, k int) *OAGrid {
	total := pow(n, k)
	g := &OAGrid{
		n:        n,
		k:        k,
		rows:     make([]bitset.Vec, n),
		cols:     make([]bitset.Vec, n),
		allowed:  bitset.VecAllLessThan(total),
		cellMask: make([]bitset.Vec, n*n),
		empty:    bitset.All128LessThan(n * n),
		placed:   make([]int, n*n),
		masks:    newOAMasks(n, k),
	}
	for i := 0; i < n; i++ {
		g.rows[i] = bitset.VecAllLessThan(total)
		g.cols[i] = bitset.VecAllLessThan(total)
	}
	for i := range g.cellMask {
		g.cellMask[i] = bitset.VecAllLessThan(total)
	}
	for i := range g.placed {
		g.placed[i] = -1
	}
	return g
}

// NewOAReduced constrains the joint grid to the reduced frame: every
// square's first row is the identity and the first square's first
// column is the identity.
func NewOAReduced(n, k int) *OAGrid {
	g := NewOA(n, k)
	tuple := make([]int, k)
	for j := 0; j < n; j++ {
		for s := range tuple {
			tuple[s] = j
		}
		g.Set(0, j, encodeTuple(tuple, n))
	}
	for i := 1; i < n; i++ {
		g.cellMask[i*n].IntersectWith(g.masks.withSlotValue[0][i])
	}
	return g
}

// NewOAFromPartial seeds slot 0 of the joint grid with a partial
// square.
func NewOAFromPartial(p latin.Partial, k int) *OAGrid {
	g := NewOA(p.N(), k)
	for i := 0; i < p.N(); i++ {
		for j := 0; j < p.N(); j++ {
			if v, ok := p.Get(i, j); ok {
				g.cellMask[i*p.N()+j].IntersectWith(g.masks.withSlotValue[0][v])
			}
		}
	}
	return g
}

// N returns the order and K the family size.
func (g *OAGrid) N() int { return g.n }
func (g *OAGrid) K() int { return g.k }

// Clone returns an independent copy sharing the immutable mask tables.
func (g *OAGrid) Clone() *OAGrid {
	c := &OAGrid{
		n:        g.n,
		k:        g.k,
		rows:     make([]bitset.Vec, g.n),
		cols:     make([]bitset.Vec, g.n),
		allowed:  g.allowed.Clone(),
		cellMask: make([]bitset.Vec, len(g.cellMask)),
		empty:    g.empty,
		placed:   make([]int, len(g.placed)),
		masks:    g.masks,
	}
	for i := 0; i < g.n; i++ {
		c.rows[i] = g.rows[i].Clone()
		c.cols[i] = g.cols[i].Clone()
	}
	for i := range g.cellMask {
		c.cellMask[i] = g.cellMask[i].Clone()
	}
	copy(c.placed, g.placed)
	return c
}

// ValuesForCell returns the tuple possibility set of cell (i, j).
func (g *OAGrid) ValuesForCell(i, j int) bitset.Vec {
	v := g.rows[i].Clone()
	v.IntersectWith(g.cols[j])
	v.IntersectWith(g.allowed)
	v.IntersectWith(g.cellMask[i*g.n+j])
	return v
}

// Set determines cell (i, j) to the given tuple index. The tuple must
// be in the cell's possibility set.
func (g *OAGrid) Set(i, j, t int) {
	if !g.ValuesForCell(i, j).Contains(t) {
		panic(fmt.Sprintf("constraint: oa set(%d, %d, %d) outside possibility set", i, j, t))
	}
	tuple := decodeTuple(t, g.n, g.k)
	for s, v := range tuple {
		g.rows[i].MinusWith(g.masks.withSlotValue[s][v])
		g.cols[j].MinusWith(g.masks.withSlotValue[s][v])
	}
	for p, pair := range g.masks.pairs {
		ab := tuple[pair[0]]*g.n + tuple[pair[1]]
		g.allowed.MinusWith(g.masks.withPairValue[p][ab])
	}
	g.empty.Remove(i*g.n + j)
	g.placed[i*g.n+j] = t
}

// SetAndPropagate determines a cell, then repeatedly places naked
// singles until no empty cell has a singleton possibility set.
func (g *OAGrid) SetAndPropagate(i, j, t int) {
	g.Set(i, j, t)
	for {
		progressed := false
		for it := g.empty.Iter(); ; {
			idx, ok := it.Next()
			if !ok {
				break
			}
			values := g.ValuesForCell(idx/g.n, idx%g.n)
			if values.IsSingle() {
				g.Set(idx/g.n, idx%g.n, values.FirstOne())
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

// FindSingles places every tuple that fits exactly one empty cell.
func (g *OAGrid) FindSingles() {
	for {
		progressed := false
		for it := g.allowed.Iter(); ; {
			t, ok := it.Next()
			if !ok {
				break
			}
			count, lastIdx := 0, -1
			for cit := g.empty.Iter(); ; {
				idx, ok := cit.Next()
				if !ok {
					break
				}
				if g.ValuesForCell(idx/g.n, idx%g.n).Contains(t) {
					count++
					lastIdx = idx
					if count > 1 {
						break
					}
				}
			}
			if count == 1 {
				g.SetAndPropagate(lastIdx/g.n, lastIdx%g.n, t)
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

// IsSolved reports whether every cell is determined.
func (g *OAGrid) IsSolved() bool { return g.empty.IsEmpty() }

// FilledCells returns the number of determined cells.
func (g *OAGrid) FilledCells() int { return g.n*g.n - g.empty.Len() }

// IsSolvable reports whether every empty cell still has a possible
// tuple and every unused slot-pair value can still be placed somewhere.
func (g *OAGrid) IsSolvable() bool {
	for it := g.empty.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			break
		}
		if g.ValuesForCell(idx/g.n, idx%g.n).IsEmpty() {
			return false
		}
	}
	for p := range g.masks.pairs {
		for ab := 0; ab < g.n*g.n; ab++ {
			if !g.pairPlaceable(p, ab) {
				return false
			}
		}
	}
	return true
}

func (g *OAGrid) pairPlaceable(p, ab int) bool {
	mask := g.masks.withPairValue[p][ab]
	if g.allowed.IsDisjoint(mask) {
		// the pair value was consumed by a determined cell
		for _, t := range g.placed {
			if t >= 0 && mask.Contains(t) {
				return true
			}
		}
		return false
	}
	for it := g.empty.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			return false
		}
		if !g.ValuesForCell(idx/g.n, idx%g.n).IsDisjoint(mask) {
			return true
		}
	}
}

// PossibleValuesLog returns the sum over empty cells of the log of the
// possibility count, the branching-order key of the joint search.
func (g *OAGrid) PossibleValuesLog() float64 {
	total := 0.0
	for it := g.empty.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			return total
		}
		total += math.Log2(float64(g.ValuesForCell(idx/g.n, idx%g.n).Len()))
	}
}

// MostConstrainedCell returns an empty cell with the fewest possible
// tuples.
func (g *OAGrid) MostConstrainedCell() (Cell, bool) {
	best, bestLen := Cell{}, 0
	found := false
	for it := g.empty.Iter(); ; {
		idx, ok := it.Next()
		if !ok {
			return best, found
		}
		l := g.ValuesForCell(idx/g.n, idx%g.n).Len()
		if !found || l < bestLen {
			best, bestLen, found = Cell{idx / g.n, idx % g.n}, l, true
		}
	}
}

// Squares converts a solved grid into its k member squares.
func (g *OAGrid) Squares() ([]latin.Square, bool) {
	if !g.IsSolved() {
		return nil, false
	}
	sqs := make([]latin.Square, g.k)
	for s := 0; s < g.k; s++ {
		cells := make([]uint8, g.n*g.n)
		for idx, t := range g.placed {
			cells[idx] = uint8(decodeTuple(t, g.n, g.k)[s])
		}
		sq, ok := latin.NewSquare(g.n, cells)
		if !ok {
			return nil, false
		}
		sqs[s] = sq
	}
	return sqs, true
}
