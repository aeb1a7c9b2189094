package latin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/latsq/internal/cycles"
)

// Separator joins the squares of a MOLS in textual form.
const Separator = "-"

// MOLS is an ordered family of pairwise orthogonal Latin squares of a
// common order.
type MOLS struct {
	n   int
	sqs []Square
}

// NotOrthogonalError reports the first non-orthogonal pair found while
// constructing a MOLS.
type NotOrthogonalError struct {
	I, J int
}

func (e NotOrthogonalError) Error() string {
	return fmt.Sprintf("squares %d and %d are not orthogonal", e.I, e.J)
}

// MOLSSquareError wraps a parse failure of one member square.
type MOLSSquareError struct {
	Index int
	Err   error
}

func (e MOLSSquareError) Error() string {
	return fmt.Sprintf("error in latin square %d: %v", e.Index+1, e.Err)
}

func (e MOLSSquareError) Unwrap() error { return e.Err }

// NewMOLS validates pairwise orthogonality and wraps the family.
func NewMOLS(sqs []Square) (MOLS, error) {
	for i := range sqs {
		for j := i + 1; j < len(sqs); j++ {
			if !sqs[i].IsOrthogonalTo(sqs[j]) {
				return MOLS{}, NotOrthogonalError{I: i, J: j}
			}
		}
	}
	return MOLS{n: sqs[0].N(), sqs: sqs}, nil
}

// NewMOLSUnchecked wraps squares whose orthogonality the caller has
// already established.
func NewMOLSUnchecked(sqs []Square) MOLS {
	return MOLS{n: sqs[0].N(), sqs: sqs}
}

// ParseMOLS decodes k squares joined by the separator.
func ParseMOLS(text string) (MOLS, error) {
	parts := strings.Split(text, Separator)
	sqs := make([]Square, len(parts))
	for i, part := range parts {
		sq, err := ParseSquare(part)
		if err != nil {
			return MOLS{}, MOLSSquareError{Index: i, Err: err}
		}
		sqs[i] = sq
	}
	for i := 1; i < len(sqs); i++ {
		if sqs[i].N() != sqs[0].N() {
			return MOLS{}, MOLSSquareError{
				Index: i,
				Err:   InvalidLengthError{Len: len(parts[i])},
			}
		}
	}
	return NewMOLS(sqs)
}

// N returns the common order.
func (m MOLS) N() int { return m.n }

// K returns the number of squares.
func (m MOLS) K() int { return len(m.sqs) }

// Squares exposes the member squares. Callers must not modify the
// slice.
func (m MOLS) Squares() []Square { return m.sqs }

// String joins the member squares' digit strings.
func (m MOLS) String() string {
	parts := make([]string, len(m.sqs))
	for i, sq := range m.sqs {
		parts[i] = sq.String()
	}
	return strings.Join(parts, Separator)
}

// Cmp orders families by comparing member squares in sequence.
func (m MOLS) Cmp(o MOLS) int {
	for i := range m.sqs {
		if c := m.sqs[i].CmpRows(o.sqs[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports member-wise equality.
func (m MOLS) Equal(o MOLS) bool { return m.K() == o.K() && m.Cmp(o) == 0 }

// reduceAll relabels symbols per square so every first row is the
// identity.
func (m MOLS) reduceAll() MOLS {
	sqs := make([]Square, len(m.sqs))
	for i, sq := range m.sqs {
		sqs[i] = sq.ReduceSymbols()
	}
	return MOLS{n: m.n, sqs: sqs}
}

// MainClassSet returns the canonical family of m's paratopy orbit,
// where the symmetry additionally allows any two of the k+2
// orthogonal-array coordinates (rows, columns, and the k symbol sets)
// to take over the row and column roles.
func (m MOLS) MainClassSet(lookup *cycles.Lookup) MOLS {
	n := m.n

	values := make([][]uint8, 0, m.K()+2)
	values = append(values, RowsArray(n), ColsArray(n))
	for _, sq := range m.sqs {
		values = append(values, sq.Cells())
	}

	type pick struct {
		rcs     [3]int
		triples []Triple
	}

	var minSq Square
	var minPicks []pick

	for a := 0; a < len(values); a++ {
		for b := a + 1; b < len(values); b++ {
			for c := b + 1; c < len(values); c++ {
				subset := [3]int{a, b, c}
				for _, role := range roleAssignments() {
					rcs := [3]int{
						subset[role.Apply(0)],
						subset[role.Apply(1)],
						subset[role.Apply(2)],
					}
					sq := FromRCS(n, values[rcs[0]], values[rcs[1]], values[rcs[2]])
					cand, triples := sq.IsotopyClassPermutations(lookup)
					switch {
					case minSq.Cells() == nil || cand.CmpRows(minSq) < 0:
						minSq = cand
						minPicks = minPicks[:0]
						fallthrough
					case cand.CmpRows(minSq) == 0:
						minPicks = append(minPicks, pick{rcs: rcs, triples: triples})
					}
				}
			}
		}
	}

	minMOLS := m
	for _, p := range minPicks {
		rows, cols := values[p.rcs[0]], values[p.rcs[1]]
		for _, triple := range p.triples {
			sqs := make([]Square, 0, m.K())
			for i, vals := range values {
				if i == p.rcs[0] || i == p.rcs[1] {
					continue
				}
				sq := FromRCS(n, rows, cols, vals).
					PermutedRows(triple.Row).
					PermutedCols(triple.Col)
				sqs = append(sqs, sq)
			}
			cand := MOLS{n: n, sqs: sqs}.reduceAll()
			slices.SortFunc(cand.sqs, Square.CmpRows)
			if cand.Cmp(minMOLS) < 0 {
				minMOLS = cand
			}
		}
	}
	return minMOLS
}
