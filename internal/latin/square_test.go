package latin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latsq/internal/perm"
)

func mustParse(t *testing.T, text string) Square {
	t.Helper()
	sq, err := ParseSquare(text)
	require.NoError(t, err)
	return sq
}

func TestParseAndFormatRoundTrip(t *testing.T) {
	for _, text := range []string{
		"0",
		"012120201",
		"0123103223013210",
		"0123412340234013401240123",
	} {
		sq := mustParse(t, text)
		assert.Equal(t, text, sq.String())
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseSquare("01201")
	assert.Equal(t, InvalidLengthError{Len: 5}, err)

	_, err = ParseSquare("012120x01")
	assert.Equal(t, InvalidDigitError{Index: 6, Char: 'x'}, err)

	// digit out of range for n=3
	_, err = ParseSquare("012120301")
	assert.Equal(t, InvalidDigitError{Index: 6, Char: '3'}, err)

	// repeated symbol in a row
	_, err = ParseSquare("011120202")
	assert.Equal(t, NotLatinError{}, err)
}

func TestGetRowCol(t *testing.T) {
	sq := mustParse(t, "012120201")
	assert.Equal(t, 3, sq.N())
	assert.Equal(t, 2, sq.Get(1, 1))
	assert.Equal(t, []uint8{1, 2, 0}, sq.Row(1))
	assert.Equal(t, []uint8{2, 0, 1}, sq.Col(2))
}

func TestIsOrthogonalTo(t *testing.T) {
	s1 := mustParse(t, "0123103223013210")
	s2 := mustParse(t, "0123230132101032")
	assert.True(t, s1.IsOrthogonalTo(s2))
	assert.True(t, s2.IsOrthogonalTo(s1))

	// a square is never orthogonal to itself for n > 1
	assert.False(t, s1.IsOrthogonalTo(s1))
}

func TestPermutations(t *testing.T) {
	sq := mustParse(t, "012120201")

	swap01 := perm.FromImage([]uint8{1, 0, 2})
	assert.Equal(t, "120012201", sq.PermutedRows(swap01).String())
	assert.Equal(t, "102210021", sq.PermutedCols(swap01).String())
	assert.Equal(t, "102021210", sq.PermutedVals(swap01).String())

	id := perm.Identity(3)
	assert.True(t, sq.Apply(id, id, id).Equal(sq))
}

func TestReduce(t *testing.T) {
	sq := mustParse(t, "120012201")
	reduced := sq.Reduce()
	assert.True(t, reduced.IsReduced())

	// reduction is idempotent on reduced squares
	assert.True(t, reduced.Reduce().Equal(reduced))
}

func TestConjugate(t *testing.T) {
	sq := mustParse(t, "0123103223013210")

	id := perm.Identity(3)
	assert.True(t, sq.Conjugate(id).Equal(sq))

	// swapping rows and columns is transposition
	rc := perm.FromImage([]uint8{1, 0, 2})
	transposed := sq.Conjugate(rc)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, sq.Get(i, j), transposed.Get(j, i))
		}
	}

	// every conjugate is itself a Latin square
	it := perm.NewIter(3)
	for {
		role, ok := it.Next()
		if !ok {
			break
		}
		conj := sq.Conjugate(role)
		_, valid := NewSquare(conj.N(), conj.Cells())
		assert.True(t, valid, "role %v", role)
	}
}

func TestFromRCSInvertsOAView(t *testing.T) {
	sq := mustParse(t, "0123103223013210")
	rebuilt := FromRCS(4, RowsArray(4), ColsArray(4), sq.Cells())
	assert.True(t, rebuilt.Equal(sq))
}

func TestDifferenceMaskAndMask(t *testing.T) {
	s1 := mustParse(t, "012120201")
	s2 := mustParse(t, "012201120")

	diff := s1.DifferenceMask(s2)
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, diff.Elems())
	assert.True(t, s1.DifferenceMask(s1).IsEmpty())

	masked := s1.Mask(diff)
	assert.Equal(t, "...120201", masked.String())
}

func TestWithoutRowsColsVals(t *testing.T) {
	sq := mustParse(t, "012120201")

	assert.Equal(t, "...120201", sq.WithoutRows(0).String())
	assert.Equal(t, "0.21.02.1", sq.WithoutCols(1).String())
	assert.Equal(t, ".1212.2.1", sq.WithoutVals(0).String())
}
