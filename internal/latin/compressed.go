package latin

import (
	"encoding/binary"
	"fmt"

	"github.com/roach88/latsq/internal/perm"
)

// Binary form of a square: one little-endian uint32 per row holding
// the row's lexicographic permutation rank. 4n bytes per square; every
// rank of a supported order fits 32 bits.

// CompressedSize returns the byte length of one compressed square of
// order n.
func CompressedSize(n int) int { return 4 * n }

// AppendCompressed appends the compressed form of s to buf and returns
// the extended slice.
func (s Square) AppendCompressed(buf []byte) []byte {
	for i := 0; i < s.n; i++ {
		rank := perm.Perm(s.Row(i)).Rank()
		buf = binary.LittleEndian.AppendUint32(buf, uint32(rank))
	}
	return buf
}

// DecodeCompressed rebuilds a square of order n from its compressed
// form.
func DecodeCompressed(n int, data []byte) (Square, error) {
	if n < 1 || n > MaxOrder {
		return Square{}, fmt.Errorf("order %d out of range [1, %d]", n, MaxOrder)
	}
	if len(data) != CompressedSize(n) {
		return Square{}, fmt.Errorf("compressed square of order %d: want %d bytes, got %d",
			n, CompressedSize(n), len(data))
	}
	cells := make([]uint8, 0, n*n)
	limit := perm.Factorial(n)
	for i := 0; i < n; i++ {
		rank := binary.LittleEndian.Uint32(data[4*i:])
		if int(rank) >= limit {
			return Square{}, fmt.Errorf("row %d: rank %d out of range 0..%d", i, rank, limit-1)
		}
		cells = append(cells, perm.FromRank(int(rank), n)...)
	}
	sq, ok := NewSquare(n, cells)
	if !ok {
		return Square{}, NotLatinError{}
	}
	return sq, nil
}
