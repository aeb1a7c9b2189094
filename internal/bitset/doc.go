// Package bitset provides the fixed-width bit sets and a growable bit
// vector used throughout the solver.
//
// The fixed widths (16, 64, 128, 192 bits) cover the index universes that
// occur for orders up to 11: symbols fit in a Set16, cell masks over an
// n×n grid fit in a Set128 (121 ≤ 128), and wider or unbounded universes
// (tuple spaces, set-family indices) use Vec.
//
// All fixed-width sets are value types; mutating methods take a pointer
// receiver, set algebra returns new values.
package bitset
