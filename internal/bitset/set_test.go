package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet16Basics(t *testing.T) {
	s := All16LessThan(5)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Elems())

	s.Remove(2)
	assert.False(t, s.Contains(2))
	assert.Equal(t, 4, s.Len())

	s.Insert(9)
	assert.True(t, s.Contains(9))
	assert.Equal(t, []int{0, 1, 3, 4, 9}, s.Elems())
}

func TestSet16Ops(t *testing.T) {
	a := From16(0, 2, 4)
	b := From16(2, 3)

	assert.Equal(t, []int{0, 2, 3, 4}, a.Union(b).Elems())
	assert.Equal(t, []int{2}, a.Intersect(b).Elems())
	assert.Equal(t, []int{0, 4}, a.Difference(b).Elems())

	assert.True(t, From16(2).IsSubsetOf(b))
	assert.False(t, b.IsSubsetOf(a))
	assert.True(t, From16(1, 5).IsDisjoint(a))
	assert.False(t, b.IsDisjoint(a))
}

func TestSet16Single(t *testing.T) {
	s := Single16(7)
	assert.True(t, s.IsSingle())
	assert.Equal(t, 7, s.First())

	s.Insert(3)
	assert.False(t, s.IsSingle())
	assert.Equal(t, 3, s.First())

	assert.Equal(t, -1, Set16(0).First())
	assert.True(t, Set16(0).IsEmpty())
}

func TestSet16Nth(t *testing.T) {
	s := From16(1, 4, 8, 13)
	assert.Equal(t, 1, s.Nth(0))
	assert.Equal(t, 8, s.Nth(2))
	assert.Equal(t, 13, s.Nth(3))
}

func TestSet64Iter(t *testing.T) {
	s := From64(0, 31, 32, 63)
	var got []int
	for it := s.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, e)
	}
	assert.Equal(t, []int{0, 31, 32, 63}, got)
}

func TestSet128CrossesWordBoundary(t *testing.T) {
	s := All128LessThan(121)
	require.Equal(t, 121, s.Len())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(63))
	assert.True(t, s.Contains(64))
	assert.True(t, s.Contains(120))
	assert.False(t, s.Contains(121))

	s.Remove(64)
	assert.Equal(t, 120, s.Len())
	assert.False(t, s.Contains(64))

	c := s.Complement().Intersect(All128LessThan(121))
	assert.Equal(t, []int{64}, c.Elems())
}

func TestSet128Ops(t *testing.T) {
	a := From128(3, 70, 100)
	b := From128(70, 101)

	assert.Equal(t, []int{3, 70, 100, 101}, a.Union(b).Elems())
	assert.Equal(t, []int{70}, a.Intersect(b).Elems())
	assert.Equal(t, []int{3, 100}, a.Difference(b).Elems())
	assert.True(t, Single128(70).IsSubsetOf(a))
	assert.True(t, From128(1, 2).IsDisjoint(a))
	assert.Equal(t, 3, a.First())
}

func TestSet128Words(t *testing.T) {
	s := From128(1, 65)
	lo, hi := s.Words()
	assert.Equal(t, uint64(2), lo)
	assert.Equal(t, uint64(2), hi)
	assert.Equal(t, s, FromWords(lo, hi))
}

func TestSet192(t *testing.T) {
	s := All192LessThan(150)
	require.Equal(t, 150, s.Len())
	assert.Equal(t, 0, s.First())

	s.Remove(0)
	s.Remove(128)
	assert.Equal(t, 148, s.Len())
	assert.False(t, s.Contains(128))

	var got []int
	for it := Single192(129).Union(Single192(64)).Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, e)
	}
	assert.Equal(t, []int{64, 129}, got)
}

func TestVec(t *testing.T) {
	v := VecAllLessThan(130)
	require.Equal(t, 130, v.Len())
	assert.Equal(t, 0, v.FirstOne())
	assert.Equal(t, 130, v.FirstZero())

	v.Remove(0)
	assert.Equal(t, 1, v.FirstOne())
	assert.Equal(t, 0, v.FirstZero())

	v.Insert(200)
	assert.True(t, v.Contains(200))
	assert.Equal(t, 130, v.Len())
}

func TestVecOps(t *testing.T) {
	a := NewVec(256)
	for _, e := range []int{5, 64, 200} {
		a.Insert(e)
	}
	b := NewVec(256)
	for _, e := range []int{64, 201} {
		b.Insert(e)
	}

	u := a.Clone()
	u.UnionWith(b)
	assert.Equal(t, []int{5, 64, 200, 201}, u.Elems())

	i := a.Clone()
	i.IntersectWith(b)
	assert.Equal(t, []int{64}, i.Elems())

	m := a.Clone()
	m.MinusWith(b)
	assert.Equal(t, []int{5, 200}, m.Elems())

	assert.True(t, i.IsSubsetOf(a))
	assert.False(t, a.IsSubsetOf(b))
	assert.True(t, m.IsDisjoint(b))
}

func TestVecCloneIsIndependent(t *testing.T) {
	a := NewVec(64)
	a.Insert(3)
	b := a.Clone()
	b.Insert(4)
	assert.False(t, a.Contains(4))
	assert.True(t, b.Contains(4))
}
