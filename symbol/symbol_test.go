package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Source_NextIsMonotone(t *testing.T) {
	s := NewSource()

	a := s.Next()
	b := s.Next()
	c := s.NextN(3)

	assert.Equal(t, Symbol(0), a)
	assert.Equal(t, Symbol(1), b)
	assert.Equal(t, []Symbol{2, 3, 4}, c)
	assert.Equal(t, 5, s.Num())
}

func Test_Source_Truncate(t *testing.T) {
	s := NewSource()
	s.NextN(10)

	s.Truncate(3)

	assert.Equal(t, 3, s.Num())
	assert.Equal(t, Symbol(3), s.Next())
}

func Test_Source_TruncateOutOfRange_panics(t *testing.T) {
	s := NewSource()
	s.NextN(3)

	assert.Panics(t, func() { s.Truncate(10) })
}

func Test_BitSet_SetHasClear(t *testing.T) {
	b := NewBitSet(100)

	assert.False(t, b.Has(42))
	b.Set(42)
	assert.True(t, b.Has(42))
	b.Clear(42)
	assert.False(t, b.Has(42))
}

func Test_BitSet_CrossesWordBoundary(t *testing.T) {
	b := NewBitSet(200)

	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(127)
	b.Set(199)

	assert.Equal(t, 5, b.Count())
	assert.Equal(t, []Symbol{0, 63, 64, 127, 199}, b.Slice())
}

func Test_BitSet_UnionIntersectSubtract(t *testing.T) {
	a := NewBitSet(10)
	b := NewBitSet(10)

	a.Set(1)
	a.Set(2)
	b.Set(2)
	b.Set(3)

	union := a.Copy()
	union.Union(b)
	assert.Equal(t, []Symbol{1, 2, 3}, union.Slice())

	inter := a.Copy()
	inter.Intersect(b)
	assert.Equal(t, []Symbol{2}, inter.Slice())

	diff := a.Copy()
	diff.Subtract(b)
	assert.Equal(t, []Symbol{1}, diff.Slice())
}

func Test_BitSet_Equal(t *testing.T) {
	a := NewBitSet(10)
	b := NewBitSet(10)
	a.Set(3)
	b.Set(3)

	assert.True(t, a.Equal(b))
	b.Set(4)
	assert.False(t, a.Equal(b))
}

func Test_BitMatrix_ReflexiveTransitiveClosure(t *testing.T) {
	// chain: 0 -> 1 -> 2 -> 3
	m := NewBitMatrix(4)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 3)

	m.TransitiveReflexiveClosure()

	for i := Symbol(0); i < 4; i++ {
		assert.True(t, m.Has(i, i), "diagonal at %d", i)
	}
	assert.True(t, m.Has(0, 3))
	assert.False(t, m.Has(3, 0))
}

func Test_BitMatrix_Column(t *testing.T) {
	m := NewBitMatrix(3)
	m.Set(0, 2)
	m.Set(1, 2)

	col := m.Column(2)
	assert.Equal(t, []Symbol{0, 1}, col.Slice())
}

func Test_Mapping_RoundTrip(t *testing.T) {
	// symbols 0,1,2,3; symbol 1 is unused and removed, leaving 0,2,3 -> 0,1,2
	m := Mapping{
		ToInternal: []Symbol{0, None, 1, 2},
		ToExternal: []Symbol{0, 2, 3},
	}

	for _, ext := range []Symbol{0, 2, 3} {
		internal, ok := m.Internal(ext)
		assert.True(t, ok)
		assert.Equal(t, ext, m.External(internal))
	}

	_, ok := m.Internal(1)
	assert.False(t, ok)
}

func Test_Mapping_Compose(t *testing.T) {
	// first: drop symbol 1 from {0,1,2,3} -> {0,1,2} where old0->0, old2->1, old3->2
	first := Mapping{
		ToInternal: []Symbol{0, None, 1, 2},
		ToExternal: []Symbol{0, 2, 3},
	}
	// second: reorder {0,1,2} -> {0,1,2} swapping 0 and 2
	second := Mapping{
		ToInternal: []Symbol{2, 1, 0},
		ToExternal: []Symbol{2, 1, 0},
	}

	composed := first.Compose(second)

	// original symbol 0 -> first gives 0 -> second gives 2
	internal, ok := composed.Internal(0)
	assert.True(t, ok)
	assert.Equal(t, Symbol(2), internal)
	assert.Equal(t, Symbol(0), composed.External(2))

	// original symbol 1 was dropped throughout
	_, ok = composed.Internal(1)
	assert.False(t, ok)
}
