package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3, 70000})
	b := FromSlice([]uint32{1, 2, 3, 70000})
	c := FromSlice([]uint32{1, 2, 3})

	assert.True(t, a.Equals(a))
	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
	assert.True(t, New().Equals(nil))
	assert.True(t, New().Equals(New()))
}

func TestEqualsAcrossTypes(t *testing.T) {
	// Same contents in different representations still compare equal
	values := []uint32{100, 101, 102, 103, 104}
	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			x := bitmapOf(0, newTestContainer(t1, values...))
			y := bitmapOf(0, newTestContainer(t2, values...))
			assert.True(t, x.Equals(y), "%s vs %s", typeName(t1), typeName(t2))
		}
	}
}

func TestIsSubset(t *testing.T) {
	a := FromSlice([]uint32{2, 3})
	b := FromSlice([]uint32{1, 2, 3, 70000})

	assert.True(t, a.IsSubset(b))
	assert.False(t, b.IsSubset(a))
	assert.True(t, a.IsSubset(a))
	assert.True(t, New().IsSubset(a), "empty is a subset of everything")
	assert.False(t, a.IsSubset(New()))
	assert.False(t, a.IsSubset(nil))
	assert.True(t, New().IsSubset(nil))
}

func TestIsSubsetTypes(t *testing.T) {
	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			sub := bitmapOf(0, newTestContainer(t1, 10, 11, 12))
			sup := bitmapOf(0, newTestContainer(t2, 9, 10, 11, 12, 13))
			not := bitmapOf(0, newTestContainer(t2, 10, 11, 20))

			assert.True(t, sub.IsSubset(sup), "%s in %s", typeName(t1), typeName(t2))
			assert.False(t, sub.IsSubset(not), "%s in %s", typeName(t1), typeName(t2))
		}
	}
}

func TestIsStrictSubset(t *testing.T) {
	a := FromSlice([]uint32{2, 3})
	b := FromSlice([]uint32{1, 2, 3})

	assert.True(t, a.IsStrictSubset(b))
	assert.False(t, a.IsStrictSubset(a))
	assert.False(t, b.IsStrictSubset(a))
	assert.False(t, a.IsStrictSubset(nil))
}

func TestIntersects(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3})
	b := FromSlice([]uint32{3, 4, 5})
	c := FromSlice([]uint32{100000})

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
	assert.False(t, a.Intersects(New()))
	assert.False(t, a.Intersects(nil))
	assert.False(t, New().Intersects(a))
}

func TestIntersectsTypes(t *testing.T) {
	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			x := bitmapOf(0, newTestContainer(t1, 10, 11, 12))
			y := bitmapOf(0, newTestContainer(t2, 12, 13, 14))
			z := bitmapOf(0, newTestContainer(t2, 13, 14, 15))

			assert.True(t, x.Intersects(y), "%s with %s", typeName(t1), typeName(t2))
			assert.False(t, x.Intersects(z), "%s with %s", typeName(t1), typeName(t2))
		}
	}
}

// |A| + |B| = |A AND B| + |A OR B| must hold for any pair.
func TestInclusionExclusion(t *testing.T) {
	data, _ := genRand(5000, 300000)()
	a, _ := testPairRandom(data)
	b, _ := testPairRandom(data)

	union := Or(a, b)
	inter := And(a, b)
	assert.Equal(t, a.Count()+b.Count(), union.Count()+inter.Count())

	// XOR is the union minus the intersection
	sym := Xor(a, b)
	assert.Equal(t, union.Count()-inter.Count(), sym.Count())
	assert.True(t, inter.IsSubset(union))
	assert.True(t, sym.IsSubset(union))
	assert.False(t, sym.Intersects(inter))
}
