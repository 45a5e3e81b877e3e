// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd(t *testing.T) {
	a := []uint32{1, 2, 3, 5, 8, 13}
	b := []uint32{2, 3, 4, 8, 21}
	want := []uint32{2, 3, 8}

	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			t.Run(typeName(t1)+"And"+typeName(t2), func(t *testing.T) {
				x := bitmapOf(0, newTestContainer(t1, a...))
				y := bitmapOf(0, newTestContainer(t2, b...))

				x.And(y)
				assert.Equal(t, want, x.ToSlice())
				assert.Equal(t, []uint32{2, 3, 4, 8, 21}, y.ToSlice(), "operand must not change")
			})
		}
	}
}

func TestAndRunSpan(t *testing.T) {
	// Odd singletons against a contiguous run
	x := bitmapOf(0, newArr(1, 3, 5, 7, 9))
	y := bitmapOf(0, newRun(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))

	x.And(y)
	assert.Equal(t, []uint32{1, 3, 5, 7, 9}, x.ToSlice())
}

func TestAndDisjoint(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3})
	y := FromSlice([]uint32{100000, 200000})

	x.And(y)
	assert.True(t, x.IsEmpty(), "disjoint intersection drops every bucket")
}

func TestAndSelf(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3})
	x.And(x)
	assert.Equal(t, []uint32{1, 2, 3}, x.ToSlice())
}

func TestAndVariadic(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3, 4, 5})
	y := FromSlice([]uint32{2, 3, 4, 5})
	z := FromSlice([]uint32{3, 4, 5, 6})

	x.And(y, z)
	assert.Equal(t, []uint32{3, 4, 5}, x.ToSlice())
}

func TestAndReference(t *testing.T) {
	gens := []dataGen{
		genSeq(2000, 0),
		genRand(5000, 300000),
		genSparse(1000),
		genDense(3000),
		genMixed(),
	}

	for _, gen := range gens {
		data, name := gen()
		t.Run(name, func(t *testing.T) {
			our1, ref1 := testPair(data)
			our2, ref2 := testPairRandom(data)

			our1.And(our2)
			ref1.And(*ref2)
			assertEqualBitmaps(t, our1, ref1)
		})
	}
}

func typeName(typ ctype) string {
	switch typ {
	case typeArray:
		return "arr"
	case typeBitmap:
		return "bmp"
	default:
		return "run"
	}
}
