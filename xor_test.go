// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXor(t *testing.T) {
	a := []uint32{1, 2, 3, 5, 8, 13}
	b := []uint32{2, 3, 4, 8, 21}
	want := []uint32{1, 4, 5, 13, 21}

	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			t.Run(typeName(t1)+"Xor"+typeName(t2), func(t *testing.T) {
				x := bitmapOf(0, newTestContainer(t1, a...))
				y := bitmapOf(0, newTestContainer(t2, b...))

				x.Xor(y)
				assert.Equal(t, want, x.ToSlice())
				assert.Equal(t, []uint32{2, 3, 4, 8, 21}, y.ToSlice(), "operand must not change")
			})
		}
	}
}

func TestXorRunSpan(t *testing.T) {
	// Odd singletons against a contiguous run leave the evens
	x := bitmapOf(0, newArr(1, 3, 5, 7, 9))
	y := bitmapOf(0, newRun(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))

	x.Xor(y)
	assert.Equal(t, []uint32{0, 2, 4, 6, 8}, x.ToSlice())
}

func TestXorSelf(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3})
	x.Xor(x)
	assert.True(t, x.IsEmpty())
}

func TestXorIdentical(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3, 70000})
	y := FromSlice([]uint32{1, 2, 3, 70000})

	x.Xor(y)
	assert.True(t, x.IsEmpty(), "identical buckets cancel out entirely")
}

func TestXorDisjointBuckets(t *testing.T) {
	x := FromSlice([]uint32{1})
	y := FromSlice([]uint32{100000})

	x.Xor(y)
	assert.Equal(t, []uint32{1, 100000}, x.ToSlice())
}

func TestXorVariadic(t *testing.T) {
	x := FromSlice([]uint32{1, 2})
	y := FromSlice([]uint32{2, 3})
	z := FromSlice([]uint32{3, 4})

	x.Xor(y, z)
	assert.Equal(t, []uint32{1, 4}, x.ToSlice())
}

func TestXorReference(t *testing.T) {
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
			our1, ref1 := testPairRandom(data)
			our2, ref2 := testPairRandom(data)

			our1.Xor(our2)
			ref1.Xor(*ref2)
			assertEqualBitmaps(t, our1, ref1)
		})
	}
}
