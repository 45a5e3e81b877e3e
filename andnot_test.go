// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAndNot(t *testing.T) {
	a := []uint32{1, 2, 3, 5, 8, 13}
	b := []uint32{2, 3, 4, 8, 21}
	want := []uint32{1, 5, 13}

	for _, t1 := range []ctype{typeArray, typeBitmap, typeRun} {
		for _, t2 := range []ctype{typeArray, typeBitmap, typeRun} {
			t.Run(typeName(t1)+"AndNot"+typeName(t2), func(t *testing.T) {
				x := bitmapOf(0, newTestContainer(t1, a...))
				y := bitmapOf(0, newTestContainer(t2, b...))

				x.AndNot(y)
				assert.Equal(t, want, x.ToSlice())
				assert.Equal(t, []uint32{2, 3, 4, 8, 21}, y.ToSlice(), "operand must not change")
			})
		}
	}
}

func TestAndNotRunSplit(t *testing.T) {
	// Removing the middle of a run splits it
	x := bitmapOf(0, newRun(10, 11, 12, 13, 14, 15))
	y := bitmapOf(0, newArr(12, 13))

	x.AndNot(y)
	assert.Equal(t, []uint32{10, 11, 14, 15}, x.ToSlice())
}

func TestAndNotEverything(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3})
	y := FromSlice([]uint32{1, 2, 3, 4})

	x.AndNot(y)
	assert.True(t, x.IsEmpty(), "fully covered buckets are dropped")
}

func TestAndNotDisjoint(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3})
	y := FromSlice([]uint32{100000})

	x.AndNot(y)
	assert.Equal(t, []uint32{1, 2, 3}, x.ToSlice())
}

func TestAndNotVariadic(t *testing.T) {
	x := FromSlice([]uint32{1, 2, 3, 4, 5})
	y := FromSlice([]uint32{1})
	z := FromSlice([]uint32{5})

	x.AndNot(y, z)
	assert.Equal(t, []uint32{2, 3, 4}, x.ToSlice())
}

func TestAndNotReference(t *testing.T) {
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

			our1.AndNot(our2)
			ref1.AndNot(*ref2)
			assertEqualBitmaps(t, our1, ref1)
		})
	}
}
