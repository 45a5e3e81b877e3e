package roaring

import (
	"math/rand"
	"testing"

	roaringref "github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
)

// refPair builds the same random set in this implementation and in the
// reference roaring library, for behavioural cross-validation.
func refPair(data []uint32) (*Bitmap, *roaringref.Bitmap) {
	our := New()
	ref := roaringref.New()
	for _, v := range data {
		if rand.Intn(2) == 0 {
			our.Set(v)
			ref.Add(v)
		}
	}
	return our, ref
}

func assertMatchesRef(t *testing.T, our *Bitmap, ref *roaringref.Bitmap) {
	assert.Equal(t, int(ref.GetCardinality()), our.Count())
	assert.Equal(t, ref.ToArray(), append([]uint32{}, our.ToSlice()...))
}

func TestOpsAgainstReference(t *testing.T) {
	gens := []dataGen{
		genSeq(3000, 60000),
		genRand(10000, 1 << 20),
		genSparse(2000),
		genMixed(),
	}

	for _, gen := range gens {
		data, name := gen()
		t.Run(name, func(t *testing.T) {
			ourA, refA := refPair(data)
			ourB, refB := refPair(data)

			assertMatchesRef(t, And(ourA, ourB), roaringref.And(refA, refB))
			assertMatchesRef(t, Or(ourA, ourB), roaringref.Or(refA, refB))
			assertMatchesRef(t, Xor(ourA, ourB), roaringref.Xor(refA, refB))
			assertMatchesRef(t, AndNot(ourA, ourB), roaringref.AndNot(refA, refB))

			// The fresh-result operators must not disturb their operands
			assertMatchesRef(t, ourA, refA)
			assertMatchesRef(t, ourB, refB)
		})
	}
}

func TestRankSelectAgainstReference(t *testing.T) {
	data, _ := genRand(10000, 1<<20)()
	our, ref := refPair(data)

	for _, x := range []uint32{0, 1000, 65535, 65536, 1 << 19, 1<<20 - 1} {
		assert.Equal(t, int(ref.Rank(x)), our.Rank(x), "rank of %d", x)
	}

	for _, idx := range []uint32{0, 1, 100, 1000} {
		if idx >= uint32(our.Count()) {
			continue
		}
		want, err := ref.Select(idx)
		assert.NoError(t, err)

		got, ok := our.Select(idx)
		assert.True(t, ok)
		assert.Equal(t, want, got, "select %d", idx)
	}
}

func TestIteratorAgainstReference(t *testing.T) {
	data, _ := genMixed()()
	our, ref := refPair(data)

	it := our.Iterator()
	refIt := ref.Iterator()
	for refIt.HasNext() {
		assert.True(t, it.Valid())
		assert.Equal(t, refIt.Next(), it.Value())
		it.Next()
	}
	assert.False(t, it.Valid())
}
