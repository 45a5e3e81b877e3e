package roaring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeOrder(t *testing.T) {
	rb := FromSlice([]uint32{5, 1, 100000, 3})

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return true
	})
	assert.Equal(t, []uint32{1, 3, 5, 100000}, got)
}

func TestRangeEarlyExit(t *testing.T) {
	rb := FromSlice([]uint32{1, 2, 3, 100000, 200000})

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return len(got) < 2
	})
	assert.Equal(t, []uint32{1, 2}, got)
}

func TestFilter(t *testing.T) {
	rb := New()
	for i := uint32(0); i < 100; i++ {
		rb.Set(i)
	}

	rb.Filter(func(x uint32) bool {
		return x%2 == 0
	})
	assert.Equal(t, 50, rb.Count())
	assert.True(t, rb.Contains(42))
	assert.False(t, rb.Contains(43))
}

func TestFilterDropsBucket(t *testing.T) {
	rb := FromSlice([]uint32{1, 100000})
	rb.Filter(func(x uint32) bool {
		return x < 65536
	})
	assert.Equal(t, []uint32{1}, rb.ToSlice())
	assert.Len(t, rb.containers, 1)
}

func TestFilterTypes(t *testing.T) {
	for _, typ := range []ctype{typeArray, typeBitmap, typeRun} {
		t.Run(typeName(typ), func(t *testing.T) {
			rb, values := changeType(typ)
			keep := values[len(values)/2]

			rb.Filter(func(x uint32) bool {
				return x == keep
			})
			assert.Equal(t, []uint32{keep}, rb.ToSlice())
		})
	}
}

func TestSetRange(t *testing.T) {
	tc := []struct {
		name     string
		min, max uint64
		count    int
	}{
		{"within-bucket", 10, 1000, 990},
		{"bucket-edge", 65530, 65536, 6},
		{"cross-bucket", 65000, 70000, 5000},
		{"full-buckets", 0, 3 << 16, 3 * 65536},
		{"empty", 10, 10, 0},
		{"inverted", 20, 10, 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			rb := New()
			rb.SetRange(tt.min, tt.max)
			assert.Equal(t, tt.count, rb.Count())

			if tt.count > 0 {
				min, _ := rb.Min()
				max, _ := rb.Max()
				assert.Equal(t, uint32(tt.min), min)
				assert.Equal(t, uint32(tt.max-1), max)
			}
		})
	}
}

func TestSetRangeMerges(t *testing.T) {
	rb := FromSlice([]uint32{5, 500, 70000})
	rb.SetRange(100, 200)

	assert.Equal(t, 103, rb.Count())
	assert.True(t, rb.Contains(5))
	assert.True(t, rb.Contains(100))
	assert.True(t, rb.Contains(199))
	assert.False(t, rb.Contains(200))
	assert.True(t, rb.Contains(500))
	assert.True(t, rb.Contains(70000))
}

func TestSetRangeClamped(t *testing.T) {
	rb := New()
	rb.SetRange(math.MaxUint32-2, math.MaxUint32+100)
	assert.Equal(t, 3, rb.Count())

	max, _ := rb.Max()
	assert.Equal(t, uint32(math.MaxUint32), max)
}

func TestRemoveRange(t *testing.T) {
	rb := New()
	rb.SetRange(0, 100000)

	rb.RemoveRange(1000, 99000)
	assert.Equal(t, 2000, rb.Count())
	assert.True(t, rb.Contains(999))
	assert.False(t, rb.Contains(1000))
	assert.False(t, rb.Contains(98999))
	assert.True(t, rb.Contains(99000))
}

func TestRemoveRangeWholeBuckets(t *testing.T) {
	rb := New()
	rb.SetRange(0, 4<<16)

	rb.RemoveRange(1<<16, 3<<16)
	assert.Equal(t, 2*65536, rb.Count())
	assert.Len(t, rb.containers, 2, "intermediate buckets are dropped outright")
}

func TestRemoveRangeNoop(t *testing.T) {
	rb := FromSlice([]uint32{1, 2, 3})
	rb.RemoveRange(10, 10)
	rb.RemoveRange(20, 10)
	rb.RemoveRange(100, 200)
	assert.Equal(t, []uint32{1, 2, 3}, rb.ToSlice())
}

func TestRangeRoundtrip(t *testing.T) {
	rb := New()
	rb.SetRange(100, 200000)
	rb.RemoveRange(100, 200000)
	assert.True(t, rb.IsEmpty())
}
