package roaring

import "container/heap"

// mergeCursor walks one bitmap's key index during an N-ary merge.
type mergeCursor struct {
	rb  *Bitmap
	pos int
}

func (c mergeCursor) key() uint16 {
	return c.rb.index[c.pos]
}

// mergeHeap is a priority queue of cursors ordered by their next key, so that
// an N-ary merge visits buckets in ascending key order without pairwise
// passes over every operand.
type mergeHeap []mergeCursor

func (h mergeHeap) Len() int           { return len(h) }
func (h mergeHeap) Less(i, j int) bool { return h[i].key() < h[j].key() }
func (h mergeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)        { *h = append(*h, x.(mergeCursor)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// OrMany returns the union of all the given bitmaps. Buckets are merged in a
// single key-ordered pass over all operands, O(n log k) for k bitmaps.
func OrMany(bitmaps ...*Bitmap) *Bitmap {
	return mergeMany(bitmaps, func(out *Bitmap, acc, next *container) {
		out.ctrOr(acc, next)
	})
}

// XorMany returns the symmetric difference of all the given bitmaps, merged
// in a single key-ordered pass over all operands.
func XorMany(bitmaps ...*Bitmap) *Bitmap {
	return mergeMany(bitmaps, func(out *Bitmap, acc, next *container) {
		out.ctrXor(acc, next)
	})
}

// mergeMany reduces many bitmaps with a container-level combiner. A bucket is
// kept only when the accumulated container ends up non-empty.
func mergeMany(bitmaps []*Bitmap, combine func(out *Bitmap, acc, next *container)) *Bitmap {
	h := make(mergeHeap, 0, len(bitmaps))
	for _, bm := range bitmaps {
		if bm == nil || len(bm.containers) == 0 {
			continue
		}
		bm.repairIfDirty()
		h = append(h, mergeCursor{rb: bm})
	}

	out := New()
	if len(h) == 0 {
		return out
	}
	heap.Init(&h)

	for h.Len() > 0 {
		key := h[0].key()

		// Pop every cursor positioned at the smallest key
		var acc container
		first := true
		for h.Len() > 0 && h[0].key() == key {
			cur := h[0].rb
			c := &cur.containers[h[0].pos]

			switch {
			case first:
				c.Shared = true
				acc, first = *c, false
			default:
				combine(out, &acc, c)
			}

			// Advance the cursor and restore heap order
			if h[0].pos++; h[0].pos < len(cur.containers) {
				heap.Fix(&h, 0)
			} else {
				heap.Pop(&h)
			}
		}

		if acc.Size > 0 {
			out.index = append(out.index, key)
			out.containers = append(out.containers, acc)
		}
	}
	return out
}
