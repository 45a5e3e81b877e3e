package roaring

// Iterator is a cursor over the ascending sequence of values in a bitmap. It
// does not own the bitmap: the bitmap must outlive the iterator and must not
// be mutated while iterating.
type Iterator struct {
	rb  *Bitmap
	ci  int    // current container index
	val uint32 // current value
	ok  bool
}

// Iterator returns a cursor positioned at the smallest value of the bitmap.
// The cursor is invalid when the bitmap is empty.
func (rb *Bitmap) Iterator() *Iterator {
	rb.repairIfDirty()
	it := &Iterator{rb: rb}
	it.First()
	return it
}

// Valid reports whether the cursor points at a value.
func (it *Iterator) Valid() bool {
	return it.ok
}

// Value returns the value under the cursor. Only valid when Valid is true.
func (it *Iterator) Value() uint32 {
	return it.val
}

// First repositions the cursor at the smallest value.
func (it *Iterator) First() bool {
	if len(it.rb.containers) == 0 {
		it.ok = false
		return false
	}

	it.ci = 0
	lo, _ := it.rb.containers[0].minimum()
	it.val = uint32(it.rb.index[0])<<16 | uint32(lo)
	it.ok = true
	return true
}

// Last repositions the cursor at the largest value.
func (it *Iterator) Last() bool {
	if len(it.rb.containers) == 0 {
		it.ok = false
		return false
	}

	it.ci = len(it.rb.containers) - 1
	lo, _ := it.rb.containers[it.ci].maximum()
	it.val = uint32(it.rb.index[it.ci])<<16 | uint32(lo)
	it.ok = true
	return true
}

// Next advances the cursor one position forward and reports validity.
func (it *Iterator) Next() bool {
	if !it.ok {
		return false
	}

	if lo := uint16(it.val); lo < 65535 {
		if nlo, found := it.rb.containers[it.ci].nextFrom(lo + 1); found {
			it.val = it.val&0xFFFF0000 | uint32(nlo)
			return true
		}
	}

	// Move to the next bucket
	if it.ci++; it.ci >= len(it.rb.containers) {
		it.ok = false
		return false
	}

	lo, _ := it.rb.containers[it.ci].minimum()
	it.val = uint32(it.rb.index[it.ci])<<16 | uint32(lo)
	return true
}

// Prev retreats the cursor one position backward and reports validity.
func (it *Iterator) Prev() bool {
	if !it.ok {
		return false
	}

	if lo := uint16(it.val); lo > 0 {
		if plo, found := it.rb.containers[it.ci].prevFrom(lo - 1); found {
			it.val = it.val&0xFFFF0000 | uint32(plo)
			return true
		}
	}

	// Move to the previous bucket
	if it.ci--; it.ci < 0 {
		it.ok = false
		return false
	}

	lo, _ := it.rb.containers[it.ci].maximum()
	it.val = uint32(it.rb.index[it.ci])<<16 | uint32(lo)
	return true
}

// Seek repositions the cursor at the smallest value greater than or equal to
// x and reports whether such a value exists.
func (it *Iterator) Seek(x uint32) bool {
	it.rb.repairIfDirty()
	hi, lo := uint16(x>>16), uint16(x)

	idx, found := find16(it.rb.index, hi)
	if found {
		if nlo, ok := it.rb.containers[idx].nextFrom(lo); ok {
			it.ci = idx
			it.val = uint32(hi)<<16 | uint32(nlo)
			it.ok = true
			return true
		}
		idx++
	}

	if idx >= len(it.rb.containers) {
		it.ok = false
		return false
	}

	nlo, _ := it.rb.containers[idx].minimum()
	it.ci = idx
	it.val = uint32(it.rb.index[idx])<<16 | uint32(nlo)
	it.ok = true
	return true
}

// Read copies up to len(buf) subsequent values into buf, advancing the cursor
// past them, and returns the number of values written. It enables bulk
// extraction without per-value call overhead.
func (it *Iterator) Read(buf []uint32) int {
	n := 0
	for n < len(buf) && it.ok {
		buf[n] = it.val
		n++
		it.Next()
	}
	return n
}
