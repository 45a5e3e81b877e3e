package roaring

// Rank returns the number of values less than or equal to x.
func (rb *Bitmap) Rank(x uint32) int {
	rb.repairIfDirty()
	hi, lo := uint16(x>>16), uint16(x)

	n := 0
	for i := range rb.containers {
		switch {
		case rb.index[i] < hi:
			n += rb.containers[i].cardinality()
		case rb.index[i] == hi:
			return n + rb.containers[i].rank(lo)
		default:
			return n
		}
	}
	return n
}

// Select returns the idx-th smallest value (zero-based), the inverse of Rank.
// Returns false when idx is at or beyond the total cardinality.
func (rb *Bitmap) Select(idx uint32) (uint32, bool) {
	rb.repairIfDirty()

	left := idx
	for i := range rb.containers {
		size := rb.containers[i].Size
		if left < size {
			lo := rb.containers[i].selectAt(left)
			return uint32(rb.index[i])<<16 | uint32(lo), true
		}
		left -= size
	}
	return 0, false
}

// CountRange returns the number of values within [min, max).
func (rb *Bitmap) CountRange(min, max uint64) int {
	rb.repairIfDirty()
	if max > 1<<32 {
		max = 1 << 32
	}
	if min >= max {
		return 0
	}

	last := max - 1
	n := 0
	for i := range rb.containers {
		hb := uint64(rb.index[i])
		switch {
		case hb < min>>16:
			continue
		case hb > last>>16:
			return n
		}

		lo1, lo2 := uint16(0), uint16(65535)
		if hb == min>>16 {
			lo1 = uint16(min)
		}
		if hb == last>>16 {
			lo2 = uint16(last)
		}

		switch {
		case lo1 == 0 && lo2 == 65535:
			n += rb.containers[i].cardinality()
		default:
			n += rb.containers[i].countRange(lo1, lo2)
		}
	}
	return n
}
