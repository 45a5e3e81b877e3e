package roaring

// Equals reports whether both bitmaps contain exactly the same values.
func (rb *Bitmap) Equals(other *Bitmap) bool {
	switch {
	case rb == other:
		return true
	case other == nil:
		return len(rb.containers) == 0
	}

	rb.repairIfDirty()
	other.repairIfDirty()
	if len(rb.containers) != len(other.containers) {
		return false
	}

	for i := range rb.containers {
		if rb.index[i] != other.index[i] {
			return false
		}

		c1, c2 := &rb.containers[i], &other.containers[i]
		if c1.Size != c2.Size || !ctrSubset(c1, c2) {
			return false
		}
	}
	return true
}

// IsSubset reports whether every value of the bitmap is present in other.
func (rb *Bitmap) IsSubset(other *Bitmap) bool {
	switch {
	case rb == other:
		return true
	case other == nil:
		return len(rb.containers) == 0
	}

	rb.repairIfDirty()
	other.repairIfDirty()
	for i := range rb.containers {
		idx, found := find16(other.index, rb.index[i])
		if !found || !ctrSubset(&rb.containers[i], &other.containers[idx]) {
			return false
		}
	}
	return true
}

// IsStrictSubset reports whether the bitmap is a subset of other and not
// equal to it.
func (rb *Bitmap) IsStrictSubset(other *Bitmap) bool {
	return other != nil && rb.IsSubset(other) && rb.Count() < other.Count()
}

// Intersects reports whether the two bitmaps share at least one value.
func (rb *Bitmap) Intersects(other *Bitmap) bool {
	if other == nil {
		return false
	}

	rb.repairIfDirty()
	other.repairIfDirty()
	for i := range rb.containers {
		idx, found := find16(other.index, rb.index[i])
		if found && ctrIntersects(&rb.containers[i], &other.containers[idx]) {
			return true
		}
	}
	return false
}

// ctrSubset reports whether every member of c1 is present in c2.
func ctrSubset(c1, c2 *container) bool {
	if c1.Size > c2.Size {
		return false
	}

	switch {
	case c1.Type == typeBitmap && c2.Type == typeBitmap:
		a, b := c1.bmp(), c2.bmp()
		for i := range a {
			if a[i]&^b[i] != 0 {
				return false
			}
		}
		return true

	case c1.Type == typeRun:
		// Each run must be fully covered
		for _, r := range c1.runs() {
			if c2.countRange(r[0], r[1]) != int(r[1]-r[0])+1 {
				return false
			}
		}
		return true

	default:
		return c1.forEach(func(value uint16) bool {
			return c2.contains(value)
		})
	}
}

// ctrIntersects reports whether c1 and c2 share at least one member.
func ctrIntersects(c1, c2 *container) bool {
	if c1.Size > c2.Size {
		c1, c2 = c2, c1
	}

	switch {
	case c1.Type == typeBitmap && c2.Type == typeBitmap:
		a, b := c1.bmp(), c2.bmp()
		for i := range a {
			if a[i]&b[i] != 0 {
				return true
			}
		}
		return false

	case c1.Type == typeRun:
		for _, r := range c1.runs() {
			if c2.countRange(r[0], r[1]) > 0 {
				return true
			}
		}
		return false

	default:
		return !c1.forEach(func(value uint16) bool {
			return !c2.contains(value)
		})
	}
}
