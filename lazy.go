package roaring

// OrLazy performs an in-place union with the other bitmap, deferring all
// cardinality bookkeeping and container-type optimization. Colliding buckets
// are merged word-wise through bitset form, which makes long chains of unions
// much cheaper than the eager Or. The bitmap stays in a dirty state until
// Repair runs: any query that needs cardinality triggers an implicit Repair.
// Repeated lazy operations before a single Repair are safe.
func (rb *Bitmap) OrLazy(other *Bitmap) {
	if other == nil || len(other.containers) == 0 || rb == other {
		return
	}

	rb.mergeLazy(other, (*Bitmap).ctrOrLazy)
	rb.dirty = true
}

// XorLazy performs an in-place symmetric difference with the other bitmap,
// deferring bookkeeping the same way OrLazy does. Buckets that become empty
// are only discarded by the Repair pass.
func (rb *Bitmap) XorLazy(other *Bitmap) {
	switch {
	case other == nil || len(other.containers) == 0:
		return
	case rb == other:
		rb.Clear()
		return
	}

	rb.mergeLazy(other, (*Bitmap).ctrXorLazy)
	rb.dirty = true
}

// Repair restores every invariant a lazy operation deferred: recounts stale
// cardinalities, discards empty buckets and re-optimizes container types.
// After Repair the bitmap is indistinguishable from one computed eagerly.
func (rb *Bitmap) Repair() {
	for i := len(rb.containers) - 1; i >= 0; i-- {
		c := &rb.containers[i]
		if c.Type == typeBitmap {
			c.Size = uint32(c.bmp().Count())
		}
		if c.isEmpty() {
			rb.ctrDel(i)
			continue
		}
		c.optimize()
	}
	rb.dirty = false
}

func (rb *Bitmap) repairIfDirty() {
	if rb.dirty {
		rb.Repair()
	}
}

// mergeLazy walks both key sequences in merged order, combining colliding
// buckets with the lazy combiner and sharing the rest copy-on-write.
func (rb *Bitmap) mergeLazy(other *Bitmap, combine func(*Bitmap, *container, *container)) {
	if len(rb.containers) == 0 {
		for i := range other.containers {
			other.containers[i].Shared = true
		}
		rb.index = append(rb.index[:0], other.index...)
		rb.containers = append(rb.containers[:0], other.containers...)
		return
	}

	i, j := 0, 0
	newContainers := make([]container, 0, len(rb.containers)+len(other.containers))
	newIndex := make([]uint16, 0, len(rb.index)+len(other.index))

	for i < len(rb.containers) && j < len(other.containers) {
		hi1, hi2 := rb.index[i], other.index[j]
		switch {
		case hi1 < hi2:
			newContainers = append(newContainers, rb.containers[i])
			newIndex = append(newIndex, hi1)
			i++
		case hi1 > hi2:
			other.containers[j].Shared = true
			newContainers = append(newContainers, other.containers[j])
			newIndex = append(newIndex, hi2)
			j++
		default:
			c1 := &rb.containers[i]
			combine(rb, c1, &other.containers[j])
			newContainers = append(newContainers, *c1)
			newIndex = append(newIndex, hi1)
			i++
			j++
		}
	}

	for ; i < len(rb.containers); i++ {
		newContainers = append(newContainers, rb.containers[i])
		newIndex = append(newIndex, rb.index[i])
	}
	for ; j < len(other.containers); j++ {
		other.containers[j].Shared = true
		newContainers = append(newContainers, other.containers[j])
		newIndex = append(newIndex, other.index[j])
	}

	rb.containers = newContainers
	rb.index = newIndex
}

// ctrOrLazy merges c2 into c1 word-wise without maintaining cardinality.
func (rb *Bitmap) ctrOrLazy(c1, c2 *container) {
	c1.fork()
	if c1.Type != typeBitmap {
		c1.toBmp()
	}

	words := c1.bmp()
	switch c2.Type {
	case typeArray:
		for _, val := range c2.Data {
			words.Set(uint32(val))
		}
	case typeBitmap:
		words.Or(c2.bmp())
	case typeRun:
		runs := c2.Data
		for i := 0; i+1 < len(runs); i += 2 {
			wordFill(words, uint32(runs[i]), uint32(runs[i+1]))
		}
	}
}

// ctrXorLazy flips c2's members in c1 word-wise without maintaining
// cardinality.
func (rb *Bitmap) ctrXorLazy(c1, c2 *container) {
	c1.fork()
	if c1.Type != typeBitmap {
		c1.toBmp()
	}

	words := c1.bmp()
	switch c2.Type {
	case typeArray:
		for _, val := range c2.Data {
			words[val>>6] ^= 1 << (val & 63)
		}
	case typeBitmap:
		words.Xor(c2.bmp())
	case typeRun:
		runs := c2.Data
		for i := 0; i+1 < len(runs); i += 2 {
			wordFlip(words, uint32(runs[i]), uint32(runs[i+1]))
		}
	}
}
