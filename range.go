package roaring

// Range calls the given function for each value in ascending order, stopping
// early when the function returns false.
func (rb *Bitmap) Range(fn func(x uint32) bool) {
	rb.repairIfDirty()
	for i := range rb.containers {
		base := uint32(rb.index[i]) << 16
		if !rb.containers[i].forEach(func(lo uint16) bool {
			return fn(base | uint32(lo))
		}) {
			return
		}
	}
}

// Filter iterates over the bitmap and calls the predicate for each value. If
// the predicate returns false, the value is removed from the bitmap.
func (rb *Bitmap) Filter(f func(x uint32) bool) {
	rb.repairIfDirty()
	for i := len(rb.containers) - 1; i >= 0; i-- {
		c := &rb.containers[i]
		base := uint32(rb.index[i]) << 16
		c.fork()

		switch c.Type {
		case typeArray:
			out := c.Data[:0]
			for _, lo := range c.Data {
				if f(base | uint32(lo)) {
					out = append(out, lo)
				}
			}
			c.Data = out
			c.Size = uint32(len(out))

		case typeBitmap:
			words := c.bmp()
			removed := uint32(0)
			c.bmpForEach(func(lo uint16) bool {
				if !f(base | uint32(lo)) {
					words.Remove(uint32(lo))
					removed++
				}
				return true
			})
			c.Size -= removed
			if c.Size <= arrMinSize {
				c.bmpToArr()
			}

		case typeRun:
			out := rb.scratch[:0]
			for _, r := range c.runs() {
				for v := uint32(r[0]); v <= uint32(r[1]); v++ {
					if f(base | v) {
						out = append(out, uint16(v))
					}
				}
			}
			rb.scratch = out
			c.Data = append(c.Data[:0], out...)
			c.Size = uint32(len(c.Data))
			c.Type = typeArray
			c.optimize()
		}

		if c.isEmpty() {
			rb.ctrDel(i)
		}
	}
}

// SetRange sets every value within [min, max). Whole buckets are filled as a
// single full-bucket run in O(1) per bucket rather than O(n) per value.
func (rb *Bitmap) SetRange(min, max uint64) {
	rb.repairIfDirty()
	if max > 1<<32 {
		max = 1 << 32
	}
	if min >= max {
		return
	}

	last := max - 1
	for hb := min >> 16; hb <= last>>16; hb++ {
		lo1, lo2 := uint16(0), uint16(65535)
		if hb == min>>16 {
			lo1 = uint16(min)
		}
		if hb == last>>16 {
			lo2 = uint16(last)
		}

		key := uint16(hb)
		idx, found := find16(rb.index, key)
		switch {
		case lo1 == 0 && lo2 == 65535:
			// Full bucket, replace whatever is there with one run
			full := container{Type: typeRun, Size: 65536, Data: []uint16{0, 65535}}
			if found {
				rb.containers[idx] = full
			} else {
				rb.ctrAdd(idx, key, full)
			}
		case !found:
			c := container{Type: typeRun, Size: uint32(lo2-lo1) + 1, Data: []uint16{lo1, lo2}}
			rb.ctrAdd(idx, key, c)
		default:
			span := container{Type: typeRun, Size: uint32(lo2-lo1) + 1, Data: []uint16{lo1, lo2}}
			c := &rb.containers[idx]
			rb.ctrOr(c, &span)
			c.optimize()
		}
	}
}

// RemoveRange removes every value within [min, max). Whole buckets are
// dropped outright in O(1) per bucket.
func (rb *Bitmap) RemoveRange(min, max uint64) {
	rb.repairIfDirty()
	if max > 1<<32 {
		max = 1 << 32
	}
	if min >= max || len(rb.containers) == 0 {
		return
	}

	last := max - 1
	for hb := last >> 16; ; hb-- {
		key := uint16(hb)
		idx, found := find16(rb.index, key)
		if found {
			lo1, lo2 := uint16(0), uint16(65535)
			if hb == min>>16 {
				lo1 = uint16(min)
			}
			if hb == last>>16 {
				lo2 = uint16(last)
			}

			switch {
			case lo1 == 0 && lo2 == 65535:
				rb.ctrDel(idx)
			default:
				span := container{Type: typeRun, Size: uint32(lo2-lo1) + 1, Data: []uint16{lo1, lo2}}
				c := &rb.containers[idx]
				if !rb.ctrAndNot(c, &span) {
					rb.ctrDel(idx)
				}
			}
		}

		if hb == min>>16 {
			break
		}
	}
}
