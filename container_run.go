package roaring

import "github.com/kelindar/bitmap"

// runFind locates the run containing the value. When not found, the returned
// index is the insertion point for a new run.
func (c *container) runFind(value uint16) (int, bool) {
	n := len(c.Data) >> 1
	switch {
	case n == 0:
		return 0, false
	case value < c.Data[0]:
		return 0, false
	case value > c.Data[(n-1)*2+1]:
		return n, false
	}

	// binary phase: shrink window to ≤4 runs
	lo, hi := 0, n
	for hi-lo > 4 {
		mid := (lo + hi) >> 1
		start := c.Data[mid*2]
		if value < start {
			hi = mid
			continue
		}
		if value <= c.Data[mid*2+1] {
			return mid, true
		}
		lo = mid + 1
	}

	// linear phase inside one cache line
	for i := lo; i < hi; i++ {
		switch {
		case value < c.Data[i*2]:
			return i, false
		case value <= c.Data[i*2+1]:
			return i, true
		}
	}
	return hi, false
}

// runSet sets a value in a run container, coalescing with adjacent runs
func (c *container) runSet(value uint16) bool {
	idx, found := c.runFind(value)
	if found {
		return false
	}

	numRuns := len(c.Data) / 2
	canMergeLeft := idx > 0 && c.Data[(idx-1)*2+1]+1 == value
	canMergeRight := idx < numRuns && c.Data[idx*2]-1 == value

	switch {
	case canMergeLeft && canMergeRight:
		c.Data[(idx-1)*2+1] = c.Data[idx*2+1]
		c.runRemoveRunAt(idx)
	case canMergeLeft:
		c.Data[(idx-1)*2+1] = value
	case canMergeRight:
		c.Data[idx*2] = value
	default:
		c.runInsertRunAt(idx, value, value)
	}

	c.Size++
	return true
}

// runDel removes a value from a run container
func (c *container) runDel(value uint16) bool {
	idx, found := c.runFind(value)
	if !found {
		return false
	}

	start := c.Data[idx*2]
	end := c.Data[idx*2+1]

	switch {
	case start == end:
		c.runRemoveRunAt(idx)
	case value == start:
		c.Data[idx*2] = value + 1
	case value == end:
		c.Data[idx*2+1] = value - 1
	default:
		c.Data[idx*2+1] = value - 1
		c.runInsertRunAt(idx+1, value+1, end)
	}

	c.Size--
	return true
}

// runHas checks if a value exists in a run container
func (c *container) runHas(value uint16) bool {
	_, found := c.runFind(value)
	return found
}

// runNextFrom returns the smallest member >= value
func (c *container) runNextFrom(value uint16) (uint16, bool) {
	idx, found := c.runFind(value)
	if found {
		return value, true
	}
	if idx >= len(c.Data)/2 {
		return 0, false
	}
	return c.Data[idx*2], true
}

// runPrevFrom returns the largest member <= value
func (c *container) runPrevFrom(value uint16) (uint16, bool) {
	idx, found := c.runFind(value)
	if found {
		return value, true
	}
	if idx == 0 {
		return 0, false
	}
	return c.Data[(idx-1)*2+1], true
}

// runRank counts the members <= value
func (c *container) runRank(value uint16) int {
	n := 0
	for _, r := range c.runs() {
		switch {
		case value < r[0]:
			return n
		case value <= r[1]:
			return n + int(value-r[0]) + 1
		}
		n += int(r[1]-r[0]) + 1
	}
	return n
}

// runSelect returns the idx-th smallest member, idx in [0, cardinality)
func (c *container) runSelect(idx uint32) uint16 {
	left := idx
	for _, r := range c.runs() {
		length := uint32(r[1]-r[0]) + 1
		if left < length {
			return r[0] + uint16(left)
		}
		left -= length
	}
	return 0
}

// runCountRange counts the members within [lo, hi]
func (c *container) runCountRange(lo, hi uint16) int {
	if lo > hi {
		return 0
	}

	n := 0
	for _, r := range c.runs() {
		if r[0] > hi {
			break
		}
		if r[1] < lo {
			continue
		}

		start, end := r[0], r[1]
		if start < lo {
			start = lo
		}
		if end > hi {
			end = hi
		}
		n += int(end-start) + 1
	}
	return n
}

// runInsertRunAt inserts a new run at the specified index
func (c *container) runInsertRunAt(index int, start, end uint16) {
	numRuns := len(c.Data) / 2
	newLen := (numRuns + 1) * 2

	if cap(c.Data) >= newLen {
		c.Data = c.Data[:newLen]
		if index < numRuns {
			copy(c.Data[(index+1)*2:], c.Data[index*2:numRuns*2])
		}
	} else {
		newData := make([]uint16, newLen, newLen+max(16, numRuns))
		copy(newData, c.Data[:index*2])
		if index < numRuns {
			copy(newData[(index+1)*2:], c.Data[index*2:])
		}
		c.Data = newData
	}

	c.Data[index*2] = start
	c.Data[index*2+1] = end
}

// runRemoveRunAt removes the run at the specified index
func (c *container) runRemoveRunAt(index int) {
	numRuns := len(c.Data) / 2
	if index < 0 || index >= numRuns {
		return
	}

	copy(c.Data[index*2:], c.Data[(index+1)*2:])
	c.Data = c.Data[:(numRuns-1)*2]
}

// runToArr converts this container from run to array
func (c *container) runToArr() {
	src := c.Data
	out := make([]uint16, 0, c.Size)
	for i := 0; i+1 < len(src); i += 2 {
		start, end := uint32(src[i]), uint32(src[i+1])
		for v := start; v <= end; v++ {
			out = append(out, uint16(v))
		}
	}

	c.Data = out
	c.Type = typeArray
}

// runToBmp converts this container from run to bitset
func (c *container) runToBmp() {
	src := c.Data
	c.Data = asUint16s(make(bitmap.Bitmap, bmpSizeWords/4))
	c.Type = typeBitmap

	words := c.bmp()
	for i := 0; i+1 < len(src); i += 2 {
		wordFill(words, uint32(src[i]), uint32(src[i+1]))
	}
}
