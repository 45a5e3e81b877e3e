// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// andNot performs AND NOT with a single bitmap
func (rb *Bitmap) andNot(other *Bitmap) {
	switch {
	case other == nil || len(other.containers) == 0:
		return // A AND NOT ∅ = A
	case len(rb.containers) == 0:
		return
	case rb == other:
		rb.Clear() // A AND NOT A = ∅
		return
	}
	other.repairIfDirty()

	// Remove elements that are in the other bitmap
	var drop []int
	for i := range rb.containers {
		c1 := &rb.containers[i]
		idx, exists := find16(other.index, rb.index[i])
		switch {
		case !exists:
			continue // Container not in other bitmap, keep as is
		case !rb.ctrAndNot(c1, &other.containers[idx]):
			drop = append(drop, i)
		}
	}

	// Batch remove empty containers (in reverse order to maintain indices)
	for i := len(drop) - 1; i >= 0; i-- {
		rb.ctrDel(drop[i])
	}
}

// ctrAndNot performs AND NOT between two containers, keeping the result in
// c1. Returns false when the result is empty.
func (rb *Bitmap) ctrAndNot(c1, c2 *container) bool {
	c1.fork()
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrAndNotArr(c1, c2)
		case typeBitmap:
			rb.arrAndNotBmp(c1, c2)
		case typeRun:
			rb.arrAndNotRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpAndNotArr(c1, c2)
		case typeBitmap:
			rb.bmpAndNotBmp(c1, c2)
		case typeRun:
			rb.bmpAndNotRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			rb.runAndNotArr(c1, c2)
		case typeBitmap:
			c1.runToBmp()
			rb.bmpAndNotBmp(c1, c2)
		case typeRun:
			rb.runAndNotRun(c1, c2)
		}
	}

	switch {
	case c1.Type == typeArray && c1.Size > arrMinSize:
		c1.arrToBmp()
	case c1.Type == typeBitmap && c1.Size <= arrMinSize:
		c1.bmpToArr()
	case c1.Type == typeRun && len(c1.Data)/2 > runMaxSize:
		c1.runToBmp()
	}
	return c1.Size > 0
}

// arrAndNotArr performs AND NOT between two array containers
func (rb *Bitmap) arrAndNotArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := a[:0]
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			i++
			j++
		case av < bv:
			out = append(out, av)
			i++
		default: // av > bv
			j++
		}
	}
	out = append(out, a[i:]...)

	c1.Data = out
	c1.Size = uint32(len(out))
}

// arrAndNotBmp performs AND NOT between array and bitset containers
func (rb *Bitmap) arrAndNotBmp(c1, c2 *container) {
	a, b := c1.Data, c2.bmp()
	out := a[:0]

	for _, val := range a {
		if !b.Contains(uint32(val)) {
			out = append(out, val)
		}
	}

	c1.Data = out
	c1.Size = uint32(len(out))
}

// arrAndNotRun performs AND NOT between array and run containers
func (rb *Bitmap) arrAndNotRun(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := a[:0]
	j := 0

	for _, val := range a {
		for j+1 < len(b) && b[j+1] < val {
			j += 2
		}
		if j < len(b) && val >= b[j] && val <= b[j+1] {
			continue // Covered by a run, drop it
		}
		out = append(out, val)
	}

	c1.Data = out
	c1.Size = uint32(len(out))
}

// bmpAndNotArr performs AND NOT between bitset and array containers
func (rb *Bitmap) bmpAndNotArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if bmp.Contains(uint32(val)) {
			bmp.Remove(uint32(val))
			c1.Size--
		}
	}
}

// bmpAndNotBmp performs AND NOT between two bitset containers
func (rb *Bitmap) bmpAndNotBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	if b == nil {
		return
	}

	a.AndNot(b)
	c1.Size = uint32(a.Count())
}

// bmpAndNotRun performs AND NOT between bitset and run containers
func (rb *Bitmap) bmpAndNotRun(c1, c2 *container) {
	words := c1.bmp()
	runs := c2.Data
	for i := 0; i+1 < len(runs); i += 2 {
		wordClear(words, uint32(runs[i]), uint32(runs[i+1]))
	}
	c1.Size = uint32(words.Count())
}

// runAndNotArr performs AND NOT between run and array containers, splitting
// runs around each removed value.
func (rb *Bitmap) runAndNotArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	size := uint32(0)
	j := 0

	for i := 0; i+1 < len(a); i += 2 {
		start, end := uint32(a[i]), uint32(a[i+1])
		for j < len(b) && uint32(b[j]) < start {
			j++
		}

		cur := start
		for ; j < len(b) && uint32(b[j]) <= end; j++ {
			hit := uint32(b[j])
			if hit > cur {
				out = append(out, uint16(cur), uint16(hit-1))
				size += hit - cur
			}
			cur = hit + 1
		}
		if cur <= end {
			out = append(out, uint16(cur), uint16(end))
			size += end - cur + 1
		}
	}

	rb.scratch = out
	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
}

// runAndNotRun performs AND NOT between two run containers by interval
// subtraction.
func (rb *Bitmap) runAndNotRun(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	size := uint32(0)
	j := 0

	for i := 0; i+1 < len(a); i += 2 {
		cur, end := uint32(a[i]), uint32(a[i+1])
		for j+1 < len(b) && uint32(b[j+1]) < cur {
			j += 2
		}

		for k := j; k+1 < len(b) && uint32(b[k]) <= end; k += 2 {
			s2, e2 := uint32(b[k]), uint32(b[k+1])
			if s2 > cur {
				hi := min(s2-1, end)
				out = append(out, uint16(cur), uint16(hi))
				size += hi - cur + 1
			}
			if e2+1 > cur {
				cur = e2 + 1
			}
			if cur > end {
				break
			}
		}
		if cur <= end {
			out = append(out, uint16(cur), uint16(end))
			size += end - cur + 1
		}
	}

	rb.scratch = out
	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
}
