// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// or performs OR with a single bitmap
func (rb *Bitmap) or(other *Bitmap) {
	switch {
	case other == nil || len(other.containers) == 0:
		return // No change needed
	case rb == other:
		return // A OR A = A
	}
	other.repairIfDirty()

	if len(rb.containers) == 0 {
		// Copy all containers from other, shared copy-on-write
		for i := range other.containers {
			other.containers[i].Shared = true
		}
		rb.index = append(rb.index[:0], other.index...)
		rb.containers = append(rb.containers[:0], other.containers...)
		return
	}

	// Merge containers from both bitmaps
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
			rb.ctrOr(c1, &other.containers[j])
			newContainers = append(newContainers, *c1)
			newIndex = append(newIndex, hi1)
			i++
			j++
		}
	}

	// Add remaining containers from left
	for ; i < len(rb.containers); i++ {
		newContainers = append(newContainers, rb.containers[i])
		newIndex = append(newIndex, rb.index[i])
	}

	// Add remaining containers from right
	for ; j < len(other.containers); j++ {
		other.containers[j].Shared = true
		newContainers = append(newContainers, other.containers[j])
		newIndex = append(newIndex, other.index[j])
	}

	rb.containers = newContainers
	rb.index = newIndex
}

// ctrOr performs OR between two containers, keeping the result in c1.
func (rb *Bitmap) ctrOr(c1, c2 *container) {
	c1.fork()
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrOrArr(c1, c2)
		case typeBitmap:
			rb.arrOrBmp(c1, c2)
		case typeRun:
			rb.arrOrRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpOrArr(c1, c2)
		case typeBitmap:
			rb.bmpOrBmp(c1, c2)
		case typeRun:
			rb.bmpOrRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			rb.runOrArr(c1, c2)
		case typeBitmap:
			rb.runOrBmp(c1, c2)
		case typeRun:
			rb.runOrRun(c1, c2)
		}
	}

	switch {
	case c1.Type == typeArray && c1.Size > arrMinSize:
		c1.arrToBmp()
	case c1.Type == typeRun && len(c1.Data)/2 > runMaxSize:
		c1.runToBmp()
	}
}

// arrOrArr performs OR between two array containers
func (rb *Bitmap) arrOrArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			out = append(out, av)
			i++
			j++
		case av < bv:
			out = append(out, av)
			i++
		default: // av > bv
			out = append(out, bv)
			j++
		}
	}

	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	rb.scratch = out
	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
}

// arrOrBmp performs OR between array and bitset containers
func (rb *Bitmap) arrOrBmp(c1, c2 *container) {
	c1.arrToBmp()
	rb.bmpOrBmp(c1, c2)
}

// arrOrRun performs OR between array and run containers
func (rb *Bitmap) arrOrRun(c1, c2 *container) {
	c1.arrToRun()
	rb.runOrRun(c1, c2)
}

// bmpOrArr performs OR between bitset and array containers
func (rb *Bitmap) bmpOrArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if !bmp.Contains(uint32(val)) {
			bmp.Set(uint32(val))
			c1.Size++
		}
	}
}

// bmpOrBmp performs OR between two bitset containers
func (rb *Bitmap) bmpOrBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	if b == nil {
		return
	}

	a.Or(b)
	c1.Size = uint32(a.Count())
}

// bmpOrRun performs OR between bitset and run containers
func (rb *Bitmap) bmpOrRun(c1, c2 *container) {
	words := c1.bmp()
	runs := c2.Data
	for i := 0; i+1 < len(runs); i += 2 {
		wordFill(words, uint32(runs[i]), uint32(runs[i+1]))
	}
	c1.Size = uint32(words.Count())
}

// runOrArr performs OR between run and array containers
func (rb *Bitmap) runOrArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	size := uint32(0)
	i, j := 0, 0

	flush := func(s, e uint32) {
		n := len(out)
		if n > 0 && uint32(out[n-1])+1 >= s {
			if e > uint32(out[n-1]) {
				size += e - uint32(out[n-1])
				out[n-1] = uint16(e)
			}
			return
		}
		out = append(out, uint16(s), uint16(e))
		size += e - s + 1
	}

	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] <= b[j]):
			flush(uint32(a[i]), uint32(a[i+1]))
			i += 2
		default:
			flush(uint32(b[j]), uint32(b[j]))
			j++
		}
	}

	rb.scratch = out
	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
}

// runOrBmp performs OR between run and bitset containers
func (rb *Bitmap) runOrBmp(c1, c2 *container) {
	c1.runToBmp()
	rb.bmpOrBmp(c1, c2)
}

// runOrRun performs OR between two run containers, producing maximally
// coalesced runs: overlapping and adjacent runs are always combined.
func (rb *Bitmap) runOrRun(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	size := uint32(0)
	i, j := 0, 0

	flush := func(s, e uint32) {
		n := len(out)
		if n > 0 && uint32(out[n-1])+1 >= s {
			if e > uint32(out[n-1]) {
				size += e - uint32(out[n-1])
				out[n-1] = uint16(e)
			}
			return
		}
		out = append(out, uint16(s), uint16(e))
		size += e - s + 1
	}

	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] <= b[j]):
			flush(uint32(a[i]), uint32(a[i+1]))
			i += 2
		default:
			flush(uint32(b[j]), uint32(b[j+1]))
			j += 2
		}
	}

	rb.scratch = out
	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	c1.Type = typeRun
}
