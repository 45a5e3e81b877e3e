// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// xor performs XOR with a single bitmap
func (rb *Bitmap) xor(other *Bitmap) {
	switch {
	case other == nil || len(other.containers) == 0:
		return // No change needed
	case rb == other:
		rb.Clear() // A XOR A = ∅
		return
	}
	other.repairIfDirty()

	if len(rb.containers) == 0 {
		// A XOR B = B when A is empty, shared copy-on-write
		for i := range other.containers {
			other.containers[i].Shared = true
		}
		rb.index = append(rb.index[:0], other.index...)
		rb.containers = append(rb.containers[:0], other.containers...)
		return
	}

	// Merge containers from both bitmaps using XOR logic
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
			if rb.ctrXor(c1, &other.containers[j]) {
				newContainers = append(newContainers, *c1)
				newIndex = append(newIndex, hi1)
			}
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

// ctrXor performs XOR between two containers, keeping the result in c1.
// Returns false when the result is empty.
func (rb *Bitmap) ctrXor(c1, c2 *container) bool {
	c1.fork()
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrXorArr(c1, c2)
		case typeBitmap:
			c1.arrToBmp()
			rb.bmpXorBmp(c1, c2)
		case typeRun:
			c1.arrToBmp()
			rb.bmpXorRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpXorArr(c1, c2)
		case typeBitmap:
			rb.bmpXorBmp(c1, c2)
		case typeRun:
			rb.bmpXorRun(c1, c2)
		}
	case typeRun:
		c1.runToBmp()
		switch c2.Type {
		case typeArray:
			rb.bmpXorArr(c1, c2)
		case typeBitmap:
			rb.bmpXorBmp(c1, c2)
		case typeRun:
			rb.bmpXorRun(c1, c2)
		}
	}

	switch {
	case c1.Type == typeArray && c1.Size > arrMinSize:
		c1.arrToBmp()
	case c1.Type == typeBitmap && c1.Size <= arrMinSize:
		c1.bmpToArr()
	}
	return c1.Size > 0
}

// arrXorArr performs XOR between two array containers
func (rb *Bitmap) arrXorArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
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

// bmpXorArr performs XOR between bitset and array containers
func (rb *Bitmap) bmpXorArr(c1, c2 *container) {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if bmp.Contains(uint32(val)) {
			bmp.Remove(uint32(val))
			c1.Size--
		} else {
			bmp.Set(uint32(val))
			c1.Size++
		}
	}
}

// bmpXorBmp performs XOR between two bitset containers
func (rb *Bitmap) bmpXorBmp(c1, c2 *container) {
	a, b := c1.bmp(), c2.bmp()
	if b == nil {
		return
	}

	a.Xor(b)
	c1.Size = uint32(a.Count())
}

// bmpXorRun performs XOR between bitset and run containers
func (rb *Bitmap) bmpXorRun(c1, c2 *container) {
	words := c1.bmp()
	runs := c2.Data
	for i := 0; i+1 < len(runs); i += 2 {
		wordFlip(words, uint32(runs[i]), uint32(runs[i+1]))
	}
	c1.Size = uint32(words.Count())
}
