package roaring

import "github.com/kelindar/bitmap"

// arrSet sets a value in an array container
func (c *container) arrSet(value uint16) bool {
	idx, found := find16(c.Data, value)
	if found {
		return false
	}

	c.Data = append(c.Data, 0)
	copy(c.Data[idx+1:], c.Data[idx:])
	c.Data[idx] = value
	c.Size++
	return true
}

// arrDel removes a value from an array container
func (c *container) arrDel(value uint16) bool {
	idx, found := find16(c.Data, value)
	if !found {
		return false
	}

	copy(c.Data[idx:], c.Data[idx+1:])
	c.Data = c.Data[:len(c.Data)-1]
	c.Size--
	return true
}

// arrHas checks if a value exists in an array container
func (c *container) arrHas(value uint16) bool {
	_, found := find16(c.Data, value)
	return found
}

// arrNextFrom returns the smallest member >= value
func (c *container) arrNextFrom(value uint16) (uint16, bool) {
	idx, _ := find16(c.Data, value)
	if idx >= len(c.Data) {
		return 0, false
	}
	return c.Data[idx], true
}

// arrPrevFrom returns the largest member <= value
func (c *container) arrPrevFrom(value uint16) (uint16, bool) {
	idx, found := find16(c.Data, value)
	if found {
		return value, true
	}
	if idx == 0 {
		return 0, false
	}
	return c.Data[idx-1], true
}

// arrRank counts the members <= value
func (c *container) arrRank(value uint16) int {
	idx, found := find16(c.Data, value)
	if found {
		return idx + 1
	}
	return idx
}

// arrCountRange counts the members within [lo, hi]
func (c *container) arrCountRange(lo, hi uint16) int {
	if lo > hi {
		return 0
	}
	from, _ := find16(c.Data, lo)
	to, found := find16(c.Data, hi)
	if found {
		to++
	}
	return to - from
}

// arrNumRuns counts maximal runs of consecutive values in the array
func (c *container) arrNumRuns() int {
	if len(c.Data) == 0 {
		return 0
	}

	runs := 1
	for i := 1; i < len(c.Data); i++ {
		if c.Data[i] != c.Data[i-1]+1 {
			runs++
		}
	}
	return runs
}

// arrToBmp converts this container from array to bitset
func (c *container) arrToBmp() {
	array := c.Data
	c.Data = asUint16s(make(bitmap.Bitmap, bmpSizeWords/4))
	c.Type = typeBitmap

	bm := c.bmp()
	for _, value := range array {
		bm.Set(uint32(value))
	}
}

// arrToRun converts this container from array to run
func (c *container) arrToRun() {
	array := c.Data
	if len(array) == 0 {
		c.Data = c.Data[:0]
		c.Type = typeRun
		return
	}

	out := make([]uint16, 0, 2*c.arrNumRuns())
	start, end := array[0], array[0]
	for _, v := range array[1:] {
		if v == end+1 {
			end = v
			continue
		}
		out = append(out, start, end)
		start, end = v, v
	}
	out = append(out, start, end)

	c.Data = out
	c.Type = typeRun
}
