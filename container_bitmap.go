package roaring

import "math/bits"

// bmpSet sets a value in a bitset container
func (c *container) bmpSet(value uint16) bool {
	bm := c.bmp()
	if bm.Contains(uint32(value)) {
		return false
	}

	bm.Set(uint32(value))
	c.Size++
	return true
}

// bmpDel removes a value from a bitset container
func (c *container) bmpDel(value uint16) bool {
	bm := c.bmp()
	if !bm.Contains(uint32(value)) {
		return false
	}

	bm.Remove(uint32(value))
	c.Size--
	return true
}

// bmpHas checks if a value exists in a bitset container
func (c *container) bmpHas(value uint16) bool {
	return c.bmp().Contains(uint32(value))
}

// bmpNextFrom returns the smallest member >= value
func (c *container) bmpNextFrom(value uint16) (uint16, bool) {
	words := c.bmp()
	i := int(value >> 6)
	word := words[i] & (^uint64(0) << (value & 63))
	for {
		if word != 0 {
			return uint16(i<<6 + bits.TrailingZeros64(word)), true
		}
		if i++; i >= len(words) {
			return 0, false
		}
		word = words[i]
	}
}

// bmpPrevFrom returns the largest member <= value
func (c *container) bmpPrevFrom(value uint16) (uint16, bool) {
	words := c.bmp()
	i := int(value >> 6)
	word := words[i] & (^uint64(0) >> (63 - value&63))
	for {
		if word != 0 {
			return uint16(i<<6 + 63 - bits.LeadingZeros64(word)), true
		}
		if i--; i < 0 {
			return 0, false
		}
		word = words[i]
	}
}

// bmpRank counts the members <= value
func (c *container) bmpRank(value uint16) int {
	words := c.bmp()
	i := int(value >> 6)

	n := 0
	for j := 0; j < i; j++ {
		n += bits.OnesCount64(words[j])
	}
	return n + bits.OnesCount64(words[i]&(^uint64(0)>>(63-value&63)))
}

// bmpSelect returns the idx-th smallest member, idx in [0, cardinality)
func (c *container) bmpSelect(idx uint32) uint16 {
	words := c.bmp()
	left := int(idx)
	for i, word := range words {
		count := bits.OnesCount64(word)
		if left >= count {
			left -= count
			continue
		}

		// Clear the lowest bits until the requested one is first
		for ; left > 0; left-- {
			word &= word - 1
		}
		return uint16(i<<6 + bits.TrailingZeros64(word))
	}
	return 0
}

// bmpCountRange counts the members within [lo, hi]
func (c *container) bmpCountRange(lo, hi uint16) int {
	if lo > hi {
		return 0
	}

	words := c.bmp()
	i, j := int(lo>>6), int(hi>>6)
	headMask := ^uint64(0) << (lo & 63)
	tailMask := ^uint64(0) >> (63 - hi&63)

	if i == j {
		return bits.OnesCount64(words[i] & headMask & tailMask)
	}

	n := bits.OnesCount64(words[i] & headMask)
	for k := i + 1; k < j; k++ {
		n += bits.OnesCount64(words[k])
	}
	return n + bits.OnesCount64(words[j]&tailMask)
}

// bmpNumRuns counts maximal runs of consecutive set bits across the word
// vector, carrying run continuation across word boundaries.
func (c *container) bmpNumRuns() int {
	words := c.bmp()
	runs := 0
	for i := 0; i < len(words)-1; i++ {
		word := words[i]
		runs += bits.OnesCount64((word << 1) &^ word)
		runs += int((word >> 63) &^ words[i+1])
	}

	last := words[len(words)-1]
	runs += bits.OnesCount64((last << 1) &^ last)
	runs += int(last >> 63)
	return runs
}

// bmpForEach calls fn for every member in ascending order until fn returns false
func (c *container) bmpForEach(fn func(value uint16) bool) bool {
	for i, word := range c.bmp() {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			if !fn(uint16(i<<6 + bit)) {
				return false
			}
			word &= word - 1
		}
	}
	return true
}

// bmpToArr converts this container from bitset to array
func (c *container) bmpToArr() {
	out := make([]uint16, 0, c.Size)
	for i, word := range c.bmp() {
		for word != 0 {
			out = append(out, uint16(i<<6+bits.TrailingZeros64(word)))
			word &= word - 1
		}
	}

	c.Data = out
	c.Type = typeArray
}

// bmpToRun converts this container from bitset to run
func (c *container) bmpToRun() {
	out := make([]uint16, 0, 2*c.bmpNumRuns())
	start, prev := uint32(0), uint32(0)
	open := false

	c.bmpForEach(func(value uint16) bool {
		v := uint32(value)
		switch {
		case !open:
			start, prev, open = v, v, true
		case v == prev+1:
			prev = v
		default:
			out = append(out, uint16(start), uint16(prev))
			start, prev = v, v
		}
		return true
	})
	if open {
		out = append(out, uint16(start), uint16(prev))
	}

	c.Data = out
	c.Type = typeRun
}

// wordFill sets every bit within [lo, hi] of the word vector, without
// maintaining any cardinality bookkeeping.
func wordFill(words []uint64, lo, hi uint32) {
	i, j := int(lo>>6), int(hi>>6)
	headMask := ^uint64(0) << (lo & 63)
	tailMask := ^uint64(0) >> (63 - hi&63)

	if i == j {
		words[i] |= headMask & tailMask
		return
	}

	words[i] |= headMask
	for k := i + 1; k < j; k++ {
		words[k] = ^uint64(0)
	}
	words[j] |= tailMask
}

// wordClear clears every bit within [lo, hi] of the word vector.
func wordClear(words []uint64, lo, hi uint32) {
	i, j := int(lo>>6), int(hi>>6)
	headMask := ^uint64(0) << (lo & 63)
	tailMask := ^uint64(0) >> (63 - hi&63)

	if i == j {
		words[i] &^= headMask & tailMask
		return
	}

	words[i] &^= headMask
	for k := i + 1; k < j; k++ {
		words[k] = 0
	}
	words[j] &^= tailMask
}

// wordFlip inverts every bit within [lo, hi] of the word vector.
func wordFlip(words []uint64, lo, hi uint32) {
	i, j := int(lo>>6), int(hi>>6)
	headMask := ^uint64(0) << (lo & 63)
	tailMask := ^uint64(0) >> (63 - hi&63)

	if i == j {
		words[i] ^= headMask & tailMask
		return
	}

	words[i] ^= headMask
	for k := i + 1; k < j; k++ {
		words[k] = ^words[k]
	}
	words[j] ^= tailMask
}
