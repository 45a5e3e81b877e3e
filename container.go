package roaring

import "github.com/kelindar/bitmap"

const (
	// arrMinSize is the array/bitset cardinality crossover: an array container
	// never holds more than arrMinSize values and a bitset container shrinks
	// back to an array at or below it. The codec and the behavioural tests
	// rely on this exact constant.
	arrMinSize = 4096

	// runMaxSize is the largest number of runs a run container may hold. Past
	// this point a bitset (8192 bytes) is always at least as small as the run
	// encoding (2 + 4*runs bytes).
	runMaxSize = 2047

	bmpSizeWords = 4096 // bitset payload length, in uint16s
	bmpSizeBytes = 8192 // bitset payload length, in bytes
)

type ctype byte

const (
	typeArray ctype = iota
	typeBitmap
	typeRun
)

// container is the per-bucket tagged union. Data holds sorted distinct values
// for array containers, a fixed 4096-word bit vector for bitset containers
// and sorted non-overlapping (start, end) pairs for run containers.
type container struct {
	Type   ctype  // Type of the container
	Shared bool   // Data is shared with another bitmap or a frozen buffer
	Size   uint32 // Cardinality
	Data   []uint16
}

// run is a maximal interval of consecutive values, both bounds inclusive.
type run [2]uint16

func (c *container) arr() []uint16 {
	return c.Data
}

func (c *container) bmp() bitmap.Bitmap {
	return asBitmap(c.Data)
}

func (c *container) runs() []run {
	return asRuns(c.Data)
}

// fork clones the payload of a shared container before the first mutation.
// This is the single copy-on-write entry point: every mutating path calls it
// before touching Data in place.
func (c *container) fork() {
	if c.Shared {
		c.Data = append(make([]uint16, 0, len(c.Data)), c.Data...)
		c.Shared = false
	}
}

// clone returns a deep copy of the container.
func (c *container) clone() container {
	return container{
		Type: c.Type,
		Size: c.Size,
		Data: append(make([]uint16, 0, len(c.Data)), c.Data...),
	}
}

// set sets a value in the container and returns true if the value was added
// (didn't exist before). The caller must have forked a shared container.
func (c *container) set(value uint16) bool {
	switch c.Type {
	case typeArray:
		ok := c.arrSet(value)
		if ok && c.Size > arrMinSize {
			c.arrToBmp()
		}
		return ok
	case typeBitmap:
		return c.bmpSet(value)
	case typeRun:
		ok := c.runSet(value)
		if ok && len(c.Data)/2 > runMaxSize {
			c.runToBmp()
		}
		return ok
	}
	return false
}

// remove removes a value from the container and returns true if the value was
// removed (existed before). The caller must have forked a shared container.
func (c *container) remove(value uint16) bool {
	switch c.Type {
	case typeArray:
		return c.arrDel(value)
	case typeBitmap:
		ok := c.bmpDel(value)
		if ok && c.Size <= arrMinSize {
			c.bmpToArr()
		}
		return ok
	case typeRun:
		ok := c.runDel(value)
		if ok && len(c.Data)/2 > runMaxSize {
			c.runToBmp()
		}
		return ok
	}
	return false
}

// contains checks if a value exists in the container
func (c *container) contains(value uint16) bool {
	switch c.Type {
	case typeArray:
		return c.arrHas(value)
	case typeBitmap:
		return c.bmpHas(value)
	case typeRun:
		return c.runHas(value)
	}
	return false
}

// cardinality returns the number of elements in the container
func (c *container) cardinality() int {
	return int(c.Size)
}

// isEmpty returns true if the container has no elements
func (c *container) isEmpty() bool {
	return c.cardinality() == 0
}

// numRuns counts the maximal runs of consecutive values in the container.
func (c *container) numRuns() int {
	switch c.Type {
	case typeArray:
		return c.arrNumRuns()
	case typeBitmap:
		return c.bmpNumRuns()
	case typeRun:
		return len(c.Data) / 2
	}
	return 0
}

// optimize converts the container to the smallest representation for its
// current contents. Byte sizes compared: array 2*cardinality, bitset 8192,
// run 2 + 4*runs. The choice is deterministic given the same contents.
func (c *container) optimize() {
	if c.Size == 0 {
		return
	}

	sizeRun := 2 + 4*c.numRuns()
	switch {
	case c.Size <= arrMinSize:
		switch {
		case sizeRun < 2*int(c.Size):
			c.toRun()
		case c.Type != typeArray:
			c.toArr()
		}
	default:
		switch {
		case sizeRun < bmpSizeBytes:
			c.toRun()
		case c.Type != typeBitmap:
			c.toBmp()
		}
	}
}

// toArr converts the container to array representation.
func (c *container) toArr() {
	switch c.Type {
	case typeBitmap:
		c.bmpToArr()
	case typeRun:
		c.runToArr()
	}
}

// toBmp converts the container to bitset representation.
func (c *container) toBmp() {
	switch c.Type {
	case typeArray:
		c.arrToBmp()
	case typeRun:
		c.runToBmp()
	}
}

// toRun converts the container to run representation.
func (c *container) toRun() {
	switch c.Type {
	case typeArray:
		c.arrToRun()
	case typeBitmap:
		c.bmpToRun()
	}
}

// minimum returns the smallest value in the container.
func (c *container) minimum() (uint16, bool) {
	return c.nextFrom(0)
}

// maximum returns the largest value in the container.
func (c *container) maximum() (uint16, bool) {
	return c.prevFrom(65535)
}

// nextFrom returns the smallest member greater than or equal to value.
func (c *container) nextFrom(value uint16) (uint16, bool) {
	switch c.Type {
	case typeArray:
		return c.arrNextFrom(value)
	case typeBitmap:
		return c.bmpNextFrom(value)
	case typeRun:
		return c.runNextFrom(value)
	}
	return 0, false
}

// prevFrom returns the largest member less than or equal to value.
func (c *container) prevFrom(value uint16) (uint16, bool) {
	switch c.Type {
	case typeArray:
		return c.arrPrevFrom(value)
	case typeBitmap:
		return c.bmpPrevFrom(value)
	case typeRun:
		return c.runPrevFrom(value)
	}
	return 0, false
}

// rank counts the members less than or equal to value.
func (c *container) rank(value uint16) int {
	switch c.Type {
	case typeArray:
		return c.arrRank(value)
	case typeBitmap:
		return c.bmpRank(value)
	case typeRun:
		return c.runRank(value)
	}
	return 0
}

// selectAt returns the idx-th smallest member, idx in [0, cardinality).
func (c *container) selectAt(idx uint32) uint16 {
	switch c.Type {
	case typeArray:
		return c.Data[idx]
	case typeBitmap:
		return c.bmpSelect(idx)
	case typeRun:
		return c.runSelect(idx)
	}
	return 0
}

// countRange counts the members within [lo, hi], both bounds inclusive.
func (c *container) countRange(lo, hi uint16) int {
	switch c.Type {
	case typeArray:
		return c.arrCountRange(lo, hi)
	case typeBitmap:
		return c.bmpCountRange(lo, hi)
	case typeRun:
		return c.runCountRange(lo, hi)
	}
	return 0
}

// forEach calls fn for every member in ascending order until fn returns false.
// Returns false if the iteration was stopped early.
func (c *container) forEach(fn func(value uint16) bool) bool {
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			if !fn(v) {
				return false
			}
		}
	case typeBitmap:
		return c.bmpForEach(fn)
	case typeRun:
		for _, r := range c.runs() {
			for v := uint32(r[0]); v <= uint32(r[1]); v++ {
				if !fn(uint16(v)) {
					return false
				}
			}
		}
	}
	return true
}
