package roaring

// Bitmap represents a compressed set of uint32 values. Containers are kept in
// a slice parallel to a sorted high-key index; no empty container is ever
// retained. A Bitmap is not safe for concurrent mutation, but any number of
// goroutines may read a bitmap that nobody is mutating.
type Bitmap struct {
	index      []uint16    // sorted high 16 bits of each bucket
	containers []container // one container per index entry
	scratch    []uint16    // reusable merge buffer
	dirty      bool        // lazy operations deferred the bookkeeping
}

// New creates a new empty bitmap
func New() *Bitmap {
	return &Bitmap{}
}

// FromSlice creates a bitmap containing every value of the slice.
func FromSlice(values []uint32) *Bitmap {
	rb := New()
	for _, v := range values {
		rb.Set(v)
	}
	rb.Optimize()
	return rb
}

// FromRange creates a bitmap of the arithmetic progression min, min+step, ...
// strictly below max. A step of 1 produces the contiguous range [min, max).
func FromRange(min, max uint64, step uint64) *Bitmap {
	rb := New()
	if max > 1<<32 {
		max = 1 << 32
	}

	switch {
	case step == 0 || min >= max:
		return rb
	case step == 1:
		rb.SetRange(min, max)
		return rb
	}

	for v := min; v < max; v += step {
		rb.Set(uint32(v))
	}
	rb.Optimize()
	return rb
}

// Set sets the value x in the bitmap and returns true if it was added.
func (rb *Bitmap) Set(x uint32) bool {
	rb.repairIfDirty()
	hi, lo := uint16(x>>16), uint16(x)
	idx, found := find16(rb.index, hi)
	if !found {
		rb.ctrAdd(idx, hi, container{Type: typeArray, Data: make([]uint16, 0, 8)})
	}

	c := &rb.containers[idx]
	c.fork()
	return c.set(lo)
}

// Remove removes the value x from the bitmap and returns true if it existed.
func (rb *Bitmap) Remove(x uint32) bool {
	rb.repairIfDirty()
	hi, lo := uint16(x>>16), uint16(x)
	idx, found := find16(rb.index, hi)
	if !found {
		return false
	}

	c := &rb.containers[idx]
	c.fork()
	if !c.remove(lo) {
		return false
	}
	if c.isEmpty() {
		rb.ctrDel(idx)
	}
	return true
}

// Contains checks whether a value is contained in the bitmap or not.
func (rb *Bitmap) Contains(x uint32) bool {
	hi, lo := uint16(x>>16), uint16(x)
	idx, found := find16(rb.index, hi)
	if !found {
		return false
	}
	return rb.containers[idx].contains(lo)
}

// Count returns the total number of values in the bitmap.
func (rb *Bitmap) Count() int {
	rb.repairIfDirty()

	count := 0
	for i := range rb.containers {
		count += rb.containers[i].cardinality()
	}
	return count
}

// IsEmpty returns true when the bitmap contains no values.
func (rb *Bitmap) IsEmpty() bool {
	return len(rb.containers) == 0
}

// Clear clears the bitmap, releasing every container.
func (rb *Bitmap) Clear() {
	rb.index = rb.index[:0]
	rb.containers = rb.containers[:0]
	rb.dirty = false
}

// Min returns the smallest value in the bitmap, or false when empty.
func (rb *Bitmap) Min() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}

	lo, _ := rb.containers[0].minimum()
	return uint32(rb.index[0])<<16 | uint32(lo), true
}

// Max returns the largest value in the bitmap, or false when empty.
func (rb *Bitmap) Max() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}

	last := len(rb.containers) - 1
	hi, _ := rb.containers[last].maximum()
	return uint32(rb.index[last])<<16 | uint32(hi), true
}

// ToSlice returns every value of the bitmap in ascending order.
func (rb *Bitmap) ToSlice() []uint32 {
	rb.repairIfDirty()

	out := make([]uint32, 0, rb.Count())
	rb.Range(func(x uint32) bool {
		out = append(out, x)
		return true
	})
	return out
}

// Clone clones the bitmap into the destination, allocating one when nil. The
// copy is cheap: containers are shared copy-on-write, the first mutation on
// either side clones the affected container transparently. Because sharing is
// recorded on the source's containers, Clone counts as a write to the source
// and must not run concurrently with readers of it.
func (rb *Bitmap) Clone(into *Bitmap) *Bitmap {
	rb.repairIfDirty()
	if into == nil {
		into = New()
	}

	into.Clear()
	for i := range rb.containers {
		rb.containers[i].Shared = true
	}
	into.index = append(into.index[:0], rb.index...)
	into.containers = append(into.containers[:0], rb.containers...)
	return into
}

// Optimize converts every container to its most space-efficient
// representation. This can significantly reduce memory usage, especially
// after bulk loads.
func (rb *Bitmap) Optimize() {
	rb.repairIfDirty()
	for i := range rb.containers {
		rb.containers[i].optimize()
	}
}

// ctrAdd inserts a container at the given position of the key index.
func (rb *Bitmap) ctrAdd(at int, key uint16, c container) {
	rb.index = append(rb.index, 0)
	copy(rb.index[at+1:], rb.index[at:])
	rb.index[at] = key

	rb.containers = append(rb.containers, container{})
	copy(rb.containers[at+1:], rb.containers[at:])
	rb.containers[at] = c
}

// ctrDel removes the container at the given position of the key index.
func (rb *Bitmap) ctrDel(at int) {
	copy(rb.index[at:], rb.index[at+1:])
	rb.index = rb.index[:len(rb.index)-1]

	copy(rb.containers[at:], rb.containers[at+1:])
	rb.containers = rb.containers[:len(rb.containers)-1]
}
