package roaring

import (
	"fmt"
	"io"
	"unsafe"
)

// Frozen format: a dump of the internal memory layout allowing a bitmap to be
// reinterpreted in place, without copying, from an externally-owned buffer.
// The buffer must be exactly FrozenSizeInBytes long and 32-byte aligned.
//
//	offset  0: u32 magic, u16 version, u16 reserved
//	offset  8: u32 container count, u32 reserved
//	offset 16: u64 total size in bytes, 8 reserved bytes
//	offset 32: payload offsets (count × u32), payload lengths (count × u32),
//	           keys (count × u16), cardinalities-1 (count × u16),
//	           types (count × u8)
//	then:      container payloads, each at a 32-byte aligned offset
//
// Unlike the portable format this layout is an opaque contract between writer
// and reader of the same engine version: table and payload words are stored
// in native byte order.
const (
	frozenMagic      = 0x31465242 // "RBF1"
	frozenVersion    = 1
	frozenHeaderSize = 32
	frozenAlign      = 32
)

func align32(n int) int {
	return (n + frozenAlign - 1) &^ (frozenAlign - 1)
}

func payloadBytes(c *container) int {
	if c.Type == typeBitmap {
		return bmpSizeBytes
	}
	return 2 * len(c.Data)
}

// FrozenSizeInBytes returns the exact buffer length Freeze requires, computed
// without serializing.
func (rb *Bitmap) FrozenSizeInBytes() int {
	rb.repairIfDirty()

	n := len(rb.containers)
	if n == 0 {
		return frozenHeaderSize
	}

	pos := frozenHeaderSize + 13*n
	for i := range rb.containers {
		pos = align32(pos) + payloadBytes(&rb.containers[i])
	}
	return pos
}

// Freeze writes the frozen form of the bitmap into the caller-provided
// buffer. The buffer must be exactly FrozenSizeInBytes long and 32-byte
// aligned, so that FreezeView can later reinterpret it in place.
func (rb *Bitmap) Freeze(buf []byte) error {
	rb.repairIfDirty()
	switch {
	case len(buf) != rb.FrozenSizeInBytes():
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferSize, rb.FrozenSizeInBytes(), len(buf))
	case uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%frozenAlign != 0:
		return ErrBufferAlignment
	}

	clear(buf)
	n := len(rb.containers)
	putUint32(buf[0:], frozenMagic)
	putUint16(buf[4:], frozenVersion)
	putUint32(buf[8:], uint32(n))
	putUint64(buf[16:], uint64(len(buf)))
	if n == 0 {
		return nil
	}

	offsets := u32view(buf[frozenHeaderSize:], n)
	lengths := u32view(buf[frozenHeaderSize+4*n:], n)
	keys := u16view(buf[frozenHeaderSize+8*n:], n)
	cards := u16view(buf[frozenHeaderSize+10*n:], n)
	types := buf[frozenHeaderSize+12*n : frozenHeaderSize+13*n]

	pos := frozenHeaderSize + 13*n
	for i := range rb.containers {
		c := &rb.containers[i]
		pos = align32(pos)

		size := payloadBytes(c)
		offsets[i] = uint32(pos)
		lengths[i] = uint32(size)
		keys[i] = rb.index[i]
		cards[i] = uint16(c.Size - 1)
		types[i] = byte(c.Type)

		copy(buf[pos:pos+size], asBytes(c.Data))
		pos += size
	}
	return nil
}

// View is an immutable, non-owning reinterpretation of a frozen buffer as a
// read-only bitmap. The buffer must outlive the view and must not be
// modified while the view exists; the view itself never writes to it.
type View struct {
	rb Bitmap
}

// FreezeView reinterprets a buffer produced by Freeze as a read-only bitmap
// without copying any container data. The buffer must be 32-byte aligned and
// exactly the frozen size; invalid input fails explicitly.
func FreezeView(buf []byte) (*View, error) {
	switch {
	case len(buf) < frozenHeaderSize:
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrBufferSize, frozenHeaderSize)
	case uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%frozenAlign != 0:
		return nil, ErrBufferAlignment
	case getUint32(buf[0:]) != frozenMagic:
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupted)
	case getUint16(buf[4:]) != frozenVersion:
		return nil, fmt.Errorf("%w: version %d", ErrVersion, getUint16(buf[4:]))
	case getUint64(buf[16:]) != uint64(len(buf)):
		return nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrBufferSize, getUint64(buf[16:]), len(buf))
	}

	n := int(getUint32(buf[8:]))
	if n == 0 {
		return &View{}, nil
	}
	if frozenHeaderSize+13*n > len(buf) {
		return nil, fmt.Errorf("%w: container tables", ErrCorrupted)
	}

	offsets := u32view(buf[frozenHeaderSize:], n)
	lengths := u32view(buf[frozenHeaderSize+4*n:], n)
	keys := u16view(buf[frozenHeaderSize+8*n:], n)
	cards := u16view(buf[frozenHeaderSize+10*n:], n)
	types := buf[frozenHeaderSize+12*n : frozenHeaderSize+13*n]

	v := &View{rb: Bitmap{
		index:      make([]uint16, 0, n),
		containers: make([]container, 0, n),
	}}

	prevKey := -1
	for i := 0; i < n; i++ {
		off, size := int(offsets[i]), int(lengths[i])
		card := uint32(cards[i]) + 1
		switch {
		case int(keys[i]) <= prevKey:
			return nil, fmt.Errorf("%w: key %d out of order", ErrCorrupted, keys[i])
		case off%frozenAlign != 0 || off < frozenHeaderSize+13*n || off+size > len(buf):
			return nil, fmt.Errorf("%w: container %d payload bounds", ErrCorrupted, i)
		}
		prevKey = int(keys[i])

		c := container{
			Type:   ctype(types[i]),
			Shared: true,
			Size:   card,
			Data:   asPayload(buf[off : off+size]),
		}
		if err := checkFrozen(&c, size); err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}

		v.rb.index = append(v.rb.index, keys[i])
		v.rb.containers = append(v.rb.containers, c)
	}
	return v, nil
}

// checkFrozen verifies that a frozen container's payload is structurally
// consistent with its declared type and cardinality.
func checkFrozen(c *container, size int) error {
	switch c.Type {
	case typeArray:
		if size != 2*int(c.Size) {
			return fmt.Errorf("%w: array payload size", ErrCorrupted)
		}
		for i := 1; i < len(c.Data); i++ {
			if c.Data[i] <= c.Data[i-1] {
				return fmt.Errorf("%w: array values out of order", ErrCorrupted)
			}
		}

	case typeBitmap:
		if size != bmpSizeBytes {
			return fmt.Errorf("%w: bitset payload size", ErrCorrupted)
		}

	case typeRun:
		if size == 0 || size%4 != 0 {
			return fmt.Errorf("%w: run payload size", ErrCorrupted)
		}
		total, prevEnd := uint32(0), -2
		for _, r := range c.runs() {
			if r[1] < r[0] || int(r[0]) <= prevEnd+1 {
				return fmt.Errorf("%w: malformed run sequence", ErrCorrupted)
			}
			prevEnd = int(r[1])
			total += uint32(r[1]-r[0]) + 1
		}
		if total != c.Size {
			return fmt.Errorf("%w: run cardinality mismatch", ErrCorrupted)
		}

	default:
		return fmt.Errorf("%w: container type %d", ErrCorrupted, c.Type)
	}
	return nil
}

// Contains checks whether a value is contained in the view.
func (v *View) Contains(x uint32) bool { return v.rb.Contains(x) }

// Count returns the total number of values in the view.
func (v *View) Count() int { return v.rb.Count() }

// CountRange returns the number of values within [min, max).
func (v *View) CountRange(min, max uint64) int { return v.rb.CountRange(min, max) }

// Rank returns the number of values less than or equal to x.
func (v *View) Rank(x uint32) int { return v.rb.Rank(x) }

// Select returns the idx-th smallest value, the inverse of Rank.
func (v *View) Select(idx uint32) (uint32, bool) { return v.rb.Select(idx) }

// Min returns the smallest value in the view, or false when empty.
func (v *View) Min() (uint32, bool) { return v.rb.Min() }

// Max returns the largest value in the view, or false when empty.
func (v *View) Max() (uint32, bool) { return v.rb.Max() }

// IsEmpty returns true when the view contains no values.
func (v *View) IsEmpty() bool { return v.rb.IsEmpty() }

// Range calls the given function for each value in ascending order.
func (v *View) Range(fn func(x uint32) bool) { v.rb.Range(fn) }

// Iterator returns a cursor positioned at the smallest value of the view.
func (v *View) Iterator() *Iterator { return v.rb.Iterator() }

// ToSlice returns every value of the view in ascending order.
func (v *View) ToSlice() []uint32 { return v.rb.ToSlice() }

// Equals reports whether the view and the bitmap contain the same values.
func (v *View) Equals(other *Bitmap) bool { return v.rb.Equals(other) }

// SerializedSizeInBytes returns the portable serialized size of the view.
func (v *View) SerializedSizeInBytes() int { return v.rb.SerializedSizeInBytes() }

// WriteTo writes the view in the portable format.
func (v *View) WriteTo(w io.Writer) (int64, error) { return v.rb.WriteTo(w) }

// ToBytes serializes the view into the portable format.
func (v *View) ToBytes() []byte { return v.rb.ToBytes() }

// Unfreeze clones the view into a mutable bitmap. The copy is cheap: the
// containers stay shared with the frozen buffer until first mutated, at which
// point the affected container is cloned and the buffer is left untouched.
func (v *View) Unfreeze(into *Bitmap) *Bitmap { return v.rb.Clone(into) }

func putUint16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func getUint16(b []byte) uint16    { return uint16(b[0]) | uint16(b[1])<<8 }

func putUint32(b []byte, v uint32) {
	putUint16(b, uint16(v))
	putUint16(b[2:], uint16(v>>16))
}

func getUint32(b []byte) uint32 {
	return uint32(getUint16(b)) | uint32(getUint16(b[2:]))<<16
}

func putUint64(b []byte, v uint64) {
	putUint32(b, uint32(v))
	putUint32(b[4:], uint32(v>>32))
}

func getUint64(b []byte) uint64 {
	return uint64(getUint32(b)) | uint64(getUint32(b[4:]))<<32
}

func u16view(b []byte, n int) []uint16 {
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), n)
}

func u32view(b []byte, n int) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), n)
}
