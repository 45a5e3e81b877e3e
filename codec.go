// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"unsafe"

	"github.com/kelindar/bitmap"
)

// Portable format, all integers little-endian:
//
//	u16 version
//	u32 container count
//	per container, in ascending key order:
//	  u16 key, u8 type
//	  array:  u16 count, count × u16 values
//	  bitset: fixed 8192-byte word vector
//	  run:    u16 run count, run count × (u16 start, u16 length-1)
//
// Run lengths are stored minus one so that a full bucket fits in 16 bits.
const codecVersion = 1

var isLittleEndian = binary.LittleEndian.Uint16([]byte{1, 0}) == 1

// SerializedSizeInBytes returns the exact number of bytes WriteTo will write,
// computed without serializing.
func (rb *Bitmap) SerializedSizeInBytes() int {
	rb.repairIfDirty()

	size := 6 // version + container count
	for i := range rb.containers {
		c := &rb.containers[i]
		size += 3 // key + type
		switch c.Type {
		case typeArray:
			size += 2 + 2*len(c.Data)
		case typeBitmap:
			size += bmpSizeBytes
		case typeRun:
			size += 2 + 2*len(c.Data)
		}
	}
	return size
}

// ToBytes converts the bitmap to a byte slice
func (rb *Bitmap) ToBytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, rb.SerializedSizeInBytes()))
	if _, err := rb.WriteTo(buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteTo writes the bitmap to a writer
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	rb.repairIfDirty()
	var n int64

	if err := binary.Write(w, binary.LittleEndian, uint16(codecVersion)); err != nil {
		return n, err
	}
	n += 2

	if err := binary.Write(w, binary.LittleEndian, uint32(len(rb.containers))); err != nil {
		return n, err
	}
	n += 4

	var scratch []uint16
	for i := range rb.containers {
		c := &rb.containers[i]
		if err := binary.Write(w, binary.LittleEndian, rb.index[i]); err != nil {
			return n, err
		}
		if err := binary.Write(w, binary.LittleEndian, c.Type); err != nil {
			return n, err
		}
		n += 3

		var payload []uint16
		switch c.Type {
		case typeArray:
			if err := binary.Write(w, binary.LittleEndian, uint16(len(c.Data))); err != nil {
				return n, err
			}
			n += 2
			payload = c.Data

		case typeBitmap:
			payload = c.Data[:bmpSizeWords]

		case typeRun:
			if err := binary.Write(w, binary.LittleEndian, uint16(len(c.Data)/2)); err != nil {
				return n, err
			}
			n += 2

			// Rewrite (start, end) pairs as (start, length-1)
			scratch = append(scratch[:0], c.Data...)
			for j := 0; j+1 < len(scratch); j += 2 {
				scratch[j+1] -= scratch[j]
			}
			payload = scratch
		}

		if len(payload) > 0 {
			if err := writeUint16s(w, isLittleEndian, payload); err != nil {
				return n, err
			}
			n += int64(len(payload)) * 2
		}
	}
	return n, nil
}

// ReadFrom reads the bitmap from a reader. The stream is assumed trusted and
// well-formed; use FromBytesSafe for untrusted input.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return n, err
	}
	n += 2
	if version != codecVersion {
		return n, fmt.Errorf("%w: version %d", ErrVersion, version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return n, err
	}
	n += 4

	for i := uint32(0); i < count; i++ {
		var key uint16
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return n, err
		}

		var typ ctype
		if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
			return n, err
		}
		n += 3

		var words int
		switch typ {
		case typeArray, typeRun:
			var declared uint16
			if err := binary.Read(r, binary.LittleEndian, &declared); err != nil {
				return n, err
			}
			n += 2
			words = int(declared)
			if typ == typeRun {
				words *= 2
			}
		case typeBitmap:
			words = bmpSizeWords
		default:
			return n, fmt.Errorf("%w: container type %d", ErrCorrupted, typ)
		}

		payload, err := readUint16s(r, isLittleEndian, words)
		if err != nil {
			return n, err
		}
		n += int64(words) * 2

		rb.ctrAdd(len(rb.containers), key, makeContainer(typ, payload))
	}
	return n, nil
}

// makeContainer rebuilds a container from its decoded wire payload,
// recovering the cardinality and, for runs, the in-memory (start, end) form.
func makeContainer(typ ctype, payload []uint16) container {
	c := container{Type: typ, Data: payload}
	switch typ {
	case typeArray:
		c.Size = uint32(len(payload))

	case typeBitmap:
		for _, v := range payload {
			c.Size += uint32(bits.OnesCount16(v))
		}

	case typeRun:
		for i := 0; i+1 < len(payload); i += 2 {
			c.Size += uint32(payload[i+1]) + 1
			payload[i+1] += payload[i]
		}
	}
	return c
}

// FromBytes creates a bitmap from a trusted byte buffer, panicking on a
// malformed stream.
func FromBytes(buffer []byte) *Bitmap {
	rb := New()
	if _, err := rb.ReadFrom(bytes.NewReader(buffer)); err != nil && err != io.EOF {
		panic(err)
	}
	return rb
}

// ReadFrom reads a bitmap from an io.Reader
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	if _, err := rb.ReadFrom(r); err != nil && err != io.EOF {
		return nil, err
	}
	return rb, nil
}

// FromBytesSafe creates a bitmap from an untrusted byte buffer. Every length
// is validated against the buffer before any offset is trusted: a truncated
// or inconsistent buffer yields an explicit error and never a partial bitmap.
func FromBytesSafe(buf []byte) (*Bitmap, error) {
	at := 0
	need := func(n int) bool {
		if len(buf)-at < n {
			return false
		}
		return true
	}

	if !need(6) {
		return nil, fmt.Errorf("%w: header", ErrCorrupted)
	}
	if version := binary.LittleEndian.Uint16(buf[at:]); version != codecVersion {
		return nil, fmt.Errorf("%w: version %d", ErrVersion, version)
	}
	count := binary.LittleEndian.Uint32(buf[at+2:])
	at += 6

	rb := New()
	prevKey := -1
	for i := uint32(0); i < count; i++ {
		if !need(3) {
			return nil, fmt.Errorf("%w: container %d header", ErrCorrupted, i)
		}
		key := binary.LittleEndian.Uint16(buf[at:])
		typ := ctype(buf[at+2])
		at += 3

		if int(key) <= prevKey {
			return nil, fmt.Errorf("%w: key %d out of order", ErrCorrupted, key)
		}
		prevKey = int(key)

		var c container
		var err error
		switch typ {
		case typeArray:
			c, err = decodeArray(buf, &at)
		case typeBitmap:
			c, err = decodeBitset(buf, &at)
		case typeRun:
			c, err = decodeRuns(buf, &at)
		default:
			err = fmt.Errorf("%w: container type %d", ErrCorrupted, typ)
		}
		if err != nil {
			return nil, err
		}

		rb.ctrAdd(len(rb.containers), key, c)
	}

	if at != len(buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupted, len(buf)-at)
	}
	return rb, nil
}

func decodeArray(buf []byte, at *int) (container, error) {
	if len(buf)-*at < 2 {
		return container{}, fmt.Errorf("%w: array header", ErrCorrupted)
	}
	n := int(binary.LittleEndian.Uint16(buf[*at:]))
	*at += 2

	switch {
	case n == 0:
		return container{}, fmt.Errorf("%w: empty array container", ErrCorrupted)
	case len(buf)-*at < 2*n:
		return container{}, fmt.Errorf("%w: array payload", ErrCorrupted)
	}

	data := make([]uint16, n)
	for i := range data {
		data[i] = binary.LittleEndian.Uint16(buf[*at+2*i:])
		if i > 0 && data[i] <= data[i-1] {
			return container{}, fmt.Errorf("%w: array values out of order", ErrCorrupted)
		}
	}
	*at += 2 * n

	c := container{Type: typeArray, Size: uint32(n), Data: data}
	if c.Size > arrMinSize {
		c.arrToBmp()
	}
	return c, nil
}

func decodeBitset(buf []byte, at *int) (container, error) {
	if len(buf)-*at < bmpSizeBytes {
		return container{}, fmt.Errorf("%w: bitset payload", ErrCorrupted)
	}

	data := asUint16s(make(bitmap.Bitmap, bmpSizeWords/4))
	c := container{Type: typeBitmap, Data: data}
	for i := range data {
		data[i] = binary.LittleEndian.Uint16(buf[*at+2*i:])
		c.Size += uint32(bits.OnesCount16(data[i]))
	}
	*at += bmpSizeBytes

	if c.Size == 0 {
		return container{}, fmt.Errorf("%w: empty bitset container", ErrCorrupted)
	}
	return c, nil
}

func decodeRuns(buf []byte, at *int) (container, error) {
	if len(buf)-*at < 2 {
		return container{}, fmt.Errorf("%w: run header", ErrCorrupted)
	}
	n := int(binary.LittleEndian.Uint16(buf[*at:]))
	*at += 2

	switch {
	case n == 0:
		return container{}, fmt.Errorf("%w: empty run container", ErrCorrupted)
	case len(buf)-*at < 4*n:
		return container{}, fmt.Errorf("%w: run payload", ErrCorrupted)
	}

	c := container{Type: typeRun, Data: make([]uint16, 2*n)}
	prevEnd := -2
	for i := 0; i < n; i++ {
		start := binary.LittleEndian.Uint16(buf[*at+4*i:])
		length := binary.LittleEndian.Uint16(buf[*at+4*i+2:])
		end := uint32(start) + uint32(length)

		// Runs must be sorted, non-overlapping and non-adjacent
		if end > 65535 || int(start) <= prevEnd+1 {
			return container{}, fmt.Errorf("%w: malformed run sequence", ErrCorrupted)
		}
		prevEnd = int(end)

		c.Data[2*i] = start
		c.Data[2*i+1] = uint16(end)
		c.Size += uint32(length) + 1
	}
	*at += 4 * n
	return c, nil
}

// writeUint16s writes a slice of uint16s to a writer, viewing it as raw bytes
// when the machine is little endian.
func writeUint16s(w io.Writer, isLittleEndian bool, data []uint16) error {
	switch isLittleEndian {
	case true:
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
		_, err := w.Write(buf)
		return err
	default:
		return binary.Write(w, binary.LittleEndian, data)
	}
}

// readUint16s reads a slice of uint16s from a reader, decoding in place when
// the machine is little endian.
func readUint16s(r io.Reader, isLittleEndian bool, count int) ([]uint16, error) {
	if count == 0 {
		return nil, nil
	}

	switch isLittleEndian {
	case true:
		out := make([]uint16, count)
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), count*2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return out, nil
	default:
		out := make([]uint16, count)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}
