package roaring

import (
	"unsafe"

	"github.com/kelindar/bitmap"
)

// asBitmap reinterprets container payload as a word-level bitmap. The payload
// of a bitset container is always bmpSizeWords uint16s backed by a single
// allocation, so the cast is valid on every supported platform.
func asBitmap(data []uint16) bitmap.Bitmap {
	if len(data) == 0 {
		return nil
	}

	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/4))
}

// asUint16s reinterprets a word-level bitmap back into container payload form.
func asUint16s(data bitmap.Bitmap) []uint16 {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)*4)
}

// asRuns reinterprets run container payload as (start, end) pairs.
func asRuns(data []uint16) []run {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*run)(unsafe.Pointer(&data[0])), len(data)/2)
}

// asBytes views container payload as raw bytes, used by the frozen codec.
func asBytes(data []uint16) []byte {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
}

// asPayload views a raw byte region as container payload. The region must be
// at least 2-byte aligned, which the frozen layout guarantees.
func asPayload(data []byte) []uint16 {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)/2)
}
