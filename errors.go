package roaring

import "errors"

var (
	// ErrCorrupted is returned when a serialized buffer is truncated or its
	// contents are inconsistent with the declared layout.
	ErrCorrupted = errors.New("roaring: corrupted or truncated buffer")

	// ErrVersion is returned when a serialized buffer declares a format
	// version this library does not understand.
	ErrVersion = errors.New("roaring: unsupported format version")

	// ErrBufferSize is returned when a frozen buffer does not have exactly
	// the required length.
	ErrBufferSize = errors.New("roaring: buffer size mismatch")

	// ErrBufferAlignment is returned when a frozen buffer is not 32-byte
	// aligned.
	ErrBufferAlignment = errors.New("roaring: buffer must be 32-byte aligned")
)
