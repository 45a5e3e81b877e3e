// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// And performs an in-place intersection with the other bitmap(s).
func (rb *Bitmap) And(other *Bitmap, extra ...*Bitmap) {
	rb.repairIfDirty()
	rb.and(other)
	for _, bm := range extra {
		if len(rb.containers) == 0 {
			return
		}
		rb.and(bm)
	}
}

// Or performs an in-place union with the other bitmap(s).
func (rb *Bitmap) Or(other *Bitmap, extra ...*Bitmap) {
	rb.repairIfDirty()
	rb.or(other)
	for _, bm := range extra {
		rb.or(bm)
	}
}

// Xor performs an in-place symmetric difference with the other bitmap(s).
func (rb *Bitmap) Xor(other *Bitmap, extra ...*Bitmap) {
	rb.repairIfDirty()
	rb.xor(other)
	for _, bm := range extra {
		rb.xor(bm)
	}
}

// AndNot performs an in-place difference with the other bitmap(s), removing
// every value present in them.
func (rb *Bitmap) AndNot(other *Bitmap, extra ...*Bitmap) {
	rb.repairIfDirty()
	rb.andNot(other)
	for _, bm := range extra {
		if len(rb.containers) == 0 {
			return
		}
		rb.andNot(bm)
	}
}

// And returns the intersection of two bitmaps as a fresh bitmap.
func And(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.And(b)
	return out
}

// Or returns the union of two bitmaps as a fresh bitmap.
func Or(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.Or(b)
	return out
}

// Xor returns the symmetric difference of two bitmaps as a fresh bitmap.
func Xor(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.Xor(b)
	return out
}

// AndNot returns the difference of two bitmaps as a fresh bitmap.
func AndNot(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.AndNot(b)
	return out
}
