// Package bitmap implements the validity marker backing zenframe Columns:
// one bit per slot, set iff the slot holds a present value.
package bitmap

import (
	"math/bits"
)

// Bitmap is a fixed-length bit set. It is mutated only during construction
// of the Column that owns it; once the Column is published it is read-only.
type Bitmap struct {
	words []uint64
	n     int
}

// New creates a Bitmap of n bits, all unset
func New(n int) *Bitmap {
	return &Bitmap{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the number of bits in this Bitmap
func (b *Bitmap) Len() int {
	return b.n
}

// Get returns true iff bit i is set
func (b *Bitmap) Get(i int) bool {
	return b.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set sets bit i
func (b *Bitmap) Set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

// Clear unsets bit i
func (b *Bitmap) Clear(i int) {
	b.words[i>>6] &^= 1 << (uint(i) & 63)
}

// Count returns the number of set bits
func (b *Bitmap) Count() int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Clone returns a copy of this Bitmap
func (b *Bitmap) Clone() *Bitmap {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &Bitmap{words: words, n: b.n}
}

// Equals returns true iff both Bitmaps have the same length and bits
func (b *Bitmap) Equals(other *Bitmap) bool {
	if other == nil || b.n != other.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Bytes returns a little-endian serialization of the bit words, for
// snapshotting
func (b *Bitmap) Bytes() []byte {
	out := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(w >> (8 * uint(j)))
		}
	}
	return out
}

// FromBytes reconstructs a Bitmap of n bits from Bytes output
func FromBytes(data []byte, n int) *Bitmap {
	words := make([]uint64, (n+63)/64)
	for i := range words {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(data[i*8+j]) << (8 * uint(j))
		}
		words[i] = w
	}
	return &Bitmap{words: words, n: n}
}
