package codec

import (
	"fmt"

	"github.com/hupe1980/countryset/index"
)

// Chunks is the persisted form of a code set: one unsigned integer per chunk.
type Chunks [index.ChunkCount]uint64

// IsZero reports whether no bit is set.
func (c Chunks) IsZero() bool {
	return c == Chunks{}
}

// Or returns the bitwise union of c and o.
func (c Chunks) Or(o Chunks) Chunks {
	for i := range c {
		c[i] |= o[i]
	}
	return c
}

// AndNot returns c with every bit of o cleared.
func (c Chunks) AndNot(o Chunks) Chunks {
	for i := range c {
		c[i] &^= o[i]
	}
	return c
}

// ToSigned reinterprets one chunk as a signed integer, bit for bit.
//
// SQL BIGINT columns are signed, so a chunk with its top bit set must be
// stored as a negative number.
func ToSigned(v uint64) int64 { return int64(v) }

// FromSigned is the inverse of ToSigned.
func FromSigned(v int64) uint64 { return uint64(v) }

// Int64s applies ToSigned to every chunk.
func (c Chunks) Int64s() [index.ChunkCount]int64 {
	var out [index.ChunkCount]int64
	for i, v := range c {
		out[i] = ToSigned(v)
	}
	return out
}

// FromInt64s is the inverse of Chunks.Int64s.
func FromInt64s(v [index.ChunkCount]int64) Chunks {
	var out Chunks
	for i, x := range v {
		out[i] = FromSigned(x)
	}
	return out
}

// FromSlice copies up to ChunkCount values; missing values are zero.
func FromSlice(v []uint64) Chunks {
	var out Chunks
	copy(out[:], v)
	return out
}

func (c Chunks) String() string {
	return fmt.Sprintf("[%#x %#x %#x %#x]", c[0], c[1], c[2], c[3])
}
