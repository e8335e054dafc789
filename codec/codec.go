// Package codec converts code lists into fixed-width integer chunks and back.
//
// The chunk layout is the persisted format: ChunkCount unsigned integers of
// the index's chunk width, where position p of the index is bit
// p % width of chunk p / width. Changing the index order or the chunk width
// is therefore a breaking change for stored data.
//
// Decoding is lenient by design of the storage contract: bits beyond the
// chunk width and bits that point at reserved positions are dropped, since
// stored chunks may carry leftovers of an older configuration.
package codec

import (
	"iter"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/countryset/index"
)

// ChunkCodec encodes and decodes chunks against a CodeIndex.
// It holds no mutable state and is safe for concurrent use.
type ChunkCodec struct {
	idx *index.CodeIndex
}

// New returns a codec bound to idx.
func New(idx *index.CodeIndex) *ChunkCodec {
	return &ChunkCodec{idx: idx}
}

// Index returns the underlying code index.
func (c *ChunkCodec) Index() *index.CodeIndex { return c.idx }

// Encode sets the bit of every code. Duplicates are idempotent.
//
// An unknown code fails the whole call with an *index.UnknownCodeError.
func (c *ChunkCodec) Encode(codes []string) (Chunks, error) {
	var out Chunks
	for _, code := range codes {
		pos, err := c.idx.PositionOf(code)
		if err != nil {
			return Chunks{}, err
		}
		chunk, bit := c.idx.Locate(pos)
		out[chunk] |= 1 << bit
	}
	return out, nil
}

// Mask clears the bits beyond the chunk width.
func (c *ChunkCodec) Mask(chunks Chunks) Chunks {
	mask := c.idx.ValidMask()
	for i := range chunks {
		chunks[i] &= mask
	}
	return chunks
}

// Positions returns the set of index positions held by chunks.
// Out-of-width bits and reserved positions are not included.
func (c *ChunkCodec) Positions(chunks Chunks) *bitset.BitSet {
	chunks = c.Mask(chunks)
	width := c.idx.ChunkWidth()

	var ps *bitset.BitSet
	if width == 64 {
		words := make([]uint64, len(chunks))
		copy(words, chunks[:])
		ps = bitset.From(words)
	} else {
		ps = bitset.New(uint(c.idx.Len()))
		for i, w := range chunks {
			for w != 0 {
				ps.Set(uint(i*width + bits.TrailingZeros64(w)))
				w &= w - 1
			}
		}
	}

	c.idx.Intersect(ps)
	return ps
}

// Decode returns the codes held by chunks in ascending position order.
func (c *ChunkCodec) Decode(chunks Chunks) []string {
	ps := c.Positions(chunks)
	out := make([]string, 0, ps.Count())
	for code := range c.each(ps) {
		out = append(out, code)
	}
	return out
}

// All returns an iterator over the codes held by chunks in ascending
// position order. Each call decodes afresh.
func (c *ChunkCodec) All(chunks Chunks) iter.Seq[string] {
	return func(yield func(string) bool) {
		for code := range c.each(c.Positions(chunks)) {
			if !yield(code) {
				return
			}
		}
	}
}

// Count returns the number of codes held by chunks.
func (c *ChunkCodec) Count(chunks Chunks) int {
	return int(c.Positions(chunks).Count())
}

// Has reports whether chunks hold code. Unknown codes are never held.
func (c *ChunkCodec) Has(chunks Chunks, code string) bool {
	pos, err := c.idx.PositionOf(code)
	if err != nil {
		return false
	}
	chunk, bit := c.idx.Locate(pos)
	return chunks[chunk]&(1<<bit) != 0
}

func (c *ChunkCodec) each(ps *bitset.BitSet) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, ok := ps.NextSet(0); ok; i, ok = ps.NextSet(i + 1) {
			code, assigned := c.idx.CodeAt(int(i))
			if !assigned {
				continue
			}
			if !yield(code) {
				return
			}
		}
	}
}
