package countryset

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/countryset/codec"
	"github.com/hupe1980/countryset/index"
)

// Set is an immutable set of codes stored as chunks.
//
// Set operations never modify their operands; they return new values.
// The zero Set is empty and contains nothing.
type Set struct {
	codec  *codec.ChunkCodec
	chunks codec.Chunks
}

// Contains reports whether code is in the set. Codes unknown to the
// catalog are never contained.
func (s Set) Contains(code string) bool {
	if s.codec == nil {
		return false
	}
	return s.codec.Has(s.chunks, code)
}

// Union returns the codes in s or other.
func (s Set) Union(other Set) Set {
	return Set{codec: s.pick(other), chunks: s.chunks.Or(other.chunks)}
}

// UnionCodes returns s with codes added.
func (s Set) UnionCodes(codes ...string) (Set, error) {
	other, err := s.encode(codes)
	if err != nil {
		return Set{}, err
	}
	return Set{codec: s.codec, chunks: s.chunks.Or(other)}, nil
}

// Difference returns the codes in s that are not in other.
func (s Set) Difference(other Set) Set {
	return Set{codec: s.pick(other), chunks: s.chunks.AndNot(other.chunks)}
}

// DifferenceCodes returns s with codes removed.
func (s Set) DifferenceCodes(codes ...string) (Set, error) {
	other, err := s.encode(codes)
	if err != nil {
		return Set{}, err
	}
	return Set{codec: s.codec, chunks: s.chunks.AndNot(other)}, nil
}

// Equal reports whether s and other hold the same chunks.
func (s Set) Equal(other Set) bool {
	return s.chunks == other.chunks
}

// EqualCodes reports whether s holds exactly codes, in any order.
func (s Set) EqualCodes(codes ...string) (bool, error) {
	other, err := s.encode(codes)
	if err != nil {
		return false, err
	}
	return s.chunks == other, nil
}

// IsEmpty reports whether every chunk is zero.
func (s Set) IsEmpty() bool {
	return s.chunks.IsZero()
}

// Len returns the number of codes in the set. Bits at reserved positions
// are not counted.
func (s Set) Len() int {
	if s.codec == nil {
		return 0
	}
	return s.codec.Count(s.chunks)
}

// All returns an iterator over the codes in position order.
func (s Set) All() iter.Seq[string] {
	if s.codec == nil {
		return func(func(string) bool) {}
	}
	return s.codec.All(s.chunks)
}

// Codes returns the codes in position order.
func (s Set) Codes() []string {
	if s.codec == nil {
		return []string{}
	}
	return s.codec.Decode(s.chunks)
}

// Chunks returns the stored form of the set.
func (s Set) Chunks() codec.Chunks {
	return s.chunks
}

// Chunk returns chunk i. It panics if i is out of range.
func (s Set) Chunk(i int) uint64 {
	if i < 0 || i >= index.ChunkCount {
		panic(fmt.Sprintf("countryset: chunk index %d out of range [0, %d)", i, index.ChunkCount))
	}
	return s.chunks[i]
}

// String returns the set as "countryset.Set[FR US]", codes in position order.
func (s Set) String() string {
	return "countryset.Set[" + strings.Join(s.Codes(), " ") + "]"
}

// MarshalJSON encodes the set as an array of codes.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Codes())
}

func (s Set) encode(codes []string) (codec.Chunks, error) {
	if s.codec == nil {
		if len(codes) == 0 {
			return codec.Chunks{}, nil
		}
		return codec.Chunks{}, translateError(&index.UnknownCodeError{Code: codes[0]})
	}
	chunks, err := s.codec.Encode(codes)
	if err != nil {
		return codec.Chunks{}, translateError(err)
	}
	return chunks, nil
}

func (s Set) pick(other Set) *codec.ChunkCodec {
	if s.codec != nil {
		return s.codec
	}
	return other.codec
}
