package predicate

import (
	"fmt"

	"github.com/hupe1980/countryset/codec"
	"github.com/hupe1980/countryset/index"
)

// ColumnName returns the storage column of chunk i.
func ColumnName(prefix, field string, i int) string {
	return fmt.Sprintf("%s_%s_b%d", prefix, field, i)
}

// ColumnNames returns the storage columns of every chunk.
func ColumnNames(prefix, field string) [index.ChunkCount]string {
	var out [index.ChunkCount]string
	for i := range out {
		out[i] = ColumnName(prefix, field, i)
	}
	return out
}

// Builder creates predicates for one field.
type Builder struct {
	codec   *codec.ChunkCodec
	columns [index.ChunkCount]string
}

// NewBuilder returns a Builder for the columns of field under prefix.
func NewBuilder(c *codec.ChunkCodec, field, prefix string) *Builder {
	return &Builder{
		codec:   c,
		columns: ColumnNames(prefix, field),
	}
}

// Columns returns the chunk columns the builder refers to.
func (b *Builder) Columns() [index.ChunkCount]string { return b.columns }

// Exact matches rows whose stored set equals codes.
func (b *Builder) Exact(codes ...string) (Predicate, error) {
	chunks, err := b.codec.Encode(codes)
	if err != nil {
		return Predicate{}, err
	}
	return b.ExactChunks(chunks), nil
}

// ExactChunks matches rows whose chunk columns equal chunks.
func (b *Builder) ExactChunks(chunks codec.Chunks) Predicate {
	children := make([]Predicate, len(chunks))
	for i, v := range chunks {
		children[i] = Equal(b.columns[i], v)
	}
	return And(children...)
}

// IsEmpty matches rows with no stored code.
func (b *Builder) IsEmpty() Predicate {
	return b.ExactChunks(codec.Chunks{})
}

// ContainsAll matches rows that store every code in codes.
// With no codes it matches every row.
func (b *Builder) ContainsAll(codes ...string) (Predicate, error) {
	chunks, err := b.codec.Encode(codes)
	if err != nil {
		return Predicate{}, err
	}
	return b.ContainsAllChunks(chunks), nil
}

// ContainsAllChunks matches rows whose chunk columns have every bit of chunks set.
func (b *Builder) ContainsAllChunks(chunks codec.Chunks) Predicate {
	var children []Predicate
	for i, v := range chunks {
		if v == 0 {
			continue
		}
		children = append(children, BitsSet(b.columns[i], v))
	}
	return And(children...)
}

// ContainsAny matches rows that store at least one code in codes.
// With no codes it matches every row.
func (b *Builder) ContainsAny(codes ...string) (Predicate, error) {
	if len(codes) == 0 {
		return MatchAll(), nil
	}

	children := make([]Predicate, 0, len(codes))
	for _, code := range codes {
		p, err := b.ContainsAll(code)
		if err != nil {
			return Predicate{}, err
		}
		children = append(children, p)
	}
	return Or(children...), nil
}
