package countryset

import (
	"github.com/hupe1980/countryset/codec"
	"github.com/hupe1980/countryset/index"
	"github.com/hupe1980/countryset/predicate"
)

// Catalog is the process-wide, read-only home of a code index.
//
// It is built once at startup and shared by every Set, Field and predicate
// builder derived from it. All methods are safe for concurrent use.
type Catalog struct {
	idx    *index.CodeIndex
	codec  *codec.ChunkCodec
	logger *Logger
}

// New builds a catalog from index.Countries and the configured extension.
//
// It fails with an error matching ErrConfig when the extension does not pad
// the base list to exactly 4 * chunk width codes.
func New(optFns ...Option) (*Catalog, error) {
	opts := applyOptions(optFns)

	if opts.config != nil {
		if err := opts.config.Validate(); err != nil {
			err = translateError(err)
			opts.logger.LogBuild(0, 0, opts.chunkWidth, err)
			return nil, err
		}
	}

	width := index.DefaultChunkWidth
	if opts.chunkWidth != 0 {
		width = opts.chunkWidth
	}

	extension := opts.extension
	if !opts.hasExtension {
		if n := index.ReservedSlots(width); n > 0 {
			extension = make([]string, n)
		}
	}

	idx, err := index.Build(index.Countries, extension, func(o *index.Options) {
		o.ChunkWidth = width
	})
	if err != nil {
		err = translateError(err)
		opts.logger.LogBuild(0, 0, width, err)
		return nil, err
	}

	opts.logger.LogBuild(idx.AssignedCount(), idx.Len()-idx.AssignedCount(), width, nil)

	return &Catalog{
		idx:    idx,
		codec:  codec.New(idx),
		logger: opts.logger,
	}, nil
}

// Must is a helper that wraps a call to New and panics if the error is non-nil.
func Must(c *Catalog, err error) *Catalog {
	if err != nil {
		panic(err)
	}
	return c
}

// Index returns the underlying code index.
func (c *Catalog) Index() *index.CodeIndex { return c.idx }

// Codec returns the chunk codec bound to the catalog.
func (c *Catalog) Codec() *codec.ChunkCodec { return c.codec }

// Logger returns the catalog logger.
func (c *Catalog) Logger() *Logger { return c.logger }

// FromCodes returns the set holding codes.
func (c *Catalog) FromCodes(codes ...string) (Set, error) {
	return c.NewSet(codec.Chunks{}, codes...)
}

// FromChunks returns the set held by stored chunks. Bits beyond the chunk
// width are dropped.
func (c *Catalog) FromChunks(chunks codec.Chunks) Set {
	return Set{codec: c.codec, chunks: c.codec.Mask(chunks)}
}

// NewSet returns the set held by base with codes added.
func (c *Catalog) NewSet(base codec.Chunks, codes ...string) (Set, error) {
	add, err := c.codec.Encode(codes)
	if err != nil {
		return Set{}, translateError(err)
	}
	return Set{codec: c.codec, chunks: c.codec.Mask(base).Or(add)}, nil
}

// Empty returns the empty set.
func (c *Catalog) Empty() Set {
	return Set{codec: c.codec}
}

// Predicates returns a predicate builder for the columns of field under prefix.
func (c *Catalog) Predicates(field, prefix string) *predicate.Builder {
	return predicate.NewBuilder(c.codec, field, prefix)
}
