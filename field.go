package countryset

import (
	"github.com/hupe1980/countryset/codec"
	"github.com/hupe1980/countryset/index"
	"github.com/hupe1980/countryset/predicate"
)

// Record is a persisted row as seen by a Field: a bag of named integer slots.
type Record interface {
	Slot(column string) uint64
	SetSlot(column string, v uint64)
}

// MapRecord is a map-backed Record. Missing slots read as zero.
type MapRecord map[string]uint64

// Slot returns the value of column.
func (r MapRecord) Slot(column string) uint64 { return r[column] }

// SetSlot stores v in column.
func (r MapRecord) SetSlot(column string, v uint64) { r[column] = v }

// Field exposes a Set stored across the chunk columns of a record.
//
// Columns are named {prefix}_{name}_b{i}, one per chunk.
type Field struct {
	name    string
	prefix  string
	columns [index.ChunkCount]string
	catalog *Catalog
	logger  *Logger
}

// Field returns the binding for the attribute name under prefix.
func (c *Catalog) Field(name, prefix string) *Field {
	return &Field{
		name:    name,
		prefix:  prefix,
		columns: predicate.ColumnNames(prefix, name),
		catalog: c,
		logger:  c.logger.WithField(name),
	}
}

// Name returns the attribute name.
func (f *Field) Name() string { return f.name }

// Columns returns the chunk column names in chunk order.
func (f *Field) Columns() [index.ChunkCount]string { return f.columns }

// Get reads the chunk columns of rec into a fresh Set.
func (f *Field) Get(rec Record) Set {
	var chunks codec.Chunks
	for i, col := range f.columns {
		chunks[i] = rec.Slot(col)
	}
	return f.catalog.FromChunks(chunks)
}

// Set writes v into the chunk columns of rec.
func (f *Field) Set(rec Record, v Set) {
	f.SetChunks(rec, v.Chunks())
}

// SetChunks writes chunks into the chunk columns of rec.
func (f *Field) SetChunks(rec Record, chunks codec.Chunks) {
	for i, col := range f.columns {
		rec.SetSlot(col, chunks[i])
	}
}

// Int64s returns the chunk columns of rec as signed integers, ready to bind
// to SQL BIGINT columns.
func (f *Field) Int64s(rec Record) [index.ChunkCount]int64 {
	return f.Get(rec).Chunks().Int64s()
}

// SetInt64s writes chunk columns read back from signed storage.
// Bits beyond the chunk width are dropped.
func (f *Field) SetInt64s(rec Record, v [index.ChunkCount]int64) {
	f.SetChunks(rec, f.catalog.codec.Mask(codec.FromInt64s(v)))
}

// SetCodes writes the set holding codes into rec. On error rec is untouched.
func (f *Field) SetCodes(rec Record, codes ...string) error {
	s, err := f.catalog.FromCodes(codes...)
	if err != nil {
		return err
	}
	f.Set(rec, s)
	return nil
}

// Expand rewrites construction attributes before a record is created.
//
// If attrs holds the field name, the value ([]string, Set, codec.Chunks or
// nil) is removed and replaced by one uint64 entry per chunk column. On
// error attrs is untouched.
func (f *Field) Expand(attrs map[string]any) error {
	v, ok := attrs[f.name]
	if !ok {
		return nil
	}

	var chunks codec.Chunks
	switch x := v.(type) {
	case nil:
	case []string:
		s, err := f.catalog.FromCodes(x...)
		if err != nil {
			f.logger.LogExpand(len(x), err)
			return err
		}
		chunks = s.Chunks()
	case Set:
		chunks = x.Chunks()
	case codec.Chunks:
		chunks = f.catalog.codec.Mask(x)
	default:
		err := &ErrInvalidFieldValue{Field: f.name, Value: v}
		f.logger.LogExpand(0, err)
		return err
	}

	delete(attrs, f.name)
	for i, col := range f.columns {
		attrs[col] = chunks[i]
	}

	f.logger.LogExpand(f.catalog.codec.Count(chunks), nil)
	return nil
}

// Predicates returns a predicate builder over the field's columns.
func (f *Field) Predicates() *predicate.Builder {
	return predicate.NewBuilder(f.catalog.codec, f.name, f.prefix)
}
