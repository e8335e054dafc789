package memstore

import (
	"context"
	"errors"
	"maps"
	"math/bits"
	"runtime"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/countryset"
	"github.com/hupe1980/countryset/codec"
	"golang.org/x/sync/errgroup"
)

// ErrRowNotFound is returned for IDs that are not in the table.
var ErrRowNotFound = errors.New("memstore: row not found")

// Options configures a Table.
type Options struct {
	// Logger receives debug output for writes and queries. Nil disables logging.
	Logger *countryset.Logger

	// Metrics receives per-operation measurements. Nil disables collection.
	Metrics MetricsCollector
}

// Row is a copy of a stored row.
type Row struct {
	ID    uint32
	Slots countryset.MapRecord
	Attrs map[string]any
}

// Table is an in-memory row table with a bitmap index over slot columns.
//
// Architecture:
//   - Primary storage: map[uint32]Row (slots and attributes by row ID)
//   - Inverted index: column -> bit -> *roaring.Bitmap of row IDs
//
// It is safe for concurrent use.
type Table struct {
	mu sync.RWMutex

	fields  []*countryset.Field
	columns map[string]struct{}

	rows   map[uint32]Row
	nextID uint32

	// all holds every row ID; it is the universe for Equal and match-all.
	all      *roaring.Bitmap
	postings map[string]*[64]*roaring.Bitmap

	logger  *countryset.Logger
	metrics MetricsCollector
}

// New creates a table whose slot columns are the columns of fields.
func New(fields []*countryset.Field, optFns ...func(o *Options)) *Table {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = countryset.NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	t := &Table{
		fields:   fields,
		columns:  make(map[string]struct{}),
		rows:     make(map[uint32]Row),
		all:      roaring.New(),
		postings: make(map[string]*[64]*roaring.Bitmap),
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	for _, f := range fields {
		for _, col := range f.Columns() {
			t.columns[col] = struct{}{}
		}
	}
	return t
}

// Insert stores a new row built from attrs and returns its ID.
//
// Field values in attrs are expanded into their chunk columns first, as
// countryset.Field.Expand does. attrs itself is not modified.
func (t *Table) Insert(attrs map[string]any) (_ uint32, err error) {
	start := time.Now()
	defer func() { t.metrics.RecordWrite(OpInsert, 1, time.Since(start), err) }()

	row, err := t.newRow(attrs)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	row.ID = t.nextID
	t.nextID++
	t.rows[row.ID] = row
	t.addToIndexLocked(row)

	t.logger.Debug("row inserted", "id", row.ID, "slots", len(row.Slots))
	return row.ID, nil
}

// InsertBatch stores rows built from each element of attrs and returns
// their IDs in input order. Rows are expanded in parallel; if any row fails
// to expand, nothing is inserted.
func (t *Table) InsertBatch(ctx context.Context, attrs []map[string]any) (_ []uint32, err error) {
	start := time.Now()
	defer func() { t.metrics.RecordWrite(OpInsertBatch, len(attrs), time.Since(start), err) }()

	rows := make([]Row, len(attrs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, a := range attrs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := t.newRow(a)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]uint32, len(rows))
	for i, row := range rows {
		row.ID = t.nextID
		t.nextID++
		t.rows[row.ID] = row
		t.addToIndexLocked(row)
		ids[i] = row.ID
	}

	t.logger.Debug("rows inserted", "count", len(ids))
	return ids, nil
}

func (t *Table) newRow(attrs map[string]any) (Row, error) {
	expanded := maps.Clone(attrs)
	if expanded == nil {
		expanded = make(map[string]any)
	}
	for _, f := range t.fields {
		if err := f.Expand(expanded); err != nil {
			return Row{}, err
		}
	}

	row := Row{
		Slots: make(countryset.MapRecord),
		Attrs: make(map[string]any),
	}
	for k, v := range expanded {
		if _, ok := t.columns[k]; !ok {
			row.Attrs[k] = v
			continue
		}
		u, ok := slotValue(v)
		if !ok {
			return Row{}, &countryset.ErrInvalidFieldValue{Field: k, Value: v}
		}
		row.Slots[k] = u
	}
	return row, nil
}

// slotValue converts a stored column value to a chunk. Signed values are
// read bit for bit, as written by codec.Chunks.Int64s.
func slotValue(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case int64:
		return codec.FromSigned(x), true
	case int:
		return codec.FromSigned(int64(x)), true
	case int32:
		return codec.FromSigned(int64(x)), true
	case int16:
		return codec.FromSigned(int64(x)), true
	case int8:
		return codec.FromSigned(int64(x)), true
	default:
		return 0, false
	}
}

// Get returns a copy of the row with the given ID.
func (t *Table) Get(id uint32) (Row, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return Row{}, ErrRowNotFound
	}
	return copyRow(row), nil
}

// Update applies fn to the slots of a row and reindexes it.
// If fn fails, the row is left unchanged.
func (t *Table) Update(id uint32, fn func(rec countryset.Record) error) (err error) {
	start := time.Now()
	defer func() { t.metrics.RecordWrite(OpUpdate, 1, time.Since(start), err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.rows[id]
	if !ok {
		return ErrRowNotFound
	}

	row := copyRow(old)
	if err = fn(row.Slots); err != nil {
		return err
	}

	t.removeFromIndexLocked(old)
	t.rows[id] = row
	t.addToIndexLocked(row)

	t.logger.Debug("row updated", "id", id)
	return nil
}

// Delete removes a row.
func (t *Table) Delete(id uint32) (err error) {
	start := time.Now()
	defer func() { t.metrics.RecordWrite(OpDelete, 1, time.Since(start), err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return ErrRowNotFound
	}
	t.removeFromIndexLocked(row)
	delete(t.rows, id)

	t.logger.Debug("row deleted", "id", id)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// addToIndexLocked adds the slots of row to the inverted index.
// Caller must hold t.mu.Lock().
func (t *Table) addToIndexLocked(row Row) {
	t.all.Add(row.ID)
	for col, v := range row.Slots {
		if v == 0 {
			continue
		}
		lists, ok := t.postings[col]
		if !ok {
			lists = new([64]*roaring.Bitmap)
			t.postings[col] = lists
		}
		for v != 0 {
			b := bits.TrailingZeros64(v)
			if lists[b] == nil {
				lists[b] = roaring.New()
			}
			lists[b].Add(row.ID)
			v &= v - 1
		}
	}
}

// removeFromIndexLocked removes the slots of row from the inverted index.
// Caller must hold t.mu.Lock().
func (t *Table) removeFromIndexLocked(row Row) {
	t.all.Remove(row.ID)
	for col, v := range row.Slots {
		lists, ok := t.postings[col]
		if !ok {
			continue
		}
		for v != 0 {
			b := bits.TrailingZeros64(v)
			if bm := lists[b]; bm != nil {
				bm.Remove(row.ID)
				// Clean up empty bitmaps
				if bm.IsEmpty() {
					lists[b] = nil
				}
			}
			v &= v - 1
		}
	}
}

func copyRow(row Row) Row {
	return Row{
		ID:    row.ID,
		Slots: maps.Clone(row.Slots),
		Attrs: maps.Clone(row.Attrs),
	}
}
