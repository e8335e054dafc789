package memstore

import (
	"math/bits"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/countryset/predicate"
)

// Query returns the IDs of rows matching p in ascending order.
//
// The predicate is compiled against the inverted index:
//   - BitsSet(col, m): intersection of the posting lists of every bit of m
//   - Equal(col, v): BitsSet(col, v) minus the rows having any other bit set
//   - And/Or: intersection/union of the children
func (t *Table) Query(p predicate.Predicate) []uint32 {
	start := time.Now()

	t.mu.RLock()
	defer t.mu.RUnlock()

	result := t.compileLocked(p)
	t.metrics.RecordQuery(result.GetCardinality(), time.Since(start))
	t.logger.Debug("query evaluated",
		"predicate", p.String(),
		"matches", result.GetCardinality(),
	)
	return result.ToArray()
}

// Count returns the number of rows matching p.
func (t *Table) Count(p predicate.Predicate) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.compileLocked(p).GetCardinality()
}

// ScanQuery evaluates p by scanning every row.
// This is slower than Query and exists to cross-check it.
func (t *Table) ScanQuery(p predicate.Predicate) []uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := roaring.New()
	for id, row := range t.rows {
		if p.Matches(row.Slots) {
			result.Add(id)
		}
	}
	return result.ToArray()
}

// compileLocked returns a fresh bitmap of the rows matching p.
// Caller must hold t.mu.RLock().
func (t *Table) compileLocked(p predicate.Predicate) *roaring.Bitmap {
	switch p.Operator {
	case predicate.OpAnd:
		result := t.all.Clone()
		for _, c := range p.Children {
			if result.IsEmpty() {
				break
			}
			result.And(t.compileLocked(c))
		}
		return result
	case predicate.OpOr:
		parts := make([]*roaring.Bitmap, 0, len(p.Children))
		for _, c := range p.Children {
			parts = append(parts, t.compileLocked(c))
		}
		return roaring.FastOr(parts...)
	case predicate.OpBitsSet:
		return t.bitsSetLocked(p.Column, p.Value)
	case predicate.OpEqual:
		result := t.bitsSetLocked(p.Column, p.Value)
		if result.IsEmpty() {
			return result
		}
		lists := t.postings[p.Column]
		if lists == nil {
			return result
		}
		for b, bm := range lists {
			if bm == nil || p.Value&(1<<b) != 0 {
				continue
			}
			result.AndNot(bm)
		}
		return result
	default:
		return roaring.New()
	}
}

// bitsSetLocked returns the rows whose column has every bit of mask set.
func (t *Table) bitsSetLocked(column string, mask uint64) *roaring.Bitmap {
	result := t.all.Clone()
	if mask == 0 {
		return result
	}

	lists := t.postings[column]
	if lists == nil {
		return roaring.New()
	}
	for mask != 0 {
		bm := lists[bits.TrailingZeros64(mask)]
		if bm == nil {
			return roaring.New()
		}
		result.And(bm)
		if result.IsEmpty() {
			return result
		}
		mask &= mask - 1
	}
	return result
}

// Stats returns statistics about the table index.
type Stats struct {
	RowCount         int    // Total rows
	ColumnCount      int    // Indexed slot columns
	BitmapCount      int    // Total number of posting lists
	TotalCardinality uint64 // Sum of all posting list cardinalities
	MemoryBytes      uint64 // Estimated posting list memory
}

// GetStats returns statistics about the table index.
func (t *Table) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := Stats{
		RowCount:    len(t.rows),
		ColumnCount: len(t.postings),
	}
	for _, lists := range t.postings {
		for _, bm := range lists {
			if bm == nil {
				continue
			}
			stats.BitmapCount++
			stats.TotalCardinality += bm.GetCardinality()
			stats.MemoryBytes += bm.GetSizeInBytes()
		}
	}
	return stats
}
