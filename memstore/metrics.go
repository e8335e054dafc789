package memstore

import (
	"sync/atomic"
	"time"
)

// WriteOp identifies a mutating table operation.
type WriteOp uint8

const (
	OpInsert WriteOp = iota
	OpInsertBatch
	OpUpdate
	OpDelete
)

// String returns the operation name.
func (op WriteOp) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpInsertBatch:
		return "insert_batch"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MetricsCollector receives per-operation measurements from a Table.
// Implement it to forward them to a monitoring system.
type MetricsCollector interface {
	// RecordWrite is called after each write. rows is the number of rows
	// the operation targeted; err is nil if it succeeded.
	RecordWrite(op WriteOp, rows int, duration time.Duration, err error)

	// RecordQuery is called after each indexed query.
	RecordQuery(matches uint64, duration time.Duration)
}

// NoopMetricsCollector discards all measurements.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWrite(WriteOp, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(uint64, time.Duration)              {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	writes      [OpDelete + 1]atomic.Int64
	writeErrors [OpDelete + 1]atomic.Int64
	writeRows   [OpDelete + 1]atomic.Int64

	queries      atomic.Int64
	queryMatches atomic.Int64
	queryNanos   atomic.Int64
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(op WriteOp, rows int, _ time.Duration, err error) {
	if op > OpDelete {
		return
	}
	b.writes[op].Add(1)
	if err != nil {
		b.writeErrors[op].Add(1)
		return
	}
	b.writeRows[op].Add(int64(rows))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(matches uint64, duration time.Duration) {
	b.queries.Add(1)
	b.queryMatches.Add(int64(matches))
	b.queryNanos.Add(duration.Nanoseconds())
}

// WriteStats is a snapshot of one write operation's counters.
type WriteStats struct {
	Count  int64 // Calls
	Errors int64 // Failed calls
	Rows   int64 // Rows written by successful calls
}

// MetricsStats is a snapshot of BasicMetricsCollector state.
type MetricsStats struct {
	Writes        map[WriteOp]WriteStats
	QueryCount    int64
	QueryMatches  int64
	QueryAvgNanos int64
}

// GetStats returns a snapshot of the current counters.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		Writes:       make(map[WriteOp]WriteStats, len(b.writes)),
		QueryCount:   b.queries.Load(),
		QueryMatches: b.queryMatches.Load(),
	}
	for op := range b.writes {
		stats.Writes[WriteOp(op)] = WriteStats{
			Count:  b.writes[op].Load(),
			Errors: b.writeErrors[op].Load(),
			Rows:   b.writeRows[op].Load(),
		}
	}
	if stats.QueryCount > 0 {
		stats.QueryAvgNanos = b.queryNanos.Load() / stats.QueryCount
	}
	return stats
}
