package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG wraps a seeded random source. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Codes returns between 0 and maxCodes uniform picks from pool.
// Picks may repeat.
func (r *RNG) Codes(pool []string, maxCodes int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codesLocked(pool, maxCodes)
}

func (r *RNG) codesLocked(pool []string, maxCodes int) []string {
	if len(pool) == 0 || maxCodes <= 0 {
		return nil
	}
	n := r.rand.Intn(maxCodes + 1)
	out := make([]string, n)
	for i := range out {
		out[i] = pool[r.rand.Intn(len(pool))]
	}
	return out
}

// Zipf returns an index in [0,n) following a Zipf distribution with exponent s.
// s=1.0 gives standard Zipf, s=1.5 a heavy tail.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked samples by inverse transform (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}
	return n - 1
}

// ZipfCodes returns between 0 and maxCodes picks from pool where earlier
// entries are picked far more often, like the few countries most shops
// ship to.
func (r *RNG) ZipfCodes(pool []string, maxCodes int, s float64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(pool) == 0 || maxCodes <= 0 {
		return nil
	}
	n := r.rand.Intn(maxCodes + 1)
	out := make([]string, n)
	for i := range out {
		out[i] = pool[r.zipfLocked(len(pool), s)]
	}
	return out
}

// Rows generates n attribute maps. Each row has an "n" entry holding its
// ordinal and, unless dropped with probability missingRate, a field entry
// holding a code list drawn by Codes.
func (r *RNG) Rows(n int, field string, pool []string, maxCodes int, missingRate float64) []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]map[string]any, n)
	for i := range rows {
		row := map[string]any{"n": i}
		if r.rand.Float64() >= missingRate {
			row[field] = r.codesLocked(pool, maxCodes)
		}
		rows[i] = row
	}
	return rows
}
