package index

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	// ChunkCount is the fixed number of chunks a code set is split into.
	ChunkCount = 4

	// DefaultChunkWidth is the number of bits stored per chunk.
	DefaultChunkWidth = 64

	// MaxChunkWidth is the widest chunk a uint64 can hold.
	MaxChunkWidth = 64
)

// Options configures Build.
type Options struct {
	// ChunkWidth is the number of bits per chunk (1..MaxChunkWidth).
	ChunkWidth int
}

// DefaultOptions are the options used by Build when no option functions are given.
var DefaultOptions = Options{
	ChunkWidth: DefaultChunkWidth,
}

// CodeIndex is the immutable mapping between codes and bit positions.
//
// It is safe for concurrent use: no field is written after Build returns.
type CodeIndex struct {
	codes     []string // "" marks a reserved slot
	positions map[string]int
	width     int
	mask      uint64
	assigned  *bitset.BitSet
}

// Build creates a CodeIndex from the base list followed by the extension list.
//
// Extension entries may be empty strings, which reserve a position without
// assigning a code. The combined length must equal ChunkCount * ChunkWidth.
// Codes are stored upper-cased.
func Build(base []string, extension []string, optFns ...func(o *Options)) (*CodeIndex, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.ChunkWidth < 1 || opts.ChunkWidth > MaxChunkWidth {
		return nil, &ConfigError{Reason: fmt.Sprintf("chunk width %d out of range [1, %d]", opts.ChunkWidth, MaxChunkWidth)}
	}

	capacity := ChunkCount * opts.ChunkWidth
	if actual := len(base) + len(extension); actual != capacity {
		return nil, &ConfigError{Expected: capacity, Actual: actual}
	}

	idx := &CodeIndex{
		codes:     make([]string, capacity),
		positions: make(map[string]int, capacity),
		width:     opts.ChunkWidth,
		mask:      chunkMask(opts.ChunkWidth),
		assigned:  bitset.New(uint(capacity)),
	}

	for i, code := range base {
		if code == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("empty base code at position %d", i)}
		}
		if err := idx.assign(i, code); err != nil {
			return nil, err
		}
	}

	for i, code := range extension {
		if code == "" {
			continue
		}
		if err := idx.assign(len(base)+i, code); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *CodeIndex) assign(pos int, code string) error {
	code = strings.ToUpper(code)
	if prev, ok := idx.positions[code]; ok {
		return &ConfigError{Reason: fmt.Sprintf("duplicate code %q at positions %d and %d", code, prev, pos)}
	}
	idx.codes[pos] = code
	idx.positions[code] = pos
	idx.assigned.Set(uint(pos))
	return nil
}

// Default builds the index from Countries with every extension slot reserved.
func Default() (*CodeIndex, error) {
	return Build(Countries, make([]string, ReservedSlots(DefaultChunkWidth)))
}

// MustDefault is like Default but panics on error.
func MustDefault() *CodeIndex {
	idx, err := Default()
	if err != nil {
		panic(err)
	}
	return idx
}

// ReservedSlots returns the extension length required for the given chunk width.
// It is negative when Countries does not fit.
func ReservedSlots(width int) int {
	return ChunkCount*width - len(Countries)
}

// PositionOf returns the position of code. The lookup is case-insensitive.
func (idx *CodeIndex) PositionOf(code string) (int, error) {
	pos, ok := idx.positions[strings.ToUpper(code)]
	if !ok {
		return 0, &UnknownCodeError{Code: code}
	}
	return pos, nil
}

// Has reports whether code is assigned a position.
func (idx *CodeIndex) Has(code string) bool {
	_, ok := idx.positions[strings.ToUpper(code)]
	return ok
}

// CodeAt returns the code stored at pos. It returns false for reserved slots
// and positions outside the index.
func (idx *CodeIndex) CodeAt(pos int) (string, bool) {
	if pos < 0 || pos >= len(idx.codes) {
		return "", false
	}
	code := idx.codes[pos]
	return code, code != ""
}

// Locate splits a position into its chunk and bit numbers.
func (idx *CodeIndex) Locate(pos int) (chunk, bit int) {
	return pos / idx.width, pos % idx.width
}

// Len returns the total number of positions, reserved slots included.
func (idx *CodeIndex) Len() int { return len(idx.codes) }

// AssignedCount returns the number of positions that hold a code.
func (idx *CodeIndex) AssignedCount() int { return len(idx.positions) }

// ChunkWidth returns the number of bits per chunk.
func (idx *CodeIndex) ChunkWidth() int { return idx.width }

// ValidMask returns the mask of bits a chunk may carry.
func (idx *CodeIndex) ValidMask() uint64 { return idx.mask }

// Codes returns a copy of the positional code list. Reserved slots are "".
func (idx *CodeIndex) Codes() []string {
	out := make([]string, len(idx.codes))
	copy(out, idx.codes)
	return out
}

// Intersect removes every reserved or out-of-range position from positions in place.
func (idx *CodeIndex) Intersect(positions *bitset.BitSet) {
	positions.InPlaceIntersection(idx.assigned)
}

func chunkMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
