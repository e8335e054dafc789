// Package index provides the frozen code index that maps country codes to
// dense bit positions.
//
// The index is the compatibility boundary of the whole module: a position
// assigned to a code is persisted in every stored chunk, so the base list
// must never be reordered. New codes can only be introduced through the
// extension slots that pad the base list to the full capacity.
//
// # Layout
//
// Positions are split into ChunkCount chunks of a configured width:
//
//	position p  ->  chunk p / width, bit p % width
//
// With the default width of 64 the capacity is 256 positions, of which the
// first 249 are taken by Countries.
//
// # Example
//
//	idx, err := index.Build(index.Countries, []string{"XK", "", "", "", "", "", ""})
//	if err != nil {
//	    // ConfigError: the extension does not pad to the full capacity.
//	}
//	pos, _ := idx.PositionOf("us")
//	code, ok := idx.CodeAt(pos) // "US", true
package index
