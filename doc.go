// Package countryset stores sets of country codes as a few fixed-width
// integers, ready to live in the columns of a relational row.
//
// Every code of a frozen, ordered index owns one bit. The bits are split
// into four chunks, one integer column each, so a set of up to 256 codes
// fits into four BIGINT columns and can be filtered in SQL without
// decoding.
//
// # Quick Start
//
//	cat, err := countryset.New()
//	if err != nil {
//	    log.Fatal(err) // ConfigError: the index could not be built
//	}
//
//	eu, _ := cat.FromCodes("DE", "FR", "IT")
//	eu.Contains("fr")       // true, lookups are case-insensitive
//	eu.Contains("nope")     // false, unknown codes are never members
//	eu.Chunks()             // [4]uint64 to persist
//
// # Set Algebra
//
// Sets are immutable values:
//
//	dach, _ := cat.FromCodes("DE", "AT", "CH")
//	both := eu.Union(dach)         // DE FR IT AT CH
//	rest := eu.Difference(dach)    // FR IT
//	rest.Len()                     // 2
//	for code := range both.All() { // position order
//	    fmt.Println(code)
//	}
//
// # Persistence
//
// A Field binds a set to the chunk columns {prefix}_{name}_b0..b3 of a
// record and builds matching filters:
//
//	f := cat.Field("countries", "shop")
//	attrs := map[string]any{"name": "acme", "countries": []string{"US", "CA"}}
//	_ = f.Expand(attrs) // replaces "countries" with the four chunk columns
//
//	p, _ := f.Predicates().ContainsAny("US", "MX")
//	where, args := p.SQL(predicate.Dollar)
//
// # Compatibility
//
// The base list (index.Countries) and the chunk width are part of the
// stored format. Codes may only be added through the extension slots,
// configured with WithExtension or a YAML Config.
//
// # Subpackages
//
//   - index: the frozen code to position mapping
//   - codec: chunk encoding and decoding
//   - predicate: filter trees over chunk columns, with SQL rendering
//   - memstore: an in-memory row table that evaluates predicates with roaring bitmaps
package countryset
