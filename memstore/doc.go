// Package memstore provides an in-memory row table for chunked code sets.
//
// A Table plays the part of the persistence layer: rows hold named integer
// slots (the chunk columns of one or more countryset.Field bindings) next to
// arbitrary attributes, and predicate.Predicate trees are answered from an
// inverted index of Roaring Bitmaps, one posting list per (column, bit).
//
// Example:
//
//	cat := countryset.Must(countryset.New())
//	countries := cat.Field("countries", "shop")
//	tbl := memstore.New([]*countryset.Field{countries})
//
//	id, _ := tbl.Insert(map[string]any{"name": "acme", "countries": []string{"US", "CA"}})
//	p, _ := countries.Predicates().ContainsAny("CA")
//	ids := tbl.Query(p) // [id]
package memstore
