// Package testutil provides seeded random data for countryset tests and
// benchmarks.
//
// # Code Lists
//
//	rng := testutil.NewRNG(42)
//	codes := rng.Codes(index.Countries, 5)        // up to 5 uniform picks
//	skewed := rng.ZipfCodes(index.Countries, 5, 1.5) // popular codes first
//
// # Rows
//
//	rows := rng.Rows(100, "countries", index.Countries, 4, 0.2)
package testutil
