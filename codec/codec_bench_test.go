package codec

import (
	"testing"

	"github.com/hupe1980/countryset/index"
)

var benchCodes = []string{"US", "FR", "DE", "GB", "JP", "CN", "BR", "IN", "ZA", "AU"}

func BenchmarkCodec_Encode(b *testing.B) {
	c := New(index.MustDefault())
	b.ReportAllocs()

	var sink Chunks
	for b.Loop() {
		out, err := c.Encode(benchCodes)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func BenchmarkCodec_Decode(b *testing.B) {
	c := New(index.MustDefault())
	chunks, err := c.Encode(benchCodes)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	var sink []string
	for b.Loop() {
		sink = c.Decode(chunks)
	}
	_ = sink
}

func BenchmarkCodec_Decode_Full(b *testing.B) {
	c := New(index.MustDefault())
	chunks := Chunks{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	b.ReportAllocs()

	var sink []string
	for b.Loop() {
		sink = c.Decode(chunks)
	}
	_ = sink
}
