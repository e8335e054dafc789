package countryset

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/countryset/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Int64s(t *testing.T) {
	cat, err := New(WithChunkWidth(63))
	require.NoError(t, err)
	f := cat.Field("countries", "shop")
	rec := MapRecord{}

	require.NoError(t, f.SetCodes(rec, "AF", "ZW"))
	signed := f.Int64s(rec)
	assert.Equal(t, int64(1), signed[0])

	other := MapRecord{}
	f.SetInt64s(other, signed)
	assert.Equal(t, rec, other)

	// Negative values carry the top bit, which a 63-bit chunk drops.
	f.SetInt64s(other, [4]int64{-1, 0, 0, 0})
	assert.Equal(t, uint64(1)<<63-1, other["shop_countries_b0"])
}

func TestField_Columns(t *testing.T) {
	cat := newTestCatalog(t)

	f := cat.Field("countries", "shop")
	assert.Equal(t, "countries", f.Name())
	assert.Equal(t, [4]string{
		"shop_countries_b0",
		"shop_countries_b1",
		"shop_countries_b2",
		"shop_countries_b3",
	}, f.Columns())

	assert.Equal(t, "_countries_b0", cat.Field("countries", "").Columns()[0])
}

func TestField_GetSet(t *testing.T) {
	cat := newTestCatalog(t)
	f := cat.Field("countries", "shop")
	rec := MapRecord{}

	assert.True(t, f.Get(rec).IsEmpty())

	f.Set(rec, mustSet(t, cat, "US", "AF"))
	assert.Equal(t, uint64(1), rec["shop_countries_b0"])
	assert.Equal(t, uint64(1)<<43, rec["shop_countries_b3"])
	assert.Len(t, rec, 4)

	got := f.Get(rec)
	assert.Equal(t, []string{"AF", "US"}, got.Codes())

	// Get returns a fresh value; later writes do not leak into it.
	rec["shop_countries_b0"] = 0
	assert.True(t, got.Contains("AF"))
	assert.False(t, f.Get(rec).Contains("AF"))
}

func TestField_SetCodes(t *testing.T) {
	cat := newTestCatalog(t)
	f := cat.Field("countries", "")
	rec := MapRecord{}

	require.NoError(t, f.SetCodes(rec, "FR"))
	assert.Equal(t, []string{"FR"}, f.Get(rec).Codes())

	err := f.SetCodes(rec, "DE", "XX")
	assert.ErrorIs(t, err, ErrUnknownCode)
	assert.Equal(t, []string{"FR"}, f.Get(rec).Codes())

	f.SetChunks(rec, codec.Chunks{})
	assert.True(t, f.Get(rec).IsEmpty())
}

func TestField_Expand(t *testing.T) {
	cat := newTestCatalog(t)
	f := cat.Field("countries", "shop")
	us := mustSet(t, cat, "US")

	tests := []struct {
		name  string
		value any
		want  codec.Chunks
	}{
		{"Codes", []string{"US", "AF"}, codec.Chunks{1, 0, 0, 1 << 43}},
		{"Set", us, us.Chunks()},
		{"Chunks", codec.Chunks{2, 0, 0, 0}, codec.Chunks{2, 0, 0, 0}},
		{"Nil", nil, codec.Chunks{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := map[string]any{"name": "acme", "countries": tt.value}
			require.NoError(t, f.Expand(attrs))

			assert.NotContains(t, attrs, "countries")
			assert.Equal(t, "acme", attrs["name"])
			for i, col := range f.Columns() {
				assert.Equal(t, tt.want[i], attrs[col], col)
			}
		})
	}
}

func TestField_Expand_NoValue(t *testing.T) {
	cat := newTestCatalog(t)
	f := cat.Field("countries", "shop")

	attrs := map[string]any{"name": "acme"}
	require.NoError(t, f.Expand(attrs))
	assert.Equal(t, map[string]any{"name": "acme"}, attrs)
}

func TestField_Expand_Errors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cat, err := New(WithLogger(logger))
	require.NoError(t, err)
	f := cat.Field("countries", "shop")

	attrs := map[string]any{"countries": []string{"US", "XX"}}
	err = f.Expand(attrs)
	assert.ErrorIs(t, err, ErrUnknownCode)
	assert.Contains(t, attrs, "countries")
	assert.NotContains(t, attrs, "shop_countries_b0")
	assert.Contains(t, buf.String(), "field expansion failed")
	assert.Contains(t, buf.String(), "field=countries")

	attrs = map[string]any{"countries": 42}
	err = f.Expand(attrs)
	var ife *ErrInvalidFieldValue
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, "countries", ife.Field)
	assert.Contains(t, err.Error(), "int")
}

func TestField_Predicates(t *testing.T) {
	cat := newTestCatalog(t)
	f := cat.Field("countries", "shop")

	rec := MapRecord{}
	require.NoError(t, f.SetCodes(rec, "US", "FR"))

	anyOf, err := f.Predicates().ContainsAny("US", "DE")
	require.NoError(t, err)
	assert.True(t, anyOf.Matches(rec))

	all, err := f.Predicates().ContainsAll("US", "DE")
	require.NoError(t, err)
	assert.False(t, all.Matches(rec))

	exact, err := f.Predicates().Exact("FR", "US")
	require.NoError(t, err)
	assert.True(t, exact.Matches(rec))

	assert.False(t, f.Predicates().IsEmpty().Matches(rec))
	assert.True(t, f.Predicates().IsEmpty().Matches(MapRecord{}))
}
