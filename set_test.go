package countryset

import (
	"encoding/json"
	"testing"

	"github.com/hupe1980/countryset/codec"
	"github.com/hupe1980/countryset/index"
	"github.com/hupe1980/countryset/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t testing.TB) *Catalog {
	t.Helper()
	cat, err := New()
	require.NoError(t, err)
	return cat
}

func mustSet(t testing.TB, cat *Catalog, codes ...string) Set {
	t.Helper()
	s, err := cat.FromCodes(codes...)
	require.NoError(t, err)
	return s
}

func TestSet_Contains(t *testing.T) {
	cat := newTestCatalog(t)
	s := mustSet(t, cat, "US", "FR")

	assert.True(t, s.Contains("US"))
	assert.True(t, s.Contains("fr"))
	assert.False(t, s.Contains("DE"))
	assert.False(t, s.Contains("ZZ_INVALID"))
	assert.False(t, s.Contains(""))
}

func TestSet_Zero(t *testing.T) {
	var s Set

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("US"))
	assert.Empty(t, s.Codes())
	for range s.All() {
		t.Fatal("zero set yielded a code")
	}

	cat := newTestCatalog(t)
	assert.True(t, s.Equal(cat.Empty()))

	u := s.Union(mustSet(t, cat, "US"))
	assert.True(t, u.Contains("US"))

	_, err := s.UnionCodes("US")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestSet_Union(t *testing.T) {
	cat := newTestCatalog(t)
	a := mustSet(t, cat, "US", "FR")
	b := mustSet(t, cat, "FR", "DE")

	u := a.Union(b)
	assert.Equal(t, []string{"FR", "DE", "US"}, u.Codes())
	assert.True(t, u.Equal(b.Union(a)))

	// Operands are untouched.
	assert.Equal(t, []string{"FR", "US"}, a.Codes())
	assert.Equal(t, []string{"FR", "DE"}, b.Codes())

	uc, err := a.UnionCodes("DE", "fr")
	require.NoError(t, err)
	assert.True(t, uc.Equal(u))

	_, err = a.UnionCodes("DE", "XX")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestSet_Difference(t *testing.T) {
	cat := newTestCatalog(t)
	a := mustSet(t, cat, "US", "FR", "JP")
	b := mustSet(t, cat, "FR", "DE")

	assert.Equal(t, []string{"JP", "US"}, a.Difference(b).Codes())
	assert.Equal(t, []string{"DE"}, b.Difference(a).Codes())
	assert.True(t, a.Difference(a).IsEmpty())

	dc, err := a.DifferenceCodes("US", "CA")
	require.NoError(t, err)
	assert.Equal(t, []string{"FR", "JP"}, dc.Codes())

	_, err = a.DifferenceCodes("??")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestSet_Equal(t *testing.T) {
	cat := newTestCatalog(t)

	a := mustSet(t, cat, "US", "FR", "DE")
	b := mustSet(t, cat, "de", "US", "FR", "US")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(mustSet(t, cat, "US")))

	ok, err := a.EqualCodes("FR", "DE", "US")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.EqualCodes("FR")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.EqualCodes("FR", "XX")
	assert.ErrorIs(t, err, ErrUnknownCode)

	assert.True(t, mustSet(t, cat).Equal(mustSet(t, cat)))
}

func TestSet_IsEmpty(t *testing.T) {
	cat := newTestCatalog(t)

	assert.True(t, mustSet(t, cat).IsEmpty())
	assert.True(t, cat.Empty().IsEmpty())
	assert.False(t, mustSet(t, cat, "AF").IsEmpty())

	// Reserved bits make a set non-empty while holding no code.
	reserved := cat.FromChunks(codec.Chunks{0, 0, 0, 1 << 63})
	assert.False(t, reserved.IsEmpty())
	assert.Equal(t, 0, reserved.Len())
	assert.Empty(t, reserved.Codes())
}

func TestSet_Len(t *testing.T) {
	cat := newTestCatalog(t)

	assert.Equal(t, 3, mustSet(t, cat, "US", "FR", "DE", "US").Len())

	full := cat.FromChunks(codec.Chunks{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)})
	assert.Equal(t, len(index.Countries), full.Len())
	assert.Len(t, full.Codes(), len(index.Countries))
}

func TestSet_All(t *testing.T) {
	cat := newTestCatalog(t)
	s := mustSet(t, cat, "ZW", "AF", "US")

	var first, second []string
	for code := range s.All() {
		first = append(first, code)
	}
	for code := range s.All() {
		second = append(second, code)
	}
	assert.Equal(t, []string{"AF", "US", "ZW"}, first)
	assert.Equal(t, first, second)
}

func TestSet_Chunk(t *testing.T) {
	cat := newTestCatalog(t)
	s := mustSet(t, cat, "AF", "US")

	assert.Equal(t, uint64(1), s.Chunk(0))
	assert.Equal(t, uint64(1)<<43, s.Chunk(3))
	assert.Equal(t, codec.Chunks{1, 0, 0, 1 << 43}, s.Chunks())
	assert.Panics(t, func() { s.Chunk(4) })
	assert.Panics(t, func() { s.Chunk(-1) })
}

func TestSet_StringJSON(t *testing.T) {
	cat := newTestCatalog(t)
	s := mustSet(t, cat, "US", "FR")

	assert.Equal(t, "countryset.Set[FR US]", s.String())
	assert.Equal(t, "countryset.Set[]", cat.Empty().String())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["FR","US"]`, string(b))

	b, err = json.Marshal(cat.Empty())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestSet_Algebra(t *testing.T) {
	cat := newTestCatalog(t)
	rng := testutil.NewRNG(7)

	randomSet := func() (Set, map[string]bool) {
		members := make(map[string]bool)
		var codes []string
		for _, c := range index.Countries {
			if rng.Intn(4) == 0 {
				members[c] = true
				codes = append(codes, c)
			}
		}
		return mustSet(t, cat, codes...), members
	}

	for i := 0; i < 50; i++ {
		a, am := randomSet()
		b, bm := randomSet()
		c, _ := randomSet()

		u := a.Union(b)
		d := a.Difference(b)
		for _, code := range index.Countries {
			assert.Equal(t, am[code] || bm[code], u.Contains(code), "union %s", code)
			assert.Equal(t, am[code] && !bm[code], d.Contains(code), "difference %s", code)
		}

		assert.True(t, u.Equal(b.Union(a)))
		assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))))
		assert.Equal(t, len(d.Codes()), d.Len())
	}

	// Difference is not commutative.
	a := mustSet(t, cat, "US")
	b := mustSet(t, cat, "FR")
	assert.False(t, a.Difference(b).Equal(b.Difference(a)))
}
