package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQL(t *testing.T) {
	tests := []struct {
		name     string
		p        Predicate
		ph       Placeholder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Equal",
			p:        Equal("c_b0", 32),
			ph:       Question,
			wantSQL:  "c_b0 = ?",
			wantArgs: []any{int64(32)},
		},
		{
			name:     "BitsSet",
			p:        BitsSet("c_b1", 64),
			ph:       Dollar,
			wantSQL:  "(c_b1 & $1) = $2",
			wantArgs: []any{int64(64), int64(64)},
		},
		{
			name:     "Nested",
			p:        Or(And(Equal("a", 1), Equal("b", 2)), BitsSet("c", 4)),
			ph:       Dollar,
			wantSQL:  "((a = $1 AND b = $2) OR (c & $3) = $4)",
			wantArgs: []any{int64(1), int64(2), int64(4), int64(4)},
		},
		{
			name:     "TopBit",
			p:        Equal("a", 1<<63),
			ph:       Question,
			wantSQL:  "a = ?",
			wantArgs: []any{int64(math.MinInt64)},
		},
		{
			name:    "MatchAll",
			p:       MatchAll(),
			ph:      Question,
			wantSQL: "1=1",
		},
		{
			name:    "MatchNone",
			p:       Or(),
			ph:      Question,
			wantSQL: "1=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.p.SQL(tt.ph)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSQL_Exact(t *testing.T) {
	b := NewBuilder(testCodec(t), "countries", "shop")
	p, err := b.Exact("US", "FR")
	if !assert.NoError(t, err) {
		return
	}

	sql, args := p.SQL(Question)
	assert.Equal(t, "(shop_countries_b0 = ? AND shop_countries_b1 = ? AND shop_countries_b2 = ? AND shop_countries_b3 = ?)", sql)
	assert.Equal(t, []any{int64(32), int64(64), int64(0), int64(0)}, args)
}
