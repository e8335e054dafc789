package predicate

import (
	"strconv"
	"strings"

	"github.com/hupe1980/countryset/codec"
)

// Placeholder selects the bind parameter syntax of SQL.
type Placeholder uint8

const (
	// Question renders "?" (SQLite, MySQL).
	Question Placeholder = iota
	// Dollar renders "$1", "$2", ... (PostgreSQL).
	Dollar
)

// SQL renders p as a WHERE clause fragment and its bind arguments.
//
// Chunk literals are bound as int64 so full 64-bit chunks fit signed BIGINT
// columns. Column names are written verbatim.
func (p Predicate) SQL(ph Placeholder) (string, []any) {
	w := &sqlWriter{ph: ph}
	w.write(p)
	return w.sb.String(), w.args
}

type sqlWriter struct {
	sb   strings.Builder
	args []any
	ph   Placeholder
}

func (w *sqlWriter) bind(v uint64) {
	w.args = append(w.args, codec.ToSigned(v))
	if w.ph == Dollar {
		w.sb.WriteByte('$')
		w.sb.WriteString(strconv.Itoa(len(w.args)))
		return
	}
	w.sb.WriteByte('?')
}

func (w *sqlWriter) write(p Predicate) {
	switch p.Operator {
	case OpAnd, OpOr:
		if len(p.Children) == 0 {
			if p.Operator == OpAnd {
				w.sb.WriteString("1=1")
			} else {
				w.sb.WriteString("1=0")
			}
			return
		}
		w.sb.WriteByte('(')
		for i, c := range p.Children {
			if i > 0 {
				w.sb.WriteByte(' ')
				w.sb.WriteString(p.Operator.String())
				w.sb.WriteByte(' ')
			}
			w.write(c)
		}
		w.sb.WriteByte(')')
	case OpEqual:
		w.sb.WriteString(p.Column)
		w.sb.WriteString(" = ")
		w.bind(p.Value)
	case OpBitsSet:
		w.sb.WriteByte('(')
		w.sb.WriteString(p.Column)
		w.sb.WriteString(" & ")
		w.bind(p.Value)
		w.sb.WriteString(") = ")
		w.bind(p.Value)
	default:
		w.sb.WriteString("1=0")
	}
}
