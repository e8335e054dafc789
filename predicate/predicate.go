package predicate

import (
	"strconv"
	"strings"
)

// Operator identifies the kind of a Predicate node.
type Operator uint8

const (
	// OpAnd is a conjunction of the children.
	OpAnd Operator = iota + 1
	// OpOr is a disjunction of the children.
	OpOr
	// OpEqual compares a column with a literal.
	OpEqual
	// OpBitsSet requires every bit of a literal mask to be set in a column.
	OpBitsSet
)

// String returns the string representation of the Operator.
func (op Operator) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpEqual:
		return "EQUAL"
	case OpBitsSet:
		return "BITS_SET"
	default:
		return "UNKNOWN"
	}
}

// Predicate is a node of a filter expression over chunk columns.
//
// Leaf nodes (OpEqual, OpBitsSet) use Column and Value; branch nodes
// (OpAnd, OpOr) use Children.
type Predicate struct {
	Operator Operator
	Column   string
	Value    uint64
	Children []Predicate
}

// Row supplies column values to Matches.
type Row interface {
	Slot(column string) uint64
}

// And returns the conjunction of children. A single child is returned as is.
func And(children ...Predicate) Predicate {
	if len(children) == 1 {
		return children[0]
	}
	return Predicate{Operator: OpAnd, Children: children}
}

// Or returns the disjunction of children. A single child is returned as is.
func Or(children ...Predicate) Predicate {
	if len(children) == 1 {
		return children[0]
	}
	return Predicate{Operator: OpOr, Children: children}
}

// Equal returns a predicate requiring column == v.
func Equal(column string, v uint64) Predicate {
	return Predicate{Operator: OpEqual, Column: column, Value: v}
}

// BitsSet returns a predicate requiring column & mask == mask.
func BitsSet(column string, mask uint64) Predicate {
	return Predicate{Operator: OpBitsSet, Column: column, Value: mask}
}

// MatchAll returns the predicate that holds for every row.
func MatchAll() Predicate {
	return Predicate{Operator: OpAnd}
}

// IsMatchAll reports whether p is an empty conjunction.
func (p Predicate) IsMatchAll() bool {
	return p.Operator == OpAnd && len(p.Children) == 0
}

// Matches evaluates p against row.
func (p Predicate) Matches(row Row) bool {
	switch p.Operator {
	case OpAnd:
		for _, c := range p.Children {
			if !c.Matches(row) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range p.Children {
			if c.Matches(row) {
				return true
			}
		}
		return false
	case OpEqual:
		return row.Slot(p.Column) == p.Value
	case OpBitsSet:
		return row.Slot(p.Column)&p.Value == p.Value
	default:
		return false
	}
}

// Columns returns the columns referenced by p in order of first appearance.
func (p Predicate) Columns() []string {
	var out []string
	seen := make(map[string]struct{})
	p.walk(func(n Predicate) {
		if n.Column == "" {
			return
		}
		if _, ok := seen[n.Column]; ok {
			return
		}
		seen[n.Column] = struct{}{}
		out = append(out, n.Column)
	})
	return out
}

func (p Predicate) walk(fn func(Predicate)) {
	fn(p)
	for _, c := range p.Children {
		c.walk(fn)
	}
}

// String renders p in a compact, human readable form.
func (p Predicate) String() string {
	var sb strings.Builder
	p.format(&sb)
	return sb.String()
}

func (p Predicate) format(sb *strings.Builder) {
	switch p.Operator {
	case OpAnd, OpOr:
		if len(p.Children) == 0 {
			if p.Operator == OpAnd {
				sb.WriteString("TRUE")
			} else {
				sb.WriteString("FALSE")
			}
			return
		}
		sb.WriteByte('(')
		for i, c := range p.Children {
			if i > 0 {
				sb.WriteByte(' ')
				sb.WriteString(p.Operator.String())
				sb.WriteByte(' ')
			}
			c.format(sb)
		}
		sb.WriteByte(')')
	case OpEqual:
		sb.WriteString(p.Column)
		sb.WriteString(" = ")
		sb.WriteString(strconv.FormatUint(p.Value, 10))
	case OpBitsSet:
		sb.WriteString(p.Column)
		sb.WriteString(" & ")
		sb.WriteString(strconv.FormatUint(p.Value, 10))
		sb.WriteString(" = ")
		sb.WriteString(strconv.FormatUint(p.Value, 10))
	default:
		sb.WriteString("INVALID")
	}
}
