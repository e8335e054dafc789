// Package predicate builds storage filters over chunk columns.
//
// A code set stored through a field occupies one integer column per chunk,
// named by ColumnName:
//
//	{prefix}_{field}_b0 .. {prefix}_{field}_b3
//
// The Builder turns a code list into a Predicate tree made of four node
// kinds:
//
//   - And(children...): all children hold (an empty And matches every row)
//   - Or(children...): any child holds (an empty Or matches no row)
//   - Equal(column, v): column = v
//   - BitsSet(column, mask): column & mask = mask
//
// Three query flavours are provided:
//
//   - Exact: the stored set equals the requested set
//   - ContainsAll: every requested code is stored
//   - ContainsAny: at least one requested code is stored
//
// Example:
//
//	b := predicate.NewBuilder(c, "countries", "shop")
//	p, err := b.ContainsAny("US", "CA")
//	if err != nil {
//	    return err
//	}
//	where, args := p.SQL(predicate.Dollar)
//	rows, err := db.QueryContext(ctx, "SELECT id FROM shops WHERE "+where, args...)
//
// The tree can also be evaluated in memory with Predicate.Matches.
package predicate
