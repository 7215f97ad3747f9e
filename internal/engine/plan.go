package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

// accessPath is the single index probe (if any) the planner chose for one
// table reference, per spec.md §4.5.
type accessPath struct {
	indexed bool
	column  string
	eq      *sql.Value
	lo, hi  *sql.Value
	loIncl  bool
	hiIncl  bool
}

// choosePath inspects where's outermost conjunction for an equality or
// range predicate on an indexed column of tbl, qualified (if at all) by
// alias. Disjunctions disable index use on the conjunct containing them;
// a conjunct with no usable predicate just isn't selected.
func choosePath(alias string, tbl *storage.Table, where sql.Predicate) accessPath {
	if where == nil {
		return accessPath{}
	}
	for _, conj := range sql.FlattenAnd(where) {
		if sql.ContainsOr(conj) {
			continue
		}
		cmp, ok := conj.(*sql.ComparisonPredicate)
		if !ok {
			continue
		}
		col, lit, op, ok := splitLiteralComparison(alias, cmp)
		if !ok || !tbl.HasIndex(col) {
			continue
		}
		switch op {
		case sql.OpEq:
			v := lit
			return accessPath{indexed: true, column: col, eq: &v}
		case sql.OpLt:
			v := lit
			return accessPath{indexed: true, column: col, hi: &v, hiIncl: false}
		case sql.OpLe:
			v := lit
			return accessPath{indexed: true, column: col, hi: &v, hiIncl: true}
		case sql.OpGt:
			v := lit
			return accessPath{indexed: true, column: col, lo: &v, loIncl: false}
		case sql.OpGe:
			v := lit
			return accessPath{indexed: true, column: col, lo: &v, loIncl: true}
		}
	}
	return accessPath{}
}

// splitLiteralComparison recognizes "column op literal" or
// "literal op column" where column is unqualified or qualified by alias,
// returning the op as if the column were always on the left.
func splitLiteralComparison(alias string, cmp *sql.ComparisonPredicate) (column string, lit sql.Value, op sql.CompareOp, ok bool) {
	if ref, isCol := cmp.Left.(*sql.ColumnRefExpr); isCol && refMatchesAlias(ref, alias) {
		if l, isLit := cmp.Right.(*sql.LiteralExpr); isLit {
			return ref.Column, l.Value, cmp.Op, true
		}
	}
	if ref, isCol := cmp.Right.(*sql.ColumnRefExpr); isCol && refMatchesAlias(ref, alias) {
		if l, isLit := cmp.Left.(*sql.LiteralExpr); isLit {
			return ref.Column, l.Value, flipOp(cmp.Op), true
		}
	}
	return "", sql.Value{}, 0, false
}

func refMatchesAlias(ref *sql.ColumnRefExpr, alias string) bool {
	return ref.Table == "" || ref.Table == alias
}

func flipOp(op sql.CompareOp) sql.CompareOp {
	switch op {
	case sql.OpLt:
		return sql.OpGt
	case sql.OpLe:
		return sql.OpGe
	case sql.OpGt:
		return sql.OpLt
	case sql.OpGe:
		return sql.OpLe
	default:
		return op
	}
}

// rowIDsForPath executes the chosen access path, falling back to a full,
// row-id-ordered scan when no index probe applies.
func rowIDsForPath(tbl *storage.Table, ap accessPath) []int64 {
	if !ap.indexed {
		entries := tbl.Scan()
		ids := make([]int64, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		return ids
	}
	if ap.eq != nil {
		ids, _ := tbl.IndexLookup(ap.column, *ap.eq)
		return ids
	}
	ids, _ := tbl.IndexRange(ap.column, ap.lo, ap.hi, ap.loIncl, ap.hiIncl)
	return ids
}

// matchingRowIDs is the single-table planning path used by UPDATE and
// DELETE: pick an access path, run it, then re-check the full predicate
// against each candidate row (the probe is an optimization, never the
// sole filter).
func matchingRowIDs(tbl *storage.Table, alias string, where sql.Predicate) []int64 {
	candidates := rowIDsForPath(tbl, choosePath(alias, tbl, where))
	if where == nil {
		return candidates
	}
	var out []int64
	for _, id := range candidates {
		row, ok := tbl.Row(id)
		if !ok {
			continue
		}
		if sql.EvalPredicate(where, singleTableLookup(alias, tbl.Name, row)).IsTrue() {
			out = append(out, id)
		}
	}
	return out
}

func singleTableLookup(alias, tableName string, row sql.Row) sql.Lookup {
	return func(ref *sql.ColumnRefExpr) (sql.Value, bool) {
		if ref.Table != "" && ref.Table != alias && ref.Table != tableName {
			return sql.Value{}, false
		}
		v, ok := row[ref.Column]
		return v, ok
	}
}
