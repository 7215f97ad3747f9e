package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

// binding is one resolved table reference in a query's FROM/JOIN clause.
type binding struct {
	alias string
	table *storage.Table
}

// tuple holds one matched row per binding, index-aligned with the
// bindings slice. An entry is nil for a binding not yet joined.
type tuple []sql.Row

func cloneTuple(t tuple) tuple {
	out := make(tuple, len(t))
	copy(out, t)
	return out
}

func buildBindings(db *storage.Database, stmt *sql.SelectStmt) ([]binding, error) {
	refs := append([]sql.TableRef{stmt.From}, joinTableRefs(stmt.Joins)...)
	bindings := make([]binding, 0, len(refs))
	for _, ref := range refs {
		tbl, ok := db.Table(ref.Name)
		if !ok {
			return nil, planErrorf("unknown table %q", ref.Name)
		}
		alias := ref.Alias
		if alias == "" {
			alias = ref.Name
		}
		bindings = append(bindings, binding{alias: alias, table: tbl})
	}
	return bindings, nil
}

func joinTableRefs(joins []sql.JoinClause) []sql.TableRef {
	refs := make([]sql.TableRef, len(joins))
	for i, j := range joins {
		refs[i] = j.Table
	}
	return refs
}

// resolveRef finds the single binding that owns ref, applying the
// qualified/unqualified/ambiguous rules of spec.md §4.5.
func resolveRef(ref *sql.ColumnRefExpr, bindings []binding) (int, error) {
	if ref.Table != "" {
		for i, b := range bindings {
			if b.alias != ref.Table {
				continue
			}
			if _, ok := b.table.Column(ref.Column); !ok {
				return 0, planErrorf("unknown column %q in %q", ref.Column, b.alias)
			}
			return i, nil
		}
		return 0, planErrorf("unknown table qualifier %q", ref.Table)
	}

	match := -1
	for i, b := range bindings {
		if _, ok := b.table.Column(ref.Column); ok {
			if match != -1 {
				return 0, planErrorf("ambiguous column %q", ref.Column)
			}
			match = i
		}
	}
	if match == -1 {
		return 0, planErrorf("unknown column %q", ref.Column)
	}
	return match, nil
}

// predicateRefs collects every column reference appearing in p.
func predicateRefs(p sql.Predicate) []*sql.ColumnRefExpr {
	var out []*sql.ColumnRefExpr
	var walk func(p sql.Predicate)
	walk = func(p sql.Predicate) {
		switch n := p.(type) {
		case *sql.ComparisonPredicate:
			if r, ok := n.Left.(*sql.ColumnRefExpr); ok {
				out = append(out, r)
			}
			if r, ok := n.Right.(*sql.ColumnRefExpr); ok {
				out = append(out, r)
			}
		case *sql.AndPredicate:
			walk(n.Left)
			walk(n.Right)
		case *sql.OrPredicate:
			walk(n.Left)
			walk(n.Right)
		case *sql.NotPredicate:
			walk(n.Inner)
		}
	}
	walk(p)
	return out
}

// validateScope checks every column reference in the statement resolves
// to exactly one binding, before any row is read.
func validateScope(bindings []binding, stmt *sql.SelectStmt) error {
	for _, j := range stmt.Joins {
		for _, ref := range predicateRefs(j.On) {
			if _, err := resolveRef(ref, bindings); err != nil {
				return err
			}
		}
	}
	for _, ref := range predicateRefs(stmt.Where) {
		if _, err := resolveRef(ref, bindings); err != nil {
			return err
		}
	}
	for _, item := range stmt.Projection {
		if item.Star {
			continue
		}
		ref := &sql.ColumnRefExpr{Table: item.Table, Column: item.Column}
		if _, err := resolveRef(ref, bindings); err != nil {
			return err
		}
	}
	if stmt.OrderBy != nil {
		ref := &sql.ColumnRefExpr{Table: stmt.OrderBy.Table, Column: stmt.OrderBy.Column}
		if _, err := resolveRef(ref, bindings); err != nil {
			return err
		}
	}
	return nil
}

// tupleLookup resolves column references against whatever part of tup is
// bound so far; an unbound or unresolvable reference reports not-found,
// which three-valued evaluation turns into unknown.
func tupleLookup(bindings []binding, tup tuple) sql.Lookup {
	return func(ref *sql.ColumnRefExpr) (sql.Value, bool) {
		idx, err := resolveRef(ref, bindings)
		if err != nil || tup[idx] == nil {
			return sql.Value{}, false
		}
		v, ok := tup[idx][ref.Column]
		return v, ok
	}
}

// evalAgainst resolves a single expr (column ref or literal) against tup.
func evalAgainst(e sql.Expr, lookup sql.Lookup) (sql.Value, bool) {
	switch n := e.(type) {
	case *sql.LiteralExpr:
		return n.Value, true
	case *sql.ColumnRefExpr:
		return lookup(n)
	default:
		return sql.Value{}, false
	}
}

// joinProbe looks for an equality conjunct in on that binds innerAlias's
// column to a value already resolvable from the outer tuple — the "best
// index access on the ON equality" spec.md §4.5 calls for.
func joinProbe(on sql.Predicate, innerAlias string, outerLookup sql.Lookup) (column string, val sql.Value, ok bool) {
	for _, conj := range sql.FlattenAnd(on) {
		if sql.ContainsOr(conj) {
			continue
		}
		cmp, isCmp := conj.(*sql.ComparisonPredicate)
		if !isCmp || cmp.Op != sql.OpEq {
			continue
		}
		if ref, isCol := cmp.Left.(*sql.ColumnRefExpr); isCol && ref.Table == innerAlias {
			if v, ok2 := evalAgainst(cmp.Right, outerLookup); ok2 {
				return ref.Column, v, true
			}
		}
		if ref, isCol := cmp.Right.(*sql.ColumnRefExpr); isCol && ref.Table == innerAlias {
			if v, ok2 := evalAgainst(cmp.Left, outerLookup); ok2 {
				return ref.Column, v, true
			}
		}
	}
	return "", sql.Value{}, false
}

// runJoins performs the left-to-right nested-loop join described in
// spec.md §4.5, starting from driveIDs for bindings[0].
func runJoins(bindings []binding, joins []sql.JoinClause, driveIDs []int64) []tuple {
	var out []tuple
	for _, rid := range driveIDs {
		row, ok := bindings[0].table.Row(rid)
		if !ok {
			continue
		}
		base := make(tuple, len(bindings))
		base[0] = row
		out = append(out, extendJoin(bindings, joins, 0, base)...)
	}
	return out
}

func extendJoin(bindings []binding, joins []sql.JoinClause, depth int, tup tuple) []tuple {
	if depth == len(joins) {
		return []tuple{cloneTuple(tup)}
	}

	join := joins[depth]
	innerIdx := depth + 1
	inner := bindings[innerIdx]
	outerLookup := tupleLookup(bindings, tup)

	var innerIDs []int64
	if col, val, ok := joinProbe(join.On, inner.alias, outerLookup); ok && inner.table.HasIndex(col) {
		innerIDs, _ = inner.table.IndexLookup(col, val)
	} else {
		entries := inner.table.Scan()
		innerIDs = make([]int64, len(entries))
		for i, e := range entries {
			innerIDs[i] = e.ID
		}
	}

	var out []tuple
	for _, rid := range innerIDs {
		row, ok := inner.table.Row(rid)
		if !ok {
			continue
		}
		candidate := cloneTuple(tup)
		candidate[innerIdx] = row
		if !sql.EvalPredicate(join.On, tupleLookup(bindings, candidate)).IsTrue() {
			continue
		}
		out = append(out, extendJoin(bindings, joins, depth+1, candidate)...)
	}
	return out
}
