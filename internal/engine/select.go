package engine

import (
	"sort"

	"relite/internal/sql"
	"relite/internal/storage"
)

func executeSelect(db *storage.Database, stmt *sql.SelectStmt) (*Result, error) {
	bindings, err := buildBindings(db, stmt)
	if err != nil {
		return nil, err
	}
	if err := validateScope(bindings, stmt); err != nil {
		return nil, err
	}

	driveIDs := rowIDsForPath(bindings[0].table, choosePath(bindings[0].alias, bindings[0].table, stmt.Where))
	tuples := runJoins(bindings, stmt.Joins, driveIDs)

	if stmt.Where != nil {
		filtered := tuples[:0]
		for _, tup := range tuples {
			if sql.EvalPredicate(stmt.Where, tupleLookup(bindings, tup)).IsTrue() {
				filtered = append(filtered, tup)
			}
		}
		tuples = filtered
	}

	if stmt.OrderBy != nil {
		orderRef := &sql.ColumnRefExpr{Table: stmt.OrderBy.Table, Column: stmt.OrderBy.Column}
		idx, err := resolveRef(orderRef, bindings)
		if err != nil {
			return nil, err
		}
		col := stmt.OrderBy.Column
		desc := stmt.OrderBy.Desc
		sort.SliceStable(tuples, func(i, j int) bool {
			vi := tuples[i][idx][col]
			vj := tuples[j][idx][col]
			if desc {
				return sql.Less(vj, vi)
			}
			return sql.Less(vi, vj)
		})
	}

	if stmt.Limit != nil && int64(len(tuples)) > *stmt.Limit {
		tuples = tuples[:*stmt.Limit]
	}

	cols := projectionColumns(bindings, stmt.Projection, len(bindings) > 1)
	rows := make([][]sql.Value, len(tuples))
	for i, tup := range tuples {
		rows[i] = projectTuple(bindings, stmt.Projection, tup)
	}

	return &Result{Columns: cols, Rows: rows}, nil
}

// projectionColumns expands `*` into every binding's columns, prefixed
// with the binding's alias once more than one table is in scope.
func projectionColumns(bindings []binding, items []sql.SelectItem, qualify bool) []string {
	var out []string
	for _, item := range items {
		if !item.Star {
			if qualify && item.Table != "" {
				out = append(out, item.Table+"."+item.Column)
			} else {
				out = append(out, item.Column)
			}
			continue
		}
		out = append(out, starColumns(bindings, qualify)...)
	}
	return out
}

func starColumns(bindings []binding, qualify bool) []string {
	var out []string
	for _, b := range bindings {
		for _, c := range b.table.Columns() {
			if qualify {
				out = append(out, b.alias+"."+c.Name)
			} else {
				out = append(out, c.Name)
			}
		}
	}
	return out
}

func projectTuple(bindings []binding, items []sql.SelectItem, tup tuple) []sql.Value {
	var out []sql.Value
	for _, item := range items {
		if !item.Star {
			idx, err := resolveRef(&sql.ColumnRefExpr{Table: item.Table, Column: item.Column}, bindings)
			if err != nil {
				out = append(out, sql.Null)
				continue
			}
			out = append(out, tup[idx][item.Column])
			continue
		}
		for i, b := range bindings {
			for _, c := range b.table.Columns() {
				out = append(out, tup[i][c.Name])
			}
		}
	}
	return out
}
