package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

func executeInsert(db *storage.Database, stmt *sql.InsertStmt) (*Result, error) {
	tbl, ok := db.Table(stmt.TableName)
	if !ok {
		return nil, planErrorf("unknown table %q", stmt.TableName)
	}

	columns := stmt.Columns
	if columns == nil {
		declared := tbl.Columns()
		columns = make([]string, len(declared))
		for i, c := range declared {
			columns[i] = c.Name
		}
	}
	if len(columns) != len(stmt.Values) {
		return nil, planErrorf("value count %d does not match column count %d", len(stmt.Values), len(columns))
	}

	values := make(map[string]sql.Value, len(columns))
	for i, col := range columns {
		values[col] = stmt.Values[i]
	}

	if _, err := tbl.Insert(values); err != nil {
		return nil, err
	}
	return &Result{Message: affectedMessage("inserted", 1), Affected: 1}, nil
}
