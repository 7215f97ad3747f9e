package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

func executeUpdate(db *storage.Database, stmt *sql.UpdateStmt) (*Result, error) {
	tbl, ok := db.Table(stmt.TableName)
	if !ok {
		return nil, planErrorf("unknown table %q", stmt.TableName)
	}
	rowIDs := matchingRowIDs(tbl, stmt.TableName, stmt.Where)
	n, err := tbl.Update(rowIDs, stmt.Assignments)
	if err != nil {
		return nil, err
	}
	return &Result{Message: affectedMessage("updated", n), Affected: n}, nil
}
