package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

func executeDelete(db *storage.Database, stmt *sql.DeleteStmt) (*Result, error) {
	tbl, ok := db.Table(stmt.TableName)
	if !ok {
		return nil, planErrorf("unknown table %q", stmt.TableName)
	}
	rowIDs := matchingRowIDs(tbl, stmt.TableName, stmt.Where)
	n, err := tbl.Delete(rowIDs)
	if err != nil {
		return nil, err
	}
	return &Result{Message: affectedMessage("deleted", n), Affected: n}, nil
}
