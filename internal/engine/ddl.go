package engine

import (
	"relite/internal/sql"
	"relite/internal/storage"
)

func executeCreateTable(db *storage.Database, stmt *sql.CreateTableStmt) (*Result, error) {
	if err := db.CreateTable(stmt.TableName, stmt.Columns); err != nil {
		return nil, err
	}
	return &Result{Message: "table " + stmt.TableName + " created"}, nil
}

func executeDropTable(db *storage.Database, stmt *sql.DropTableStmt) (*Result, error) {
	if err := db.DropTable(stmt.TableName); err != nil {
		return nil, err
	}
	return &Result{Message: "table " + stmt.TableName + " dropped"}, nil
}
