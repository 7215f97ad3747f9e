// Package engine parses and executes SQL statements against a
// relite/internal/storage.Database: planning access paths, running joins
// under three-valued predicate logic, and rendering results.
package engine

import (
	"fmt"

	"relite/internal/sql"
	"relite/internal/storage"
)

// Engine ties a parser to one open database directory.
type Engine struct {
	db *storage.Database
}

// Open opens (or creates) the database directory at dir.
func Open(dir string) (*Engine, error) {
	db, err := storage.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Engine{db: db}, nil
}

// Close releases the underlying database.
func (e *Engine) Close() error {
	return e.db.Close()
}

// ListTables returns every table name in the open database, in its
// declared casing (spec.md §6.1).
func (e *Engine) ListTables() []string {
	return e.db.ListTables()
}

// Schema returns the declared columns of name (spec.md §6.1).
func (e *Engine) Schema(name string) ([]sql.Column, bool) {
	return e.db.Schema(name)
}

// Execute parses and runs one SQL statement.
func (e *Engine) Execute(src string) (*Result, error) {
	stmt, err := sql.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		return executeCreateTable(e.db, s)
	case *sql.DropTableStmt:
		return executeDropTable(e.db, s)
	case *sql.InsertStmt:
		return executeInsert(e.db, s)
	case *sql.SelectStmt:
		return executeSelect(e.db, s)
	case *sql.UpdateStmt:
		return executeUpdate(e.db, s)
	case *sql.DeleteStmt:
		return executeDelete(e.db, s)
	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}
