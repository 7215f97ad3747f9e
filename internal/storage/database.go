package storage

import (
	"sort"
	"strings"

	"relite/internal/sql"
)

// Database is the open collection of tables backed by a directory on
// disk. Table names are looked up case-insensitively but their declared
// casing is preserved for display and for the on-disk filename.
type Database struct {
	dir    string
	tables map[string]*Table // keyed by strings.ToUpper(name)
}

// Open reconstructs a Database from every table document found under dir.
// A dir that does not yet exist opens as an empty, writable database.
func Open(dir string) (*Database, error) {
	names, err := listTableFiles(dir)
	if err != nil {
		return nil, err
	}
	db := &Database{dir: dir, tables: make(map[string]*Table, len(names))}
	for _, name := range names {
		t, err := loadTable(dir, name)
		if err != nil {
			return nil, err
		}
		db.tables[strings.ToUpper(name)] = t
	}
	return db, nil
}

// Close releases the Database. Every mutation is already durable by the
// time it returns, so Close has nothing left to flush.
func (db *Database) Close() error { return nil }

// CreateTable registers a new table and persists its (empty) document.
func (db *Database) CreateTable(name string, cols []sql.Column) error {
	key := strings.ToUpper(name)
	if _, exists := db.tables[key]; exists {
		return &StorageError{Kind: AlreadyExists, Table: name}
	}
	t := newTable(db.dir, name, cols)
	if err := t.persist(); err != nil {
		return err
	}
	db.tables[key] = t
	return nil
}

// DropTable removes a table and its persisted document.
func (db *Database) DropTable(name string) error {
	key := strings.ToUpper(name)
	t, ok := db.tables[key]
	if !ok {
		return &StorageError{Kind: NotFound, Table: name}
	}
	if err := t.drop(); err != nil {
		return err
	}
	delete(db.tables, key)
	return nil
}

// Table returns the named table.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[strings.ToUpper(name)]
	return t, ok
}

// ListTables returns every table name in its declared casing, sorted.
func (db *Database) ListTables() []string {
	names := make([]string, 0, len(db.tables))
	for _, t := range db.tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the declared columns of name.
func (db *Database) Schema(name string) ([]sql.Column, bool) {
	t, ok := db.Table(name)
	if !ok {
		return nil, false
	}
	return t.Columns(), true
}
