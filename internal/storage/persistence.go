package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"relite/internal/sql"
)

// columnDoc is the on-disk shape of one schema entry (spec.md §6.2).
type columnDoc struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key"`
	Unique     bool   `json:"unique"`
	NotNull    bool   `json:"not_null"`
}

// tableDoc is the full self-describing document one table persists to.
type tableDoc struct {
	Schema []columnDoc                       `json:"schema"`
	Rows   map[string]map[string]interface{} `json:"rows"`
}

func dataTypeName(dt sql.DataType) string { return dt.String() }

func parseDataType(s string) (sql.DataType, bool) {
	switch s {
	case "INTEGER":
		return sql.TypeInteger, true
	case "FLOAT":
		return sql.TypeFloat, true
	case "TEXT":
		return sql.TypeText, true
	case "BOOLEAN":
		return sql.TypeBoolean, true
	default:
		return 0, false
	}
}

// valueToJSON converts v to the Go value goccy/go-json will encode as the
// document's null token, integer literal, decimal literal, quoted string,
// or true/false (spec.md §6.2).
func valueToJSON(v sql.Value) interface{} {
	switch v.Kind {
	case sql.KindNull:
		return nil
	case sql.KindInteger:
		return v.I
	case sql.KindFloat:
		return v.F
	case sql.KindText:
		return v.S
	case sql.KindBoolean:
		return v.B
	default:
		return nil
	}
}

// jsonToValue reconstructs a Value from its decoded JSON form, using the
// column's declared type to resolve the integer/float ambiguity that a
// generic JSON decode otherwise leaves as float64 for every number.
func jsonToValue(raw interface{}, dt sql.DataType) (sql.Value, bool) {
	if raw == nil {
		return sql.Null, true
	}
	switch dt {
	case sql.TypeInteger:
		n, ok := raw.(float64)
		if !ok {
			return sql.Value{}, false
		}
		return sql.IntValue(int64(n)), true
	case sql.TypeFloat:
		n, ok := raw.(float64)
		if !ok {
			return sql.Value{}, false
		}
		return sql.FloatValue(n), true
	case sql.TypeText:
		s, ok := raw.(string)
		if !ok {
			return sql.Value{}, false
		}
		return sql.TextValue(s), true
	case sql.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return sql.Value{}, false
		}
		return sql.BoolValue(b), true
	default:
		return sql.Value{}, false
	}
}

func tablePath(dir, table string) string {
	return filepath.Join(dir, table)
}

// saveTable encodes t's full contents and writes them atomically: the
// document is written to "<table>.tmp", flushed, then renamed over
// "<table>" so a reader never observes a partial write.
func saveTable(dir string, t *Table) error {
	doc := tableDoc{Rows: make(map[string]map[string]interface{}, len(t.rows))}
	for _, col := range t.columns {
		doc.Schema = append(doc.Schema, columnDoc{
			Name:       col.Name,
			Type:       dataTypeName(col.Type),
			PrimaryKey: col.PrimaryKey,
			Unique:     col.Unique,
			NotNull:    col.NotNull,
		})
	}
	for id, row := range t.rows {
		rowMap := make(map[string]interface{}, len(t.columns))
		for _, col := range t.columns {
			rowMap[col.Name] = valueToJSON(row[col.Name])
		}
		doc.Rows[strconv.FormatInt(id, 10)] = rowMap
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StorageError{Kind: IOFailure, Table: t.Name, Err: err}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Kind: IOFailure, Table: t.Name, Err: err}
	}

	path := tablePath(dir, t.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StorageError{Kind: IOFailure, Table: t.Name, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &StorageError{Kind: IOFailure, Table: t.Name, Err: err}
	}
	return nil
}

// loadTable reads name's document from dir and reconstructs the table,
// replaying every row into its column indexes in row-id order and setting
// the next-row-id counter to one past the maximum persisted row id.
func loadTable(dir, name string) (*Table, error) {
	path := tablePath(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Kind: IOFailure, Table: name, Err: err}
	}

	var doc tableDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StorageError{Kind: Corrupt, Table: name, Err: err}
	}

	cols := make([]sql.Column, 0, len(doc.Schema))
	for _, cd := range doc.Schema {
		dt, ok := parseDataType(cd.Type)
		if !ok {
			return nil, &StorageError{Kind: Corrupt, Table: name, Err: fmt.Errorf("unknown column type %q", cd.Type)}
		}
		cols = append(cols, sql.Column{
			Name:       cd.Name,
			Type:       dt,
			PrimaryKey: cd.PrimaryKey,
			Unique:     cd.Unique,
			NotNull:    cd.NotNull,
		})
	}

	t := newTable(dir, name, cols)

	rowIDs := make([]int64, 0, len(doc.Rows))
	for idStr := range doc.Rows {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, &StorageError{Kind: Corrupt, Table: name, Err: fmt.Errorf("invalid row id %q", idStr)}
		}
		rowIDs = append(rowIDs, id)
	}
	sort.Slice(rowIDs, func(i, j int) bool { return rowIDs[i] < rowIDs[j] })

	var maxID int64
	for _, id := range rowIDs {
		rowMap := doc.Rows[strconv.FormatInt(id, 10)]
		row := make(sql.Row, len(cols))
		for _, col := range cols {
			v, ok := jsonToValue(rowMap[col.Name], col.Type)
			if !ok {
				return nil, &StorageError{
					Kind: Corrupt, Table: name,
					Err: fmt.Errorf("column %q has a value incompatible with its declared type", col.Name),
				}
			}
			row[col.Name] = v
		}
		t.rows[id] = row
		t.indexRow(id, row)
		if id > maxID {
			maxID = id
		}
	}
	t.nextRowID = maxID + 1
	return t, nil
}

func dropTableFile(dir, name string) error {
	if err := os.Remove(tablePath(dir, name)); err != nil && !os.IsNotExist(err) {
		return &StorageError{Kind: IOFailure, Table: name, Err: err}
	}
	os.Remove(tablePath(dir, name) + ".tmp")
	return nil
}

func tableDocExists(dir, name string) bool {
	_, err := os.Stat(tablePath(dir, name))
	return err == nil
}

func listTableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Kind: IOFailure, Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".tmp" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
