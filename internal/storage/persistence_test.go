package storage

import (
	"os"
	"path/filepath"
	"testing"

	"relite/internal/sql"
)

func TestSaveTableWritesViaTempThenRename(t *testing.T) {
	dir := t.TempDir()
	tbl := newTable(dir, "t", []sql.Column{{Name: "id", Type: sql.TypeInteger}})
	if _, err := tbl.Insert(map[string]sql.Value{"id": sql.IntValue(1)}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "t")); err != nil {
		t.Fatalf("table document not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "t.tmp")); !os.IsNotExist(err) {
		t.Fatal("temp file should not survive a successful save")
	}
}

func TestLoadTableRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "t"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := loadTable(dir, "t")
	se, ok := err.(*StorageError)
	if !ok || se.Kind != Corrupt {
		t.Fatalf("got %v, want a Corrupt StorageError", err)
	}
}

func TestLoadTableRejectsValueIncompatibleWithDeclaredType(t *testing.T) {
	dir := t.TempDir()
	doc := `{"schema":[{"name":"id","type":"INTEGER","primary_key":false,"unique":false,"not_null":false}],"rows":{"1":{"id":"not-a-number"}}}`
	if err := os.WriteFile(filepath.Join(dir, "t"), []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := loadTable(dir, "t")
	se, ok := err.(*StorageError)
	if !ok || se.Kind != Corrupt {
		t.Fatalf("got %v, want a Corrupt StorageError", err)
	}
}

func TestRoundTripPreservesEveryValueKind(t *testing.T) {
	dir := t.TempDir()
	cols := []sql.Column{
		{Name: "i", Type: sql.TypeInteger},
		{Name: "f", Type: sql.TypeFloat},
		{Name: "s", Type: sql.TypeText},
		{Name: "b", Type: sql.TypeBoolean},
		{Name: "n", Type: sql.TypeText},
	}
	tbl := newTable(dir, "t", cols)
	if _, err := tbl.Insert(map[string]sql.Value{
		"i": sql.IntValue(42),
		"f": sql.FloatValue(3.5),
		"s": sql.TextValue("hello"),
		"b": sql.BoolValue(true),
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	reloaded, err := loadTable(dir, "t")
	if err != nil {
		t.Fatalf("loadTable: %v", err)
	}
	row, ok := reloaded.Row(1)
	if !ok {
		t.Fatal("row 1 missing after reload")
	}
	if row["i"].I != 42 || row["f"].F != 3.5 || row["s"].S != "hello" || row["b"].B != true || !row["n"].IsNull() {
		t.Fatalf("got %+v", row)
	}
}
