package engine

import "testing"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func mustExec(t *testing.T, e *Engine, src string) *Result {
	t.Helper()
	r, err := e.Execute(src)
	if err != nil {
		t.Fatalf("Execute(%q): %v", src, err)
	}
	return r
}

func TestCreateInsertSelectRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INTEGER)")
	mustExec(t, e, "INSERT INTO users (id, name, age) VALUES (1, 'Ada', 30)")
	mustExec(t, e, "INSERT INTO users (id, name, age) VALUES (2, 'Bob', 25)")

	r := mustExec(t, e, "SELECT * FROM users WHERE age > 20 ORDER BY age")
	if len(r.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(r.Rows))
	}
	if r.Rows[0][2].I != 25 {
		t.Fatalf("expected ordered by age ascending, got %+v", r.Rows)
	}
}

func TestUnknownTableIsPlanError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Execute("SELECT * FROM ghosts")
	if _, ok := err.(*PlanError); !ok {
		t.Fatalf("got %v (%T), want *PlanError", err, err)
	}
}

func TestInsertArityMismatchIsPlanError(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE t (a INTEGER, b INTEGER)")
	_, err := e.Execute("INSERT INTO t (a, b) VALUES (1)")
	if _, ok := err.(*PlanError); !ok {
		t.Fatalf("got %v (%T), want *PlanError", err, err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE t (id INTEGER PRIMARY KEY, n INTEGER)")
	mustExec(t, e, "INSERT INTO t (id, n) VALUES (1, 10)")
	mustExec(t, e, "INSERT INTO t (id, n) VALUES (2, 20)")

	r := mustExec(t, e, "UPDATE t SET n = 99 WHERE id = 1")
	if r.Affected != 1 {
		t.Fatalf("got %d affected, want 1", r.Affected)
	}

	sel := mustExec(t, e, "SELECT n FROM t WHERE id = 1")
	if sel.Rows[0][0].I != 99 {
		t.Fatalf("update did not apply: %+v", sel.Rows)
	}

	del := mustExec(t, e, "DELETE FROM t WHERE id = 2")
	if del.Affected != 1 {
		t.Fatalf("got %d affected, want 1", del.Affected)
	}
	sel2 := mustExec(t, e, "SELECT * FROM t")
	if len(sel2.Rows) != 1 {
		t.Fatalf("got %d rows after delete, want 1", len(sel2.Rows))
	}
}

func TestAmbiguousUnqualifiedColumnIsPlanError(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE a (id INTEGER, val INTEGER)")
	mustExec(t, e, "CREATE TABLE b (id INTEGER, val INTEGER)")
	_, err := e.Execute("SELECT val FROM a JOIN b ON a.id = b.id")
	if _, ok := err.(*PlanError); !ok {
		t.Fatalf("got %v (%T), want *PlanError", err, err)
	}
}

func TestEngineListTablesAndSchema(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE b (id INTEGER PRIMARY KEY)")
	mustExec(t, e, "CREATE TABLE a (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")

	names := e.ListTables()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("ListTables = %v, want [a b]", names)
	}

	cols, ok := e.Schema("a")
	if !ok || len(cols) != 2 || cols[1].Name != "name" || !cols[1].NotNull {
		t.Fatalf("Schema(a) = %+v, %v", cols, ok)
	}

	if _, ok := e.Schema("ghosts"); ok {
		t.Fatal("Schema(ghosts) should report false")
	}
}
