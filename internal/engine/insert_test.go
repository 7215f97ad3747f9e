package engine

import "testing"

func TestInsertWithoutColumnListUsesDeclaredOrder(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)")
	mustExec(t, e, "INSERT INTO t VALUES (1, 'Ada')")

	r := mustExec(t, e, "SELECT * FROM t")
	if r.Rows[0][0].I != 1 || r.Rows[0][1].S != "Ada" {
		t.Fatalf("got %+v", r.Rows[0])
	}
}

func TestInsertConstraintViolationPropagates(t *testing.T) {
	e := newTestEngine(t)
	mustExec(t, e, "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	mustExec(t, e, "INSERT INTO t (id) VALUES (1)")
	_, err := e.Execute("INSERT INTO t (id) VALUES (1)")
	if err == nil {
		t.Fatal("expected duplicate primary key to fail")
	}
}
