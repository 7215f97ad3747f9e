package sql

import "testing"

func TestParseCreateTable(t *testing.T) {
	stmt, err := Parse(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, score FLOAT)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ct, ok := stmt.(*CreateTableStmt)
	if !ok {
		t.Fatalf("got %T, want *CreateTableStmt", stmt)
	}
	if ct.TableName != "users" || len(ct.Columns) != 3 {
		t.Fatalf("got %+v", ct)
	}
	id := ct.Columns[0]
	if !id.PrimaryKey || !id.Unique || !id.NotNull || id.Type != TypeInteger {
		t.Fatalf("id column = %+v, want a NOT NULL UNIQUE PRIMARY KEY INTEGER", id)
	}
	if !ct.Columns[1].NotNull {
		t.Fatal("name column should be NOT NULL")
	}
}

func TestParseCreateTableDuplicateColumn(t *testing.T) {
	_, err := Parse(`CREATE TABLE t (a INTEGER, a TEXT)`)
	if err == nil {
		t.Fatal("expected a duplicate column error")
	}
}

func TestParseDropTable(t *testing.T) {
	stmt, err := Parse(`DROP TABLE users`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if dt, ok := stmt.(*DropTableStmt); !ok || dt.TableName != "users" {
		t.Fatalf("got %+v", stmt)
	}
}

func TestParseInsertWithColumnList(t *testing.T) {
	stmt, err := Parse(`INSERT INTO users (id, name) VALUES (1, 'alice')`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ins, ok := stmt.(*InsertStmt)
	if !ok {
		t.Fatalf("got %T, want *InsertStmt", stmt)
	}
	if len(ins.Columns) != 2 || len(ins.Values) != 2 {
		t.Fatalf("got %+v", ins)
	}
	if ins.Values[1].S != "alice" {
		t.Fatalf("got %+v", ins.Values[1])
	}
}

func TestParseInsertWithoutColumnList(t *testing.T) {
	stmt, err := Parse(`INSERT INTO users VALUES (1, 'alice', NULL)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ins := stmt.(*InsertStmt)
	if ins.Columns != nil {
		t.Fatalf("got Columns %+v, want nil", ins.Columns)
	}
	if !ins.Values[2].IsNull() {
		t.Fatalf("got %+v, want NULL", ins.Values[2])
	}
}

func TestParseSelectStarWithWhereOrderLimit(t *testing.T) {
	stmt, err := Parse(`SELECT * FROM users WHERE id > 1 ORDER BY id DESC LIMIT 10`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := stmt.(*SelectStmt)
	if len(sel.Projection) != 1 || !sel.Projection[0].Star {
		t.Fatalf("got %+v, want a single star projection", sel.Projection)
	}
	if sel.Where == nil {
		t.Fatal("expected a WHERE predicate")
	}
	if sel.OrderBy == nil || sel.OrderBy.Column != "id" || !sel.OrderBy.Desc {
		t.Fatalf("got %+v", sel.OrderBy)
	}
	if sel.Limit == nil || *sel.Limit != 10 {
		t.Fatalf("got %+v", sel.Limit)
	}
}

func TestParseSelectWithJoinAndQualifiedColumns(t *testing.T) {
	stmt, err := Parse(`SELECT u.name, o.total FROM users u JOIN orders o ON u.id = o.user_id WHERE o.total > 100`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := stmt.(*SelectStmt)
	if len(sel.Projection) != 2 || sel.Projection[0].Table != "u" || sel.Projection[0].Column != "name" {
		t.Fatalf("got %+v", sel.Projection)
	}
	if sel.From.Name != "users" || sel.From.Alias != "u" {
		t.Fatalf("got %+v", sel.From)
	}
	if len(sel.Joins) != 1 || sel.Joins[0].Table.Name != "orders" || sel.Joins[0].Table.Alias != "o" {
		t.Fatalf("got %+v", sel.Joins)
	}
	on, ok := sel.Joins[0].On.(*ComparisonPredicate)
	if !ok || on.Op != OpEq {
		t.Fatalf("got %+v", sel.Joins[0].On)
	}
}

func TestParseSelectLimitRequiresAnInteger(t *testing.T) {
	if _, err := Parse(`SELECT * FROM t LIMIT 'x'`); err == nil {
		t.Fatal("expected a parse error for a non-integer LIMIT")
	}
}

func TestParsePredicatePrecedence(t *testing.T) {
	stmt, err := Parse(`SELECT * FROM t WHERE a = 1 OR b = 2 AND c = 3`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := stmt.(*SelectStmt)
	or, ok := sel.Where.(*OrPredicate)
	if !ok {
		t.Fatalf("got %T, want *OrPredicate at the top (AND binds tighter than OR)", sel.Where)
	}
	if _, ok := or.Right.(*AndPredicate); !ok {
		t.Fatalf("got %T, want *AndPredicate on the right of OR", or.Right)
	}
}

func TestParsePredicateNotAndParens(t *testing.T) {
	stmt, err := Parse(`SELECT * FROM t WHERE NOT (a = 1 AND b = 2)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := stmt.(*SelectStmt)
	not, ok := sel.Where.(*NotPredicate)
	if !ok {
		t.Fatalf("got %T, want *NotPredicate", sel.Where)
	}
	if _, ok := not.Inner.(*AndPredicate); !ok {
		t.Fatalf("got %T, want *AndPredicate inside NOT", not.Inner)
	}
}

func TestParseUpdate(t *testing.T) {
	stmt, err := Parse(`UPDATE users SET name = 'bob', score = 9.5 WHERE id = 1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	upd := stmt.(*UpdateStmt)
	if len(upd.Assignments) != 2 || upd.Assignments[0].Column != "name" {
		t.Fatalf("got %+v", upd.Assignments)
	}
	if upd.Where == nil {
		t.Fatal("expected a WHERE predicate")
	}
}

func TestParseDelete(t *testing.T) {
	stmt, err := Parse(`DELETE FROM users WHERE id = 1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	del := stmt.(*DeleteStmt)
	if del.TableName != "users" || del.Where == nil {
		t.Fatalf("got %+v", del)
	}
}

func TestParseTrailingGarbageIsRejected(t *testing.T) {
	if _, err := Parse(`SELECT * FROM t; DROP TABLE t`); err == nil {
		t.Fatal("expected a parse error for more than one statement")
	}
}

func TestParseOptionalTrailingSemicolon(t *testing.T) {
	if _, err := Parse(`DROP TABLE t;`); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}
