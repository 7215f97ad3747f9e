package engine

import (
	"fmt"
	"strconv"
	"strings"

	"relite/internal/sql"
)

// Result is what Execute returns for any statement: either a rows result
// (SELECT) or a message result (every other statement), tagged with the
// row count it affected.
type Result struct {
	Columns  []string
	Rows     [][]sql.Value
	Message  string
	Affected int
}

// String renders a rows Result as a fixed-width table, or the bare
// message for a non-rows Result — the same shape QueryResult.__repr__
// produces for the shell and the web demo.
func (r *Result) String() string {
	if r.Message != "" {
		return r.Message
	}
	if len(r.Rows) == 0 {
		return "Empty result set"
	}

	widths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells[i] = make([]string, len(r.Columns))
		for j, v := range row {
			s := cellString(v)
			cells[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		header[i] = padRight(col, widths[i])
	}
	headerLine := strings.Join(header, " | ")
	b.WriteString(headerLine)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(headerLine)))
	b.WriteByte('\n')

	for _, row := range cells {
		padded := make([]string, len(row))
		for i, s := range row {
			padded[i] = padRight(s, widths[i])
		}
		b.WriteString(strings.Join(padded, " | "))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("(%d rows)", len(r.Rows)))
	return b.String()
}

func cellString(v sql.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	return v.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func affectedMessage(verb string, n int) string {
	if n == 1 {
		return verb + " 1 row"
	}
	return verb + " " + strconv.Itoa(n) + " rows"
}
