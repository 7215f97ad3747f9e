package sql

import "fmt"

// ParseError reports an unexpected token or a premature end of input.
type ParseError struct {
	Pos      int
	Found    string
	Expected string
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("parse error at offset %d: unexpected %s", e.Pos, e.Found)
	}
	return fmt.Sprintf("parse error at offset %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}
