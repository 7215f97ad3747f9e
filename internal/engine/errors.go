package engine

import "fmt"

// PlanError reports a statement the planner or executor can reject before
// or during execution without it being a parse or constraint failure:
// unknown tables, ambiguous column references, and INSERT value-count
// mismatches all surface here.
type PlanError struct {
	Msg string
}

func (e *PlanError) Error() string { return fmt.Sprintf("plan error: %s", e.Msg) }

func planErrorf(format string, args ...interface{}) error {
	return &PlanError{Msg: fmt.Sprintf(format, args...)}
}
