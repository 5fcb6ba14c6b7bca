package series

import (
	"fmt"
	"strings"
)

// Mismatch is one component whose explicit current disagrees with the
// circuit total. Index is zero-based.
type Mismatch struct {
	Index            int
	ComponentCurrent float64
	TotalCurrent     float64
}

// ConflictError is returned by Solve when the supplied currents cannot all be
// true in a series circuit.
type ConflictError struct {
	Mismatches []Mismatch
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("component %d current %g A does not match circuit current %g A",
			m.Index+1, m.ComponentCurrent, m.TotalCurrent))
	}
	return "current conflict: " + strings.Join(parts, "; ")
}

// InputError reports a field that could not be parsed.
type InputError struct {
	Component int // zero-based; -1 for the totals record
	Field     string
	Err       error
}

func (e *InputError) Error() string {
	if e.Component < 0 {
		return fmt.Sprintf("totals %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("component %d %s: %v", e.Component+1, e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
