package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is an optional electrical value. The zero value is unknown.
type Quantity struct {
	value   float64
	known   bool
	derived bool
}

// Known returns a caller-supplied quantity.
func Known(v float64) Quantity {
	return Quantity{value: v, known: true}
}

// Unknown returns an empty quantity.
func Unknown() Quantity {
	return Quantity{}
}

func derived(v float64) Quantity {
	return Quantity{value: v, known: true, derived: true}
}

// ParseQuantity parses a decimal string. Blank text is an unknown quantity.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown(), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}, fmt.Errorf("parse %q: value is not finite", s)
	}

	return Known(v), nil
}

func (q Quantity) Known() bool   { return q.known }
func (q Quantity) Derived() bool { return q.derived }

// Float returns the value and whether it is known.
func (q Quantity) Float() (float64, bool) {
	return q.value, q.known
}

// String formats derived values to one decimal place and supplied values in
// their shortest form.
func (q Quantity) String() string {
	if !q.known {
		return ""
	}
	if q.derived {
		return strconv.FormatFloat(q.value, 'f', 1, 64)
	}
	return strconv.FormatFloat(q.value, 'f', -1, 64)
}
