// Package series solves series circuits: it fills every voltage, current,
// resistance and power value that Ohm's law and the power identities can
// derive from what the user already knows.
package series

import (
	"math"
	"slices"
)

const (
	// MaxPasses bounds the fixed-point iteration.
	MaxPasses = 50

	// CurrentTolerance is the largest difference between a component current
	// and the circuit total current that is not treated as a conflict.
	CurrentTolerance = 0.01
)

// Component is one element of a series circuit.
type Component struct {
	Voltage    Quantity
	Current    Quantity
	Resistance Quantity
	Power      Quantity
}

// Totals holds values the user already knows for the whole circuit. Only
// Current takes part in solving.
type Totals Component

// Circuit is an ordered set of series components plus optional totals.
type Circuit struct {
	Components []Component
	Totals     Totals
}

// Result is the outcome of Solve.
type Result struct {
	Components []Component
	Passes     int
	Converged  bool
}

// Validate checks every explicit component current against a known total
// current.
func (c Circuit) Validate() error {
	total, ok := c.Totals.Current.Float()
	if !ok {
		return nil
	}

	var mismatches []Mismatch
	for i, comp := range c.Components {
		cur, ok := comp.Current.Float()
		if !ok {
			continue
		}
		if math.Abs(cur-total) > CurrentTolerance {
			mismatches = append(mismatches, Mismatch{Index: i, ComponentCurrent: cur, TotalCurrent: total})
		}
	}

	if len(mismatches) > 0 {
		return &ConflictError{Mismatches: mismatches}
	}
	return nil
}

// Solve fills every derivable field. The input is never modified. The only
// error is a *ConflictError from Validate; missing data simply stays unknown.
func Solve(c Circuit) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	comps := slices.Clone(c.Components)
	if c.Totals.Current.Known() {
		for i := range comps {
			if !comps[i].Current.Known() {
				comps[i].Current = c.Totals.Current
			}
		}
	}

	res := Result{Components: comps}
	for res.Passes < MaxPasses {
		next, changed := solvePass(res.Components)
		res.Passes++
		res.Components = next
		if !changed {
			res.Converged = true
			break
		}
	}

	return res, nil
}

// solvePass runs one propagation pass over a copy of comps.
func solvePass(comps []Component) ([]Component, bool) {
	next := slices.Clone(comps)
	changed := false

	if current, ok := sharedCurrent(next); ok {
		for i := range next {
			if !next[i].Current.Known() {
				next[i].Current = derived(current)
				changed = true
			}
		}
	}

	for i := range next {
		if fillComponent(&next[i]) {
			changed = true
		}
	}

	return next, changed
}

// sharedCurrent returns the first explicit current, or one derived from the
// first component with enough other values.
func sharedCurrent(comps []Component) (float64, bool) {
	for _, c := range comps {
		if cur, ok := c.Current.Float(); ok {
			return cur, true
		}
	}

	for _, c := range comps {
		v, vok := c.Voltage.Float()
		r, rok := c.Resistance.Float()
		p, pok := c.Power.Float()

		if vok && rok && r != 0 {
			if cur, ok := finite(v / r); ok {
				return cur, true
			}
		}
		if pok && vok && v != 0 {
			if cur, ok := finite(p / v); ok {
				return cur, true
			}
		}
		if pok && rok && r != 0 && p/r >= 0 {
			if cur, ok := finite(math.Sqrt(p / r)); ok {
				return cur, true
			}
		}
	}

	return 0, false
}

// fillComponent derives resistance, then voltage, then power, each only when
// still unknown. It reports whether anything was filled.
func fillComponent(c *Component) bool {
	changed := false

	if !c.Resistance.Known() {
		if r, ok := resistance(*c); ok {
			c.Resistance = derived(r)
			changed = true
		}
	}
	if !c.Voltage.Known() {
		if v, ok := voltage(*c); ok {
			c.Voltage = derived(v)
			changed = true
		}
	}
	if !c.Power.Known() {
		if p, ok := power(*c); ok {
			c.Power = derived(p)
			changed = true
		}
	}

	return changed
}

func resistance(c Component) (float64, bool) {
	v, vok := c.Voltage.Float()
	i, iok := c.Current.Float()
	p, pok := c.Power.Float()

	if vok && iok && i != 0 {
		if r, ok := finite(v / i); ok {
			return r, true
		}
	}
	if pok && iok && i != 0 {
		if r, ok := finite(p / (i * i)); ok {
			return r, true
		}
	}
	if vok && pok && p != 0 {
		if r, ok := finite(v * v / p); ok {
			return r, true
		}
	}
	return 0, false
}

func voltage(c Component) (float64, bool) {
	i, iok := c.Current.Float()
	r, rok := c.Resistance.Float()
	p, pok := c.Power.Float()

	if iok && rok {
		if v, ok := finite(i * r); ok {
			return v, true
		}
	}
	if pok && iok && i != 0 {
		if v, ok := finite(p / i); ok {
			return v, true
		}
	}
	if pok && rok && p*r >= 0 {
		if v, ok := finite(math.Sqrt(p * r)); ok {
			return v, true
		}
	}
	return 0, false
}

func power(c Component) (float64, bool) {
	v, vok := c.Voltage.Float()
	i, iok := c.Current.Float()
	r, rok := c.Resistance.Float()

	if vok && iok {
		if p, ok := finite(v * i); ok {
			return p, true
		}
	}
	if iok && rok {
		if p, ok := finite(i * i * r); ok {
			return p, true
		}
	}
	if vok && rok && r != 0 {
		if p, ok := finite(v * v / r); ok {
			return p, true
		}
	}
	return 0, false
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
