package series

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCircuit(t *testing.T, components []Record, totals Record) Circuit {
	t.Helper()
	c, err := ParseCircuit(components, totals)
	require.NoError(t, err)
	return c
}

func value(t *testing.T, q Quantity) float64 {
	t.Helper()
	v, ok := q.Float()
	require.True(t, ok, "expected quantity to be known")
	return v
}

func TestSolveSingleComponentFromVoltageAndResistance(t *testing.T) {
	c := mustCircuit(t, []Record{{Voltage: "12", Resistance: "4"}}, Record{})

	res, err := Solve(c)
	require.NoError(t, err)
	require.Len(t, res.Components, 1)

	got := res.Components[0].Record()
	assert.Equal(t, Text("3.0"), got.Current)
	assert.Equal(t, Text("36.0"), got.Power)
	assert.Equal(t, Text("12"), got.Voltage)
	assert.Equal(t, Text("4"), got.Resistance)
	assert.True(t, res.Converged)
}

func TestSolveIgnoresTotalVoltage(t *testing.T) {
	// Totals other than current are not used to seed components, so two
	// resistors with only a total voltage stay unsolved.
	c := mustCircuit(t, []Record{{Resistance: "10"}, {Resistance: "20"}}, Record{Voltage: "30"})

	res, err := Solve(c)
	require.NoError(t, err)

	want := []Record{{Resistance: "10"}, {Resistance: "20"}}
	if diff := cmp.Diff(want, Records(res.Components)); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.Passes)
	assert.True(t, res.Converged)
}

func TestSolveDoesNotValidateTotalsOtherThanCurrent(t *testing.T) {
	c := mustCircuit(t,
		[]Record{{Voltage: "12", Resistance: "4"}},
		Record{Voltage: "999", Resistance: "1", Power: "2"},
	)

	res, err := Solve(c)
	require.NoError(t, err)
	assert.Equal(t, Text("3.0"), res.Components[0].Record().Current)
}

func TestSolveSeedsCurrentFromTotals(t *testing.T) {
	c := mustCircuit(t, []Record{{Resistance: "10"}, {Resistance: "20"}}, Record{Current: "2"})

	res, err := Solve(c)
	require.NoError(t, err)

	want := []Record{
		{Voltage: "20.0", Current: "2", Resistance: "10", Power: "40.0"},
		{Voltage: "40.0", Current: "2", Resistance: "20", Power: "80.0"},
	}
	if diff := cmp.Diff(want, Records(res.Components)); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestSolvePropagatesDerivedCurrentAcrossComponents(t *testing.T) {
	c := mustCircuit(t,
		[]Record{{Resistance: "5"}, {Power: "18", Resistance: "2"}, {Voltage: "6"}},
		Record{},
	)

	res, err := Solve(c)
	require.NoError(t, err)

	want := []Record{
		{Voltage: "15.0", Current: "3.0", Resistance: "5", Power: "45.0"},
		{Voltage: "6.0", Current: "3.0", Resistance: "2", Power: "18"},
		{Voltage: "6", Current: "3.0", Resistance: "2.0", Power: "18.0"},
	}
	if diff := cmp.Diff(want, Records(res.Components)); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveCurrentPriorityPrefersVoltageOverResistance(t *testing.T) {
	// V/R is tried before P/V; here they disagree and V/R must win.
	c := mustCircuit(t, []Record{{Voltage: "10", Resistance: "5", Power: "40"}, {}}, Record{})

	res, err := Solve(c)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, value(t, res.Components[1].Current), 1e-9)
}

func TestSolveConflictNamesComponentsAndDoesNotMutate(t *testing.T) {
	components := []Record{{Current: "7"}, {Current: "5.005"}, {Current: "4", Resistance: "2"}}
	c := mustCircuit(t, components, Record{Current: "5"})
	before := Records(c.Components)

	_, err := Solve(c)
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Mismatches, 2)

	assert.Equal(t, Mismatch{Index: 0, ComponentCurrent: 7, TotalCurrent: 5}, conflict.Mismatches[0])
	assert.Equal(t, 2, conflict.Mismatches[1].Index)
	assert.Contains(t, err.Error(), "component 1 current 7 A does not match circuit current 5 A")
	assert.Contains(t, err.Error(), "component 3")

	if diff := cmp.Diff(before, Records(c.Components)); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	c := mustCircuit(t, []Record{{Voltage: "12", Resistance: "4"}, {}}, Record{})
	before := Records(c.Components)

	_, err := Solve(c)
	require.NoError(t, err)

	if diff := cmp.Diff(before, Records(c.Components)); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	c := mustCircuit(t,
		[]Record{{Voltage: "12", Resistance: "4"}, {Resistance: "3.3"}, {Power: "10"}},
		Record{},
	)

	first, err := Solve(c)
	require.NoError(t, err)

	second, err := Solve(Circuit{Components: first.Components})
	require.NoError(t, err)

	if diff := cmp.Diff(Records(first.Components), Records(second.Components)); diff != "" {
		t.Fatalf("second solve changed values (-first +second):\n%s", diff)
	}
	assert.Equal(t, 1, second.Passes)

	// Re-entering the rounded display values must not move anything either.
	reparsed := mustCircuit(t, Records(first.Components), Record{})
	third, err := Solve(reparsed)
	require.NoError(t, err)
	for i := range first.Components {
		assert.InDelta(t, value(t, first.Components[i].Voltage), value(t, third.Components[i].Voltage), 0.05)
		assert.InDelta(t, value(t, first.Components[i].Current), value(t, third.Components[i].Current), 0.05)
		assert.InDelta(t, value(t, first.Components[i].Resistance), value(t, third.Components[i].Resistance), 0.05)
		assert.InDelta(t, value(t, first.Components[i].Power), value(t, third.Components[i].Power), 0.05)
	}
}

func TestSolveLeavesDegenerateValuesBlank(t *testing.T) {
	c := mustCircuit(t, []Record{{Voltage: "0", Resistance: "0"}, {Power: "5"}}, Record{})

	res, err := Solve(c)
	require.NoError(t, err)

	got := Records(res.Components)
	assert.Equal(t, Text(""), got[0].Current)
	assert.Equal(t, Text(""), got[1].Current)
	assert.Equal(t, Text(""), got[0].Power)
}

func TestSolveEmptyCircuit(t *testing.T) {
	res, err := Solve(Circuit{})
	require.NoError(t, err)
	assert.Empty(t, res.Components)
	assert.True(t, res.Converged)
}

// TestSolveRandomCircuits reveals random subsets of a consistent circuit and
// checks every solved value against Ohm's law and the shared current.
func TestSolveRandomCircuits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(20)
		current := 0.5 + rng.Float64()*9.5

		comps := make([]Component, n)
		for i := range comps {
			r := 1 + rng.Float64()*99
			truth := Component{
				Voltage:    Known(current * r),
				Current:    Known(current),
				Resistance: Known(r),
				Power:      Known(current * current * r),
			}
			comps[i] = reveal(rng, truth)
		}

		res, err := Solve(Circuit{Components: comps})
		require.NoError(t, err)
		require.LessOrEqual(t, res.Passes, MaxPasses)
		require.True(t, res.Converged)

		var shared *float64
		for i, c := range res.Components {
			cur, iok := c.Current.Float()
			v, vok := c.Voltage.Float()
			r, rok := c.Resistance.Float()
			p, pok := c.Power.Float()

			if iok {
				if shared == nil {
					shared = &cur
				}
				assert.InDelta(t, *shared, cur, 0.1, "trial %d component %d current", trial, i)
			}
			if vok && iok && rok {
				assert.InDelta(t, v, cur*r, 0.1, "trial %d component %d ohm's law", trial, i)
			}
			if vok && iok && pok {
				assert.InDelta(t, p, v*cur, 0.1, "trial %d component %d power", trial, i)
			}
		}
	}
}

func TestSolveTerminatesOnArbitraryInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(20)
		comps := make([]Component, n)
		for i := range comps {
			comps[i] = reveal(rng, Component{
				Voltage:    Known(rng.NormFloat64() * 100),
				Current:    Known(rng.NormFloat64() * 10),
				Resistance: Known(rng.Float64() * 100),
				Power:      Known(rng.NormFloat64() * 1000),
			})
		}

		res, err := Solve(Circuit{Components: comps})
		require.NoError(t, err)
		require.LessOrEqual(t, res.Passes, MaxPasses)

		for _, c := range res.Components {
			for _, q := range []Quantity{c.Voltage, c.Current, c.Resistance, c.Power} {
				if v, ok := q.Float(); ok {
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				}
			}
		}
	}
}

func reveal(rng *rand.Rand, c Component) Component {
	var out Component
	if rng.Float64() < 0.4 {
		out.Voltage = c.Voltage
	}
	if rng.Float64() < 0.15 {
		out.Current = c.Current
	}
	if rng.Float64() < 0.4 {
		out.Resistance = c.Resistance
	}
	if rng.Float64() < 0.3 {
		out.Power = c.Power
	}
	return out
}

func TestResultSummary(t *testing.T) {
	c := mustCircuit(t, []Record{{Resistance: "10"}, {Resistance: "20"}}, Record{Current: "2"})

	res, err := Solve(c)
	require.NoError(t, err)

	got := Component(res.Summary()).Record()
	want := Record{Voltage: "60.0", Current: "2.0", Resistance: "30.0", Power: "120.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	partial := Result{Components: []Component{{Resistance: Known(1)}, {}}}
	assert.Equal(t, Record{}, Component(partial.Summary()).Record())
}
