package series

// Summary adds up the solved components for display. A field is reported only
// when every component has it. It never feeds back into Solve.
func (r Result) Summary() Totals {
	var t Totals
	if len(r.Components) == 0 {
		return t
	}

	var sumV, sumR, sumP float64
	allV, allR, allP, allI := true, true, true, true

	for _, c := range r.Components {
		if v, ok := c.Voltage.Float(); ok {
			sumV += v
		} else {
			allV = false
		}
		if res, ok := c.Resistance.Float(); ok {
			sumR += res
		} else {
			allR = false
		}
		if p, ok := c.Power.Float(); ok {
			sumP += p
		} else {
			allP = false
		}
		if !c.Current.Known() {
			allI = false
		}
	}

	if allV {
		t.Voltage = derived(sumV)
	}
	if allR {
		t.Resistance = derived(sumR)
	}
	if allP {
		t.Power = derived(sumP)
	}
	if allI {
		cur, _ := r.Components[0].Current.Float()
		t.Current = derived(cur)
	}

	return t
}
