package series

import "encoding/json"

// Text is a decimal field as typed by a user. In JSON it may be a string or a
// number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Record is the textual form of a component or totals row.
type Record struct {
	Voltage    Text `json:"voltage" yaml:"voltage"`
	Current    Text `json:"current" yaml:"current"`
	Resistance Text `json:"resistance" yaml:"resistance"`
	Power      Text `json:"power" yaml:"power"`
}

// ParseRecord converts a record into a Component. index is reported in any
// InputError; use -1 for totals.
func ParseRecord(index int, r Record) (Component, error) {
	var c Component

	fields := []struct {
		name string
		text Text
		dst  *Quantity
	}{
		{"voltage", r.Voltage, &c.Voltage},
		{"current", r.Current, &c.Current},
		{"resistance", r.Resistance, &c.Resistance},
		{"power", r.Power, &c.Power},
	}

	for _, f := range fields {
		q, err := ParseQuantity(string(f.text))
		if err != nil {
			return Component{}, &InputError{Component: index, Field: f.name, Err: err}
		}
		*f.dst = q
	}

	return c, nil
}

// ParseCircuit converts textual components and totals into a Circuit.
func ParseCircuit(components []Record, totals Record) (Circuit, error) {
	c := Circuit{Components: make([]Component, 0, len(components))}

	for i, r := range components {
		comp, err := ParseRecord(i, r)
		if err != nil {
			return Circuit{}, err
		}
		c.Components = append(c.Components, comp)
	}

	t, err := ParseRecord(-1, totals)
	if err != nil {
		return Circuit{}, err
	}
	c.Totals = Totals(t)

	return c, nil
}

// Record formats the component for display.
func (c Component) Record() Record {
	return Record{
		Voltage:    Text(c.Voltage.String()),
		Current:    Text(c.Current.String()),
		Resistance: Text(c.Resistance.String()),
		Power:      Text(c.Power.String()),
	}
}

// Records formats every component for display.
func Records(cs []Component) []Record {
	out := make([]Record, len(cs))
	for i, c := range cs {
		out[i] = c.Record()
	}
	return out
}
