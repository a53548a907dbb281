// Package trace stores the sampled values of model variables across the kept
// iterations of a fitting run and provides selectable storage backends for
// them (an in-memory trace, a compressed trace file, and a trace database).
package trace

import (
	"fmt"
)

// Trace keeps the recorded sample series of every traced variable of a
// single chain.
type Trace struct {
	model   string               // name of the fitted model
	names   []string             // traced variables in declaration order
	samples map[string][]float64 // recorded series per variable
}

// New creates an empty trace for the given model and variable names.
func New(model string, names []string) *Trace {
	samples := make(map[string][]float64, len(names))
	for _, name := range names {
		samples[name] = []float64{}
	}
	return &Trace{
		model:   model,
		names:   append([]string{}, names...),
		samples: samples,
	}
}

// Model returns the name of the fitted model.
func (t *Trace) Model() string {
	return t.model
}

// Names returns the traced variable names in declaration order.
func (t *Trace) Names() []string {
	return t.names
}

// Len returns the number of recorded samples.
func (t *Trace) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.samples[t.names[0]])
}

// Append records one sample for every traced variable.
func (t *Trace) Append(values map[string]float64) error {
	for _, name := range t.names {
		x, ok := values[name]
		if !ok {
			return fmt.Errorf("sample misses variable %v", name)
		}
		t.samples[name] = append(t.samples[name], x)
	}
	return nil
}

// Get returns the full sample series of a variable.
func (t *Trace) Get(name string) ([]float64, error) {
	xs, ok := t.samples[name]
	if !ok {
		return nil, fmt.Errorf("unknown variable %v", name)
	}
	return xs, nil
}

// Slice returns every step-th sample of a variable in the half-open index
// range [start, stop). A negative stop selects the end of the series.
func (t *Trace) Slice(name string, start int, stop int, step int) ([]float64, error) {
	xs, ok := t.samples[name]
	if !ok {
		return nil, fmt.Errorf("unknown variable %v", name)
	}
	if stop < 0 || stop > len(xs) {
		stop = len(xs)
	}
	if start < 0 || start > stop {
		return nil, fmt.Errorf("invalid slice range [%v, %v) of variable %v", start, stop, name)
	}
	if step <= 0 {
		return nil, fmt.Errorf("invalid slice step %v of variable %v", step, name)
	}
	sliced := []float64{}
	for i := start; i < stop; i += step {
		sliced = append(sliced, xs[i])
	}
	return sliced, nil
}
