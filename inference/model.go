package inference

import (
	"fmt"
	"math"

	"github.com/bayesim-dev/bayesim/inference/dist"
)

// Values holds the current value of every free parameter, keyed by name.
type Values map[string]float64

// Clone produces an independent copy of the value assignment.
func (v Values) Clone() Values {
	c := make(Values, len(v))
	for name, x := range v {
		c[name] = x
	}
	return c
}

// Param is an unknown scalar quantity with a prior distribution. Its value
// is proposed and updated by the fitting routine and recorded in the trace.
type Param struct {
	Name     string    // unique variable name
	Prior    dist.Dist // prior distribution
	Init     float64   // initial value for the fitting routine
	Discrete bool      // restricts proposals to the integer grid
}

// Deterministic is a named quantity computed from the current parameter
// values. It is recorded in the trace but never proposed.
type Deterministic struct {
	Name    string                 // unique variable name
	Parents []string               // names of the variables the function reads
	Fn      func(v Values) float64 // computes the value under the assignment v
}

// Observation is a named block of observed data. Its log-likelihood closure
// sums the data log-probability under the current parameter values.
type Observation struct {
	Name    string                 // unique variable name
	Parents []string               // names of the variables the likelihood reads
	NumData int                    // number of observed data points
	LogLik  func(v Values) float64 // data log-likelihood under the assignment v
}

// Model is a registry of named variables forming a joint probability: free
// parameters with priors, deterministic functions of them, and observed
// data blocks.
type Model struct {
	name           string
	params         []*Param
	deterministics []*Deterministic
	observations   []*Observation
	names          map[string]bool
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		name:  name,
		names: map[string]bool{},
	}
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// register claims a variable name or fails on a clash.
func (m *Model) register(name string) error {
	if name == "" {
		return fmt.Errorf("variable of model %v has an empty name", m.name)
	}
	if m.names[name] {
		return fmt.Errorf("variable %v already declared in model %v", name, m.name)
	}
	m.names[name] = true
	return nil
}

// AddParam declares a free parameter.
func (m *Model) AddParam(p Param) error {
	if err := m.register(p.Name); err != nil {
		return err
	}
	if p.Prior == nil {
		return fmt.Errorf("parameter %v has no prior", p.Name)
	}
	m.params = append(m.params, &p)
	return nil
}

// AddDeterministic declares a computed variable.
func (m *Model) AddDeterministic(d Deterministic) error {
	if err := m.register(d.Name); err != nil {
		return err
	}
	if d.Fn == nil {
		return fmt.Errorf("deterministic %v has no function", d.Name)
	}
	m.deterministics = append(m.deterministics, &d)
	return nil
}

// AddObservation declares an observed data block.
func (m *Model) AddObservation(o Observation) error {
	if err := m.register(o.Name); err != nil {
		return err
	}
	if o.LogLik == nil {
		return fmt.Errorf("observation %v has no likelihood", o.Name)
	}
	m.observations = append(m.observations, &o)
	return nil
}

// Params returns the free parameters in declaration order.
func (m *Model) Params() []*Param {
	return m.params
}

// Deterministics returns the computed variables in declaration order.
func (m *Model) Deterministics() []*Deterministic {
	return m.deterministics
}

// Observations returns the observed data blocks in declaration order.
func (m *Model) Observations() []*Observation {
	return m.observations
}

// Variables returns the names of all traced variables, i.e. the free
// parameters followed by the deterministics.
func (m *Model) Variables() []string {
	names := []string{}
	for _, p := range m.params {
		names = append(names, p.Name)
	}
	for _, d := range m.deterministics {
		names = append(names, d.Name)
	}
	return names
}

// InitialValues produces the starting assignment for a fitting run.
func (m *Model) InitialValues() Values {
	v := make(Values, len(m.params))
	for _, p := range m.params {
		v[p.Name] = p.Init
	}
	return v
}

// LogProb computes the log of the joint probability of the assignment v:
// the sum of all prior log-densities and all data log-likelihoods. An
// assignment outside the support yields negative infinity.
func (m *Model) LogProb(v Values) float64 {
	logp := 0.0
	for _, p := range m.params {
		lp := p.Prior.LogProb(v[p.Name])
		if math.IsInf(lp, -1) {
			return math.Inf(-1)
		}
		logp += lp
	}
	for _, o := range m.observations {
		ll := o.LogLik(v)
		if math.IsInf(ll, -1) {
			return math.Inf(-1)
		}
		logp += ll
	}
	return logp
}
