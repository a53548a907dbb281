package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Package for the prior-distribution surface of the model layer. The
// log-densities and inverse CDFs come from gonum's distuv types; the only
// distribution implemented here is the integer uniform, which distuv lacks.

// Dist is the scalar distribution interface required for a prior: a
// log-density for the joint probability and an inverse CDF for drawing
// initial values.
type Dist interface {
	// LogProb returns the natural logarithm of the density at x.
	LogProb(x float64) float64

	// Quantile returns the inverse of the CDF at probability p.
	Quantile(p float64) float64
}

// distuv types satisfy the prior interface as-is.
var (
	_ Dist = distuv.Normal{}
	_ Dist = distuv.Exponential{}
	_ Dist = distuv.Uniform{}
	_ Dist = distuv.Gamma{}
	_ Dist = DiscreteUniform{}
)

// DiscreteUniform is the uniform distribution over the integers
// {Min, Min+1, ..., Max}. It serves as the prior of a switch-point and as
// the flat prior of an imputed count.
type DiscreteUniform struct {
	Min float64 // lowest integer of the support
	Max float64 // highest integer of the support
}

// NumValues returns the size of the support.
func (d DiscreteUniform) NumValues() float64 {
	return d.Max - d.Min + 1.0
}

// LogProb returns the log probability of x. Values outside the support or
// off the integer grid have probability zero.
func (d DiscreteUniform) LogProb(x float64) float64 {
	if x < d.Min || x > d.Max || math.Floor(x) != x {
		return math.Inf(-1)
	}
	return -math.Log(d.NumValues())
}

// Quantile returns the smallest integer of the support whose CDF is greater
// than or equal to p.
func (d DiscreteUniform) Quantile(p float64) float64 {
	if p < 0.0 || p > 1.0 {
		panic("probability out of range")
	}
	x := d.Min + math.Floor(p*d.NumValues())
	if x > d.Max {
		x = d.Max
	}
	return x
}
