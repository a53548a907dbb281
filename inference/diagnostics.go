package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Autocorrelation computes the autocorrelation function of a sample series
// up to maxLag. The value at lag zero is one.
func Autocorrelation(xs []float64, maxLag int) []float64 {
	n := len(xs)
	if maxLag >= n {
		maxLag = n - 1
	}
	mean := stat.Mean(xs, nil)
	c0 := 0.0
	for _, x := range xs {
		c0 += (x - mean) * (x - mean)
	}
	acf := make([]float64, maxLag+1)
	acf[0] = 1.0
	if c0 == 0.0 {
		return acf
	}
	for lag := 1; lag <= maxLag; lag++ {
		c := 0.0
		for i := 0; i+lag < n; i++ {
			c += (xs[i] - mean) * (xs[i+lag] - mean)
		}
		acf[lag] = c / c0
	}
	return acf
}

// EffectiveSampleSize estimates the number of independent samples in an
// autocorrelated series. The autocorrelation sum is truncated at the first
// non-positive lag.
func EffectiveSampleSize(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return float64(n)
	}
	acf := Autocorrelation(xs, n-1)
	sum := 0.0
	for lag := 1; lag < len(acf); lag++ {
		if acf[lag] <= 0.0 {
			break
		}
		sum += acf[lag]
	}
	return float64(n) / (1.0 + 2.0*sum)
}

// GewekeScore is the z-score of one Geweke segment comparison.
type GewekeScore struct {
	Start int     // first index of the leading segment
	Z     float64 // z-score of the mean difference
}

// Geweke compares the means of leading segments of the series against the
// mean of its trailing half. Scores beyond +-2 indicate that the chain has
// not converged.
func Geweke(xs []float64, intervals int) ([]GewekeScore, error) {
	n := len(xs)
	if intervals <= 0 {
		return nil, fmt.Errorf("number of intervals must be positive; got %v", intervals)
	}
	if n < 4*intervals {
		return nil, fmt.Errorf("series too short for %v Geweke intervals", intervals)
	}
	tail := xs[n/2:]
	tailMean := stat.Mean(tail, nil)
	tailVar := stat.Variance(tail, nil)

	scores := []GewekeScore{}
	// leading segments cover the first half of the series
	for i := 0; i < intervals; i++ {
		start := i * (n / 2) / intervals
		head := xs[start : start+(n/2)/intervals]
		headMean := stat.Mean(head, nil)
		headVar := stat.Variance(head, nil)
		denom := math.Sqrt(headVar/float64(len(head)) + tailVar/float64(len(tail)))
		z := 0.0
		if denom > 0.0 {
			z = (headMean - tailMean) / denom
		}
		scores = append(scores, GewekeScore{Start: start, Z: z})
	}
	return scores, nil
}

// GelmanRubin computes the potential scale reduction factor over several
// chains of equal length. Values close to one indicate convergence.
func GelmanRubin(chains [][]float64) (float64, error) {
	m := len(chains)
	if m < 2 {
		return 0.0, fmt.Errorf("at least two chains required; got %v", m)
	}
	n := len(chains[0])
	for _, c := range chains {
		if len(c) != n {
			return 0.0, fmt.Errorf("chains have unequal lengths")
		}
	}
	if n < 2 {
		return 0.0, fmt.Errorf("chains too short")
	}

	// within-chain and between-chain variance
	means := make([]float64, m)
	w := 0.0
	for i, c := range chains {
		means[i] = stat.Mean(c, nil)
		w += stat.Variance(c, nil)
	}
	w /= float64(m)
	b := float64(n) * stat.Variance(means, nil)

	if w == 0.0 {
		return 1.0, nil
	}
	v := (float64(n-1)/float64(n))*w + b/float64(n)
	return math.Sqrt(v / w), nil
}
