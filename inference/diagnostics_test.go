package inference

import (
	"math"
	"math/rand"
	"testing"
)

// newNoiseSeries produces a deterministic pseudo-random series.
func newNoiseSeries(n int, seed int64) []float64 {
	rg := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rg.NormFloat64()
	}
	return xs
}

// TestAutocorrelation checks lag zero and the decay for independent noise.
func TestAutocorrelation(t *testing.T) {
	xs := newNoiseSeries(5000, 1)
	acf := Autocorrelation(xs, 20)
	if acf[0] != 1.0 {
		t.Fatalf("autocorrelation at lag zero must be one; got %v", acf[0])
	}
	for lag := 1; lag <= 20; lag++ {
		if math.Abs(acf[lag]) > 0.1 {
			t.Fatalf("independent noise must decorrelate; lag %v has %v", lag, acf[lag])
		}
	}
}

// TestAutocorrelationOfTrend checks that a strongly correlated series keeps
// a high autocorrelation at small lags.
func TestAutocorrelationOfTrend(t *testing.T) {
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i)
	}
	acf := Autocorrelation(xs, 5)
	for lag := 1; lag <= 5; lag++ {
		if acf[lag] < 0.9 {
			t.Fatalf("trend must stay correlated; lag %v has %v", lag, acf[lag])
		}
	}
}

// TestEffectiveSampleSize checks independent noise against a correlated series.
func TestEffectiveSampleSize(t *testing.T) {
	noise := newNoiseSeries(2000, 2)
	essNoise := EffectiveSampleSize(noise)
	if essNoise < 1000.0 || essNoise > 3000.0 {
		t.Fatalf("effective sample size of independent noise off: %v", essNoise)
	}

	// a random walk is strongly autocorrelated
	walk := make([]float64, 2000)
	sum := 0.0
	for i, x := range noise {
		sum += x
		walk[i] = sum
	}
	if essWalk := EffectiveSampleSize(walk); essWalk > essNoise/10.0 {
		t.Fatalf("random walk must lose most effective samples: %v", essWalk)
	}
}

// TestGeweke checks that stationary noise passes and a drifting series
// fails the Geweke comparison.
func TestGeweke(t *testing.T) {
	noise := newNoiseSeries(4000, 3)
	scores, err := Geweke(noise, 20)
	if err != nil {
		t.Fatalf("cannot compute Geweke scores. Error: %v", err)
	}
	if len(scores) != 20 {
		t.Fatalf("expected 20 scores; got %v", len(scores))
	}
	outliers := 0
	for _, s := range scores {
		if math.Abs(s.Z) > 2.0 {
			outliers++
		}
	}
	if outliers > 4 {
		t.Fatalf("stationary noise yields too many outliers: %v", outliers)
	}

	drift := make([]float64, 4000)
	for i := range drift {
		drift[i] = float64(i) * 0.01
	}
	scores, err = Geweke(drift, 20)
	if err != nil {
		t.Fatalf("cannot compute Geweke scores. Error: %v", err)
	}
	large := 0
	for _, s := range scores {
		if math.Abs(s.Z) > 2.0 {
			large++
		}
	}
	if large == 0 {
		t.Fatalf("drifting series must fail the Geweke comparison")
	}
}

// TestGelmanRubin checks agreeing chains against diverging chains.
func TestGelmanRubin(t *testing.T) {
	a := newNoiseSeries(2000, 4)
	b := newNoiseSeries(2000, 5)
	rhat, err := GelmanRubin([][]float64{a, b})
	if err != nil {
		t.Fatalf("cannot compute scale reduction. Error: %v", err)
	}
	if rhat < 0.9 || rhat > 1.1 {
		t.Fatalf("agreeing chains must have R-hat near one; got %v", rhat)
	}

	shifted := make([]float64, len(b))
	for i, x := range b {
		shifted[i] = x + 10.0
	}
	rhat, err = GelmanRubin([][]float64{a, shifted})
	if err != nil {
		t.Fatalf("cannot compute scale reduction. Error: %v", err)
	}
	if rhat < 2.0 {
		t.Fatalf("diverging chains must have a large R-hat; got %v", rhat)
	}
}

// TestGelmanRubinErrors checks the error paths.
func TestGelmanRubinErrors(t *testing.T) {
	if _, err := GelmanRubin([][]float64{newNoiseSeries(100, 6)}); err == nil {
		t.Fatalf("a single chain must fail")
	}
	if _, err := GelmanRubin([][]float64{newNoiseSeries(100, 7), newNoiseSeries(50, 8)}); err == nil {
		t.Fatalf("unequal chain lengths must fail")
	}
}
