package inference

import (
	"math"
	"testing"

	"github.com/bayesim-dev/bayesim/inference/dist"
	"github.com/bayesim-dev/bayesim/logger"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// testConfig produces short fitting parameters for unit tests.
func testConfig() *Config {
	return &Config{
		Iterations:   12000,
		BurnIn:       2000,
		Thin:         2,
		Chains:       1,
		Seed:         1,
		TuneInterval: 100,
	}
}

// TestConfigValidate checks the validation of fitting parameters.
func TestConfigValidate(t *testing.T) {
	valid := testConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid parameters rejected. Error: %v", err)
	}
	broken := []*Config{
		{Iterations: 0, BurnIn: 0, Thin: 1, Chains: 1, TuneInterval: 1},
		{Iterations: 100, BurnIn: 100, Thin: 1, Chains: 1, TuneInterval: 1},
		{Iterations: 100, BurnIn: 10, Thin: 0, Chains: 1, TuneInterval: 1},
		{Iterations: 100, BurnIn: 10, Thin: 1, Chains: 0, TuneInterval: 1},
		{Iterations: 100, BurnIn: 10, Thin: 1, Chains: 1, TuneInterval: 0},
	}
	for i, cfg := range broken {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid parameters %v accepted", i)
		}
	}
}

// TestSampleConjugateModel fits a conjugate Normal model and compares the
// posterior mean against its analytical value.
func TestSampleConjugateModel(t *testing.T) {
	// twenty observations with mean two
	ys := []float64{
		1.0, 3.0, 1.5, 2.5, 1.2, 2.8, 1.7, 2.3, 0.5, 3.5,
		1.9, 2.1, 1.4, 2.6, 1.1, 2.9, 1.6, 2.4, 1.3, 2.7,
	}
	m := NewModel("conjugate")
	if err := m.AddParam(Param{
		Name:  "mu",
		Prior: distuv.Normal{Mu: 0.0, Sigma: 10.0},
		Init:  0.0,
	}); err != nil {
		t.Fatalf("cannot declare parameter. Error: %v", err)
	}
	if err := m.AddObservation(Observation{
		Name:    "y",
		Parents: []string{"mu"},
		NumData: len(ys),
		LogLik: func(v Values) float64 {
			logLik := 0.0
			for _, y := range ys {
				logLik += distuv.Normal{Mu: v["mu"], Sigma: 1.0}.LogProb(y)
			}
			return logLik
		},
	}); err != nil {
		t.Fatalf("cannot declare observation. Error: %v", err)
	}

	log := logger.NewLogger("critical", "test")
	traces, err := Sample(m, testConfig(), log)
	if err != nil {
		t.Fatalf("fitting failed. Error: %v", err)
	}
	xs, err := traces[0].Get("mu")
	if err != nil {
		t.Fatalf("missing trace of mu. Error: %v", err)
	}

	// posterior mean of the conjugate Normal model
	n := float64(len(ys))
	expected := (stat.Mean(ys, nil) * n / 1.0) / (n/1.0 + 1.0/100.0)
	if mean := stat.Mean(xs, nil); math.Abs(mean-expected) > 0.1 {
		t.Fatalf("posterior mean off; expected %v, got %v", expected, mean)
	}
}

// TestSampleTraceLength checks burn-in and thinning of the kept samples.
func TestSampleTraceLength(t *testing.T) {
	m := newTestModel(t)
	cfg := &Config{
		Iterations:   1000,
		BurnIn:       200,
		Thin:         4,
		Chains:       2,
		Seed:         7,
		TuneInterval: 50,
	}
	log := logger.NewLogger("critical", "test")
	traces, err := Sample(m, cfg, log)
	if err != nil {
		t.Fatalf("fitting failed. Error: %v", err)
	}
	if len(traces) != 2 {
		t.Fatalf("expected 2 chains; got %v", len(traces))
	}
	expected := (cfg.Iterations - cfg.BurnIn + cfg.Thin - 1) / cfg.Thin
	for chain, tr := range traces {
		if tr.Len() != expected {
			t.Fatalf("chain %v: expected %v kept samples, got %v", chain, expected, tr.Len())
		}
	}
}

// TestSampleDiscreteParam checks that a discrete parameter stays on the
// integer grid of its support during sampling.
func TestSampleDiscreteParam(t *testing.T) {
	m := NewModel("discrete")
	if err := m.AddParam(Param{
		Name:     "k",
		Prior:    dist.DiscreteUniform{Min: 0, Max: 10},
		Init:     5.0,
		Discrete: true,
	}); err != nil {
		t.Fatalf("cannot declare parameter. Error: %v", err)
	}
	log := logger.NewLogger("critical", "test")
	traces, err := Sample(m, testConfig(), log)
	if err != nil {
		t.Fatalf("fitting failed. Error: %v", err)
	}
	xs, err := traces[0].Get("k")
	if err != nil {
		t.Fatalf("missing trace of k. Error: %v", err)
	}
	for _, x := range xs {
		if math.Floor(x) != x {
			t.Fatalf("discrete parameter left the integer grid: %v", x)
		}
		if x < 0.0 || x > 10.0 {
			t.Fatalf("discrete parameter left its support: %v", x)
		}
	}
}

// TestSampleInvalidInit checks that fitting fails for initial values of
// zero probability.
func TestSampleInvalidInit(t *testing.T) {
	m := NewModel("invalid")
	if err := m.AddParam(Param{
		Name:  "rate",
		Prior: distuv.Exponential{Rate: 1.0},
		Init:  -1.0,
	}); err != nil {
		t.Fatalf("cannot declare parameter. Error: %v", err)
	}
	log := logger.NewLogger("critical", "test")
	if _, err := Sample(m, testConfig(), log); err == nil {
		t.Fatalf("fitting must fail for an impossible initial value")
	}
}
