package inference

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/trace"
)

// Config holds the parameters of a fitting run.
type Config struct {
	Iterations   int   // iterations per chain, including burn-in
	BurnIn       int   // discarded leading iterations
	Thin         int   // keep every Thin-th iteration after burn-in
	Chains       int   // number of independent chains
	Seed         int64 // random seed; chain k is seeded with Seed+k
	TuneInterval int   // iterations between step-size adjustments during burn-in
}

// Validate checks the fitting parameters.
func (cfg *Config) Validate() error {
	if cfg.Iterations <= 0 {
		return fmt.Errorf("number of iterations must be positive; got %v", cfg.Iterations)
	}
	if cfg.BurnIn < 0 || cfg.BurnIn >= cfg.Iterations {
		return fmt.Errorf("burn-in must lie in [0, %v); got %v", cfg.Iterations, cfg.BurnIn)
	}
	if cfg.Thin <= 0 {
		return fmt.Errorf("thinning interval must be positive; got %v", cfg.Thin)
	}
	if cfg.Chains <= 0 {
		return fmt.Errorf("number of chains must be positive; got %v", cfg.Chains)
	}
	if cfg.TuneInterval <= 0 {
		return fmt.Errorf("tune interval must be positive; got %v", cfg.TuneInterval)
	}
	return nil
}

// sampler keeps the execution state of a single chain.
type sampler struct {
	model    *Model
	values   Values             // current assignment of the free parameters
	logp     float64            // joint log probability of the current assignment
	steps    map[string]float64 // proposal step size per parameter
	accepted map[string]uint64  // accepted proposals since the last tuning
	proposed map[string]uint64  // proposals since the last tuning
	rg       *rand.Rand
}

// newSampler creates the execution state for one chain.
func newSampler(m *Model, rg *rand.Rand) (*sampler, error) {
	values := m.InitialValues()
	logp := m.LogProb(values)
	if math.IsInf(logp, -1) {
		return nil, fmt.Errorf("model %v has zero probability at its initial values", m.Name())
	}
	steps := map[string]float64{}
	for _, p := range m.Params() {
		steps[p.Name] = 1.0
	}
	return &sampler{
		model:    m,
		values:   values,
		logp:     logp,
		steps:    steps,
		accepted: map[string]uint64{},
		proposed: map[string]uint64{},
		rg:       rg,
	}, nil
}

// propose draws a new value for a parameter from the symmetric proposal
// kernel: a Gaussian step for continuous parameters and a uniform non-zero
// integer step for discrete ones.
func (s *sampler) propose(p *Param) float64 {
	x := s.values[p.Name]
	if !p.Discrete {
		return x + s.steps[p.Name]*s.rg.NormFloat64()
	}
	width := int(math.Round(s.steps[p.Name]))
	if width < 1 {
		width = 1
	}
	delta := 0
	for delta == 0 {
		delta = s.rg.Intn(2*width+1) - width
	}
	return x + float64(delta)
}

// step performs one Metropolis update for every free parameter in turn.
func (s *sampler) step() {
	for _, p := range s.model.Params() {
		old := s.values[p.Name]
		s.values[p.Name] = s.propose(p)
		logp := s.model.LogProb(s.values)
		s.proposed[p.Name]++
		if math.Log(s.rg.Float64()) < logp-s.logp {
			s.logp = logp
			s.accepted[p.Name]++
		} else {
			s.values[p.Name] = old
		}
	}
}

// tune rescales the proposal step sizes from the acceptance rates observed
// since the last tuning and resets the counters.
func (s *sampler) tune() {
	for _, p := range s.model.Params() {
		if s.proposed[p.Name] == 0 {
			continue
		}
		rate := float64(s.accepted[p.Name]) / float64(s.proposed[p.Name])
		s.steps[p.Name] = tuneStep(s.steps[p.Name], rate)
		s.accepted[p.Name] = 0
		s.proposed[p.Name] = 0
	}
}

// tuneStep adjusts a proposal step size towards an acceptance rate of
// roughly 20-50%.
func tuneStep(step float64, rate float64) float64 {
	switch {
	case rate < 0.05:
		return step * 0.5
	case rate < 0.2:
		return step * 0.9
	case rate > 0.95:
		return step * 10.0
	case rate > 0.75:
		return step * 2.0
	case rate > 0.5:
		return step * 1.1
	}
	return step
}

// record produces the traced sample of the current iteration, i.e. the free
// parameters together with the evaluated deterministics.
func (s *sampler) record() map[string]float64 {
	values := map[string]float64{}
	for name, x := range s.values {
		values[name] = x
	}
	for _, d := range s.model.Deterministics() {
		values[d.Name] = d.Fn(s.values)
	}
	return values
}

// Sample fits the model by running cfg.Chains independent Metropolis chains
// and returns one trace per chain.
func Sample(m *Model, cfg *Config, log logger.Logger) ([]*trace.Trace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(m.Params()) == 0 {
		return nil, fmt.Errorf("model %v has no free parameters", m.Name())
	}
	log.Noticef("fit model %v: %v chains, %v iterations (burn-in %v, thin %v)",
		m.Name(), cfg.Chains, cfg.Iterations, cfg.BurnIn, cfg.Thin)

	traces := make([]*trace.Trace, cfg.Chains)
	for chain := 0; chain < cfg.Chains; chain++ {
		rg := rand.New(rand.NewSource(cfg.Seed + int64(chain)))
		t, err := runChain(m, cfg, chain, rg, log)
		if err != nil {
			return nil, err
		}
		traces[chain] = t
	}
	return traces, nil
}

// runChain runs a single Metropolis chain and collects its trace.
func runChain(m *Model, cfg *Config, chain int, rg *rand.Rand, log logger.Logger) (*trace.Trace, error) {
	s, err := newSampler(m, rg)
	if err != nil {
		return nil, err
	}
	t := trace.New(m.Name(), m.Variables())
	progress := cfg.Iterations / 10

	var accepted, proposed uint64
	for iter := 0; iter < cfg.Iterations; iter++ {
		s.step()

		// adjust proposal step sizes during burn-in only; afterwards the
		// kernel must stay fixed to leave the posterior invariant
		if iter < cfg.BurnIn && (iter+1)%cfg.TuneInterval == 0 {
			for _, p := range m.Params() {
				accepted += s.accepted[p.Name]
				proposed += s.proposed[p.Name]
			}
			s.tune()
		}

		if iter >= cfg.BurnIn && (iter-cfg.BurnIn)%cfg.Thin == 0 {
			if err := t.Append(s.record()); err != nil {
				return nil, err
			}
		}

		if progress > 0 && (iter+1)%progress == 0 {
			log.Infof("chain %v: %v/%v iterations", chain, iter+1, cfg.Iterations)
		}
	}
	for _, p := range m.Params() {
		accepted += s.accepted[p.Name]
		proposed += s.proposed[p.Name]
	}
	if proposed > 0 {
		log.Noticef("chain %v: kept %v samples, acceptance rate %.2f",
			chain, t.Len(), float64(accepted)/float64(proposed))
	}
	return t, nil
}
