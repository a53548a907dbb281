package tutorial

import (
	"math"

	"github.com/bayesim-dev/bayesim/inference"
	"gonum.org/v1/gonum/stat/distuv"
)

// SurvivalModelName identifies the survival model in traces.
const SurvivalModelName = "mastectomy-survival"

// NewSurvivalModel builds the survival model of the mastectomy data. The
// death rate of patient i is exp(intercept + effect*metastized_i); observed
// deaths contribute an exponential density, censored survival times only
// the survival probability.
func NewSurvivalModel() (*inference.Model, error) {
	m := inference.NewModel(SurvivalModelName)

	if err := m.AddParam(inference.Param{
		Name:  "intercept",
		Prior: distuv.Normal{Mu: 0.0, Sigma: 10.0},
		Init:  -5.0,
	}); err != nil {
		return nil, err
	}
	if err := m.AddParam(inference.Param{
		Name:  "metastized-effect",
		Prior: distuv.Normal{Mu: 0.0, Sigma: 10.0},
		Init:  0.0,
	}); err != nil {
		return nil, err
	}

	if err := m.AddDeterministic(inference.Deterministic{
		Name:    "control-rate",
		Parents: []string{"intercept"},
		Fn: func(v inference.Values) float64 {
			return math.Exp(v["intercept"])
		},
	}); err != nil {
		return nil, err
	}
	if err := m.AddDeterministic(inference.Deterministic{
		Name:    "metastized-rate",
		Parents: []string{"intercept", "metastized-effect"},
		Fn: func(v inference.Values) float64 {
			return math.Exp(v["intercept"] + v["metastized-effect"])
		},
	}); err != nil {
		return nil, err
	}

	if err := m.AddObservation(inference.Observation{
		Name:    "survival-months",
		Parents: []string{"intercept", "metastized-effect"},
		NumData: len(SurvivalMonths),
		LogLik:  survivalLogLik,
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// survivalLogLik is the censored-exponential log-likelihood of the
// mastectomy data.
func survivalLogLik(v inference.Values) float64 {
	logLik := 0.0
	for i, t := range SurvivalMonths {
		logRate := v["intercept"]
		if Metastized[i] {
			logRate += v["metastized-effect"]
		}
		rate := math.Exp(logRate)
		if math.IsInf(rate, 1) {
			return math.Inf(-1)
		}
		// density of an observed death, survival probability otherwise
		logLik -= rate * t
		if DeathObserved[i] {
			logLik += logRate
		}
	}
	return logLik
}
