package tutorial

import (
	"fmt"
	"math"

	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/inference/dist"
	"gonum.org/v1/gonum/stat/distuv"
)

// DisastersModelName identifies the change-point model in traces.
const DisastersModelName = "coal-disasters"

// MaskedDisastersModelName identifies the masked variant in traces.
const MaskedDisastersModelName = "coal-disasters-masked"

// maxImputedCount bounds the flat prior of an imputed disaster count.
const maxImputedCount = 20

// MaskedCountName returns the variable name of an imputed disaster count.
func MaskedCountName(index int) string {
	return fmt.Sprintf("disasters-%d", FirstDisasterYear+index)
}

// NewDisastersModel builds the change-point model of the disaster series:
// an unknown switch-point partitions the years into an early and a late
// regime with separate Poisson means. With masked set, the counts of
// the masked years become latent variables that the sampler imputes.
func NewDisastersModel(masked bool) (*inference.Model, error) {
	name := DisastersModelName
	if masked {
		name = MaskedDisastersModelName
	}
	m := inference.NewModel(name)

	if err := m.AddParam(inference.Param{
		Name:     "switchpoint",
		Prior:    dist.DiscreteUniform{Min: 0, Max: float64(len(DisasterCounts) - 1)},
		Init:     float64(len(DisasterCounts) / 2),
		Discrete: true,
	}); err != nil {
		return nil, err
	}
	if err := m.AddParam(inference.Param{
		Name:  "early-mean",
		Prior: distuv.Exponential{Rate: 1.0},
		Init:  3.0,
	}); err != nil {
		return nil, err
	}
	if err := m.AddParam(inference.Param{
		Name:  "late-mean",
		Prior: distuv.Exponential{Rate: 1.0},
		Init:  1.0,
	}); err != nil {
		return nil, err
	}

	if err := m.AddDeterministic(inference.Deterministic{
		Name:    "switch-year",
		Parents: []string{"switchpoint"},
		Fn: func(v inference.Values) float64 {
			return float64(FirstDisasterYear) + v["switchpoint"]
		},
	}); err != nil {
		return nil, err
	}

	maskedIndex := map[int]bool{}
	if masked {
		for _, i := range MaskedDisasterYears {
			maskedIndex[i] = true
			if err := m.AddParam(inference.Param{
				Name:     MaskedCountName(i),
				Prior:    dist.DiscreteUniform{Min: 0, Max: maxImputedCount},
				Init:     1.0,
				Discrete: true,
			}); err != nil {
				return nil, err
			}
		}
	}

	parents := []string{"switchpoint", "early-mean", "late-mean"}
	if masked {
		for _, i := range MaskedDisasterYears {
			parents = append(parents, MaskedCountName(i))
		}
	}
	if err := m.AddObservation(inference.Observation{
		Name:    "disasters",
		Parents: parents,
		NumData: len(DisasterCounts) - len(maskedIndex),
		LogLik: func(v inference.Values) float64 {
			return disastersLogLik(v, maskedIndex)
		},
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// disastersLogLik is the Poisson log-likelihood of the disaster series with
// the rate switching at the switch-point. Masked counts are read from the
// current assignment instead of the data.
func disastersLogLik(v inference.Values, maskedIndex map[int]bool) float64 {
	s := v["switchpoint"]
	logLik := 0.0
	for i, count := range DisasterCounts {
		rate := v["early-mean"]
		if float64(i) >= s {
			rate = v["late-mean"]
		}
		if rate <= 0.0 {
			return math.Inf(-1)
		}
		if maskedIndex[i] {
			count = v[MaskedCountName(i)]
		}
		logLik += distuv.Poisson{Lambda: rate}.LogProb(count)
	}
	return logLik
}
