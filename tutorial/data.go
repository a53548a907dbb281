// Package tutorial declares the two case-study models: a survival model of
// mastectomy outcomes and a change-point model of the yearly coal-mining
// disaster counts.
package tutorial

// FirstDisasterYear is the first year of the disaster series.
const FirstDisasterYear = 1851

// DisasterCounts is the yearly number of coal-mining disasters in the UK
// from 1851 to 1961.
var DisasterCounts = []float64{
	4, 5, 4, 0, 1, 4, 3, 4, 0, 6, 3, 3, 4, 0, 2, 6,
	3, 3, 5, 4, 5, 3, 1, 4, 4, 1, 5, 5, 3, 4, 2, 5,
	2, 2, 3, 4, 2, 1, 3, 2, 2, 1, 1, 1, 1, 3, 0, 0,
	1, 0, 1, 1, 0, 0, 3, 1, 0, 3, 2, 2, 0, 1, 1, 1,
	0, 1, 0, 1, 0, 0, 0, 2, 1, 0, 0, 0, 1, 1, 0, 2,
	3, 3, 1, 1, 2, 1, 1, 1, 1, 2, 4, 2, 0, 0, 1, 4,
	0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 1,
}

// MaskedDisasterYears are the indices of the disaster series whose counts
// are treated as missing in the masked model variant. The sampler imputes
// them alongside the model parameters.
var MaskedDisasterYears = []int{83, 84}

// Mastectomy outcomes of 44 breast-cancer patients: months of survival
// after surgery, whether the death was observed within the study window,
// and whether the cancer had metastized.
var (
	SurvivalMonths = []float64{
		23, 47, 69, 70, 100, 101, 148, 181, 198, 208, 212, 224,
		5, 8, 10, 13, 18, 24, 26, 26, 31, 35, 40, 41,
		48, 50, 59, 61, 68, 71, 76, 105, 107, 109, 113, 116,
		118, 143, 154, 162, 188, 212, 217, 225,
	}
	DeathObserved = []bool{
		true, true, true, false, false, false, true, true, false, false, false, false,
		true, true, true, true, true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, false, false, false, false, true, false,
		true, true, false, false, false, false, false, false,
	}
	Metastized = []bool{
		false, false, false, false, false, false, false, false, false, false, false, false,
		true, true, true, true, true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, true, true,
	}
)
