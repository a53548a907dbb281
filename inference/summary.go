package inference

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/bayesim-dev/bayesim/trace"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// hpdMass is the probability mass of the reported highest posterior
// density interval.
const hpdMass = 0.95

// summaryQuantiles are the posterior quantiles of the summary report.
var summaryQuantiles = []float64{0.025, 0.25, 0.5, 0.75, 0.975}

// VarSummary is the posterior summary of a single traced variable.
type VarSummary struct {
	Name      string    // variable name
	N         int       // number of samples
	Mean      float64   // posterior mean
	StdDev    float64   // posterior standard deviation
	MCError   float64   // Monte-Carlo standard error (batch means)
	HPDLow    float64   // lower bound of the 95% HPD interval
	HPDHigh   float64   // upper bound of the 95% HPD interval
	Quantiles []float64 // posterior quantiles 2.5/25/50/75/97.5
}

// Summarize computes the posterior summary of one variable of a trace.
func Summarize(t *trace.Trace, name string) (*VarSummary, error) {
	xs, err := t.Get(name)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("variable %v has an empty trace", name)
	}
	sorted := append([]float64{}, xs...)
	sort.Float64s(sorted)

	quantiles := make([]float64, len(summaryQuantiles))
	for i, p := range summaryQuantiles {
		quantiles[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	low, high := hpdInterval(sorted, hpdMass)

	return &VarSummary{
		Name:      name,
		N:         len(xs),
		Mean:      stat.Mean(xs, nil),
		StdDev:    stat.StdDev(xs, nil),
		MCError:   mcError(xs),
		HPDLow:    low,
		HPDHigh:   high,
		Quantiles: quantiles,
	}, nil
}

// SummarizeTrace computes the posterior summary of every traced variable.
func SummarizeTrace(t *trace.Trace) ([]*VarSummary, error) {
	summaries := []*VarSummary{}
	for _, name := range t.Names() {
		s, err := Summarize(t, name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// hpdInterval finds the narrowest interval of sorted samples containing the
// given probability mass.
func hpdInterval(sorted []float64, mass float64) (float64, float64) {
	n := len(sorted)
	m := int(math.Ceil(mass * float64(n)))
	if m >= n {
		return sorted[0], sorted[n-1]
	}
	low, high := sorted[0], sorted[m-1]
	for i := 1; i+m-1 < n; i++ {
		if sorted[i+m-1]-sorted[i] < high-low {
			low, high = sorted[i], sorted[i+m-1]
		}
	}
	return low, high
}

// mcError estimates the Monte-Carlo standard error of the posterior mean
// with the batch-means method.
func mcError(xs []float64) float64 {
	numBatches := 20
	if len(xs) < numBatches {
		numBatches = len(xs)
	}
	batchLen := len(xs) / numBatches
	means := []float64{}
	for b := 0; b < numBatches; b++ {
		means = append(means, stat.Mean(xs[b*batchLen:(b+1)*batchLen], nil))
	}
	if len(means) < 2 {
		return 0.0
	}
	return stat.StdDev(means, nil) / math.Sqrt(float64(len(means)))
}

// WriteSummaryTable renders posterior summaries as a table.
func WriteSummaryTable(w io.Writer, summaries []*VarSummary) {
	printer := message.NewPrinter(language.English)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Variable", "Samples", "Mean", "SD", "MC Error",
		"HPD 2.5%", "HPD 97.5%", "Q2.5", "Median", "Q97.5",
	})
	for _, s := range summaries {
		table.Append([]string{
			color.CyanString(s.Name),
			printer.Sprintf("%d", s.N),
			fmt.Sprintf("%.4g", s.Mean),
			fmt.Sprintf("%.4g", s.StdDev),
			fmt.Sprintf("%.4g", s.MCError),
			fmt.Sprintf("%.4g", s.HPDLow),
			fmt.Sprintf("%.4g", s.HPDHigh),
			fmt.Sprintf("%.4g", s.Quantiles[0]),
			fmt.Sprintf("%.4g", s.Quantiles[2]),
			fmt.Sprintf("%.4g", s.Quantiles[4]),
		})
	}
	table.Render()
}
