package visualizer

import (
	"math"

	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/trace"
)

// maxLagShown bounds the lags of the autocorrelation plots.
const maxLagShown = 50

// histogramBins is the bin count for posterior histograms of continuous
// variables; discrete variables are binned on the integer grid.
const histogramBins = 40

// ViewData contains the posterior data used for visualization.
type ViewData struct {
	Model     string     // name of the fitted model
	Variables []VarData  // per-variable view models
	Graph     *GraphData // model dependency graph (optional)
}

// VarData contains the view model of a single traced variable.
type VarData struct {
	Name    string                // variable name
	Series  []float64             // sample series of the first chain
	Hist    []HistBin             // pooled posterior histogram
	Acf     []float64             // autocorrelation of the first chain
	Summary *inference.VarSummary // posterior summary of the first chain
}

// HistBin is one bar of a posterior histogram.
type HistBin struct {
	Center float64 // bin center
	Count  int     // number of samples in the bin
}

// GraphData describes the model dependency graph.
type GraphData struct {
	Params         []string    // free parameter nodes
	Deterministics []string    // computed variable nodes
	Observations   []string    // observed data nodes
	Edges          []GraphEdge // parent-child edges
}

// GraphEdge is one parent-child edge of the dependency graph.
type GraphEdge struct {
	From string
	To   string
}

// view is the singleton of the viewing model.
var view ViewData

// GetViewData returns the pointer to the singleton.
func GetViewData() *ViewData {
	return &view
}

// PopulateViewData populates the viewing model from the traces of a fitting
// run. The model may be nil; the dependency graph page is omitted then.
func (v *ViewData) PopulateViewData(m *inference.Model, traces []*trace.Trace) error {
	if len(traces) == 0 {
		return nil
	}
	first := traces[0]
	v.Model = first.Model()
	v.Variables = nil
	for _, name := range first.Names() {
		series, err := first.Get(name)
		if err != nil {
			return err
		}
		pooled := []float64{}
		for _, t := range traces {
			xs, err := t.Get(name)
			if err != nil {
				return err
			}
			pooled = append(pooled, xs...)
		}
		summary, err := inference.Summarize(first, name)
		if err != nil {
			return err
		}
		v.Variables = append(v.Variables, VarData{
			Name:    name,
			Series:  series,
			Hist:    histogram(pooled),
			Acf:     inference.Autocorrelation(series, maxLagShown),
			Summary: summary,
		})
	}
	if m != nil {
		v.Graph = buildGraph(m)
	} else {
		v.Graph = nil
	}
	return nil
}

// buildGraph extracts the dependency graph from a model.
func buildGraph(m *inference.Model) *GraphData {
	g := &GraphData{}
	for _, p := range m.Params() {
		g.Params = append(g.Params, p.Name)
	}
	for _, d := range m.Deterministics() {
		g.Deterministics = append(g.Deterministics, d.Name)
		for _, parent := range d.Parents {
			g.Edges = append(g.Edges, GraphEdge{From: parent, To: d.Name})
		}
	}
	for _, o := range m.Observations() {
		g.Observations = append(g.Observations, o.Name)
		for _, parent := range o.Parents {
			g.Edges = append(g.Edges, GraphEdge{From: parent, To: o.Name})
		}
	}
	return g
}

// histogram bins the pooled samples of a variable. Series on the integer
// grid are binned per integer.
func histogram(xs []float64) []HistBin {
	if len(xs) == 0 {
		return nil
	}
	min, max := xs[0], xs[0]
	integral := true
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		if math.Floor(x) != x {
			integral = false
		}
	}

	if integral {
		counts := map[int]int{}
		for _, x := range xs {
			counts[int(x)]++
		}
		bins := []HistBin{}
		for i := int(min); i <= int(max); i++ {
			bins = append(bins, HistBin{Center: float64(i), Count: counts[i]})
		}
		return bins
	}

	width := (max - min) / float64(histogramBins)
	if width == 0.0 {
		return []HistBin{{Center: min, Count: len(xs)}}
	}
	counts := make([]int, histogramBins)
	for _, x := range xs {
		i := int((x - min) / width)
		if i >= histogramBins {
			i = histogramBins - 1
		}
		counts[i]++
	}
	bins := make([]HistBin, histogramBins)
	for i := range bins {
		bins[i] = HistBin{
			Center: min + (float64(i)+0.5)*width,
			Count:  counts[i],
		}
	}
	return bins
}
