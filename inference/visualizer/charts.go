package visualizer

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const tracePlotRef = "trace-plots"
const posteriorRef = "posteriors"
const acfRef = "autocorrelation"
const graphRef = "model-graph"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Bayesim: Posterior Explorer</title>
  </head>
  <body>
    <h1>Bayesim: Posterior Explorer</h1>
    <ul>
    <li> <h3> <a href="/` + tracePlotRef + `"> Trace Plots </a> </h3> </li>
    <li> <h3> <a href="/` + posteriorRef + `"> Posterior Histograms </a> </h3> </li>
    <li> <h3> <a href="/` + acfRef + `"> Autocorrelation </a> </h3> </li>
    <li> <h3> <a href="/` + graphRef + `"> Model Graph </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, MainHtml)
}

// chartOptions produces the shared global options of a chart.
func chartOptions(title string, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertSeriesData converts a sample series to chart points.
func convertSeriesData(xs []float64) []opts.LineData {
	items := []opts.LineData{}
	for i, x := range xs {
		items = append(items, opts.LineData{Value: [2]float64{float64(i), x}})
	}
	return items
}

// newTraceChart creates a line chart for the sample series of a variable.
func newTraceChart(v *VarData) *charts.Line {
	chart := charts.NewLine()
	subtitle := fmt.Sprintf("mean %.4g, sd %.4g", v.Summary.Mean, v.Summary.StdDev)
	chart.SetGlobalOptions(chartOptions("Trace of "+v.Name, subtitle)...)
	chart.AddSeries(v.Name, convertSeriesData(v.Series))
	return chart
}

// renderTracePlots renders the sample series of all traced variables.
func renderTracePlots(w http.ResponseWriter, r *http.Request) {
	view := GetViewData()
	page := components.NewPage()
	for i := range view.Variables {
		page.AddCharts(newTraceChart(&view.Variables[i]))
	}
	page.Render(w)
}

// convertHistData converts histogram bins to chart bars.
func convertHistData(bins []HistBin) []opts.BarData {
	items := []opts.BarData{}
	for _, bin := range bins {
		items = append(items, opts.BarData{Value: bin.Count})
	}
	return items
}

// convertHistLabel produces the bin labels of a histogram.
func convertHistLabel(bins []HistBin) []string {
	items := []string{}
	for _, bin := range bins {
		items = append(items, fmt.Sprintf("%.4g", bin.Center))
	}
	return items
}

// newPosteriorChart creates a bar chart for the posterior histogram of a variable.
func newPosteriorChart(v *VarData) *charts.Bar {
	subtitle := fmt.Sprintf("95%% HPD [%.4g, %.4g]", v.Summary.HPDLow, v.Summary.HPDHigh)
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions("Posterior of "+v.Name, subtitle)...)
	bar.SetXAxis(convertHistLabel(v.Hist)).AddSeries(v.Name, convertHistData(v.Hist))
	return bar
}

// renderPosteriors renders the posterior histograms of all traced variables.
func renderPosteriors(w http.ResponseWriter, r *http.Request) {
	view := GetViewData()
	page := components.NewPage()
	for i := range view.Variables {
		page.AddCharts(newPosteriorChart(&view.Variables[i]))
	}
	page.Render(w)
}

// convertAcfData converts an autocorrelation function to chart points.
func convertAcfData(acf []float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for lag, c := range acf {
		items = append(items, opts.ScatterData{Value: [2]float64{float64(lag), c}, SymbolSize: 5})
	}
	return items
}

// renderAcf renders the autocorrelation of all traced variables.
func renderAcf(w http.ResponseWriter, r *http.Request) {
	view := GetViewData()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(chartOptions("Autocorrelation", "per traced variable")...)
	for i := range view.Variables {
		v := &view.Variables[i]
		scatter.AddSeries(v.Name, convertAcfData(v.Acf))
	}
	scatter.Render(w)
}

// FireUpWeb fires up a new web-server for posterior visualisation.
func FireUpWeb(addr string) {
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+tracePlotRef, renderTracePlots)
	http.HandleFunc("/"+posteriorRef, renderPosteriors)
	http.HandleFunc("/"+acfRef, renderAcf)
	http.HandleFunc("/"+graphRef, renderModelGraph)
	http.ListenAndServe(":"+addr, nil)
}
