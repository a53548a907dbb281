package inference

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/bayesim-dev/bayesim/trace"
)

// newUniformTrace produces a trace of a single variable holding an
// equidistant grid on [0, 1].
func newUniformTrace(t *testing.T, n int) *trace.Trace {
	tr := trace.New("test", []string{"x"})
	for i := 0; i < n; i++ {
		if err := tr.Append(map[string]float64{"x": float64(i) / float64(n-1)}); err != nil {
			t.Fatalf("cannot append sample. Error: %v", err)
		}
	}
	return tr
}

// TestSummarizeMoments checks mean and standard deviation of the summary.
func TestSummarizeMoments(t *testing.T) {
	tr := newUniformTrace(t, 1001)
	s, err := Summarize(tr, "x")
	if err != nil {
		t.Fatalf("cannot summarize. Error: %v", err)
	}
	if math.Abs(s.Mean-0.5) > 1e-9 {
		t.Fatalf("wrong mean; expected 0.5, got %v", s.Mean)
	}
	// standard deviation of the uniform distribution
	if math.Abs(s.StdDev-math.Sqrt(1.0/12.0)) > 1e-2 {
		t.Fatalf("wrong standard deviation; got %v", s.StdDev)
	}
	if s.N != 1001 {
		t.Fatalf("wrong sample count; got %v", s.N)
	}
	if math.Abs(s.Quantiles[2]-0.5) > 1e-2 {
		t.Fatalf("wrong median; got %v", s.Quantiles[2])
	}
}

// TestSummarizeHPD checks the highest posterior density interval of an
// equidistant grid, which must cover 95% of the range.
func TestSummarizeHPD(t *testing.T) {
	tr := newUniformTrace(t, 1001)
	s, err := Summarize(tr, "x")
	if err != nil {
		t.Fatalf("cannot summarize. Error: %v", err)
	}
	if s.HPDHigh-s.HPDLow < 0.93 || s.HPDHigh-s.HPDLow > 0.97 {
		t.Fatalf("wrong HPD interval: [%v, %v]", s.HPDLow, s.HPDHigh)
	}
	if s.HPDLow < 0.0 || s.HPDHigh > 1.0 {
		t.Fatalf("HPD interval outside the sample range: [%v, %v]", s.HPDLow, s.HPDHigh)
	}
}

// TestSummarizeUnknownVariable checks the error path.
func TestSummarizeUnknownVariable(t *testing.T) {
	tr := newUniformTrace(t, 10)
	if _, err := Summarize(tr, "unknown"); err == nil {
		t.Fatalf("summary of an unknown variable must fail")
	}
}

// TestWriteSummaryTable checks that the rendered table carries the header
// and one row per variable.
func TestWriteSummaryTable(t *testing.T) {
	tr := newUniformTrace(t, 101)
	summaries, err := SummarizeTrace(tr)
	if err != nil {
		t.Fatalf("cannot summarize trace. Error: %v", err)
	}
	var buf bytes.Buffer
	WriteSummaryTable(&buf, summaries)
	out := buf.String()
	if !strings.Contains(out, "MEAN") && !strings.Contains(out, "Mean") {
		t.Fatalf("rendered table misses the header: %v", out)
	}
	if !strings.Contains(out, "x") {
		t.Fatalf("rendered table misses the variable row: %v", out)
	}
}
