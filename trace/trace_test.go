package trace

import (
	"math"
	"testing"
)

// newTestTrace produces a trace with two variables and n samples.
func newTestTrace(t *testing.T, n int) *Trace {
	tr := New("test-model", []string{"a", "b"})
	for i := 0; i < n; i++ {
		if err := tr.Append(map[string]float64{
			"a": float64(i),
			"b": float64(i) * 0.5,
		}); err != nil {
			t.Fatalf("cannot append sample. Error: %v", err)
		}
	}
	return tr
}

// TestTraceAppendGet checks recording and retrieval of sample series.
func TestTraceAppendGet(t *testing.T) {
	tr := newTestTrace(t, 100)
	if tr.Model() != "test-model" {
		t.Fatalf("wrong model name: %v", tr.Model())
	}
	if tr.Len() != 100 {
		t.Fatalf("wrong sample count: %v", tr.Len())
	}
	xs, err := tr.Get("a")
	if err != nil {
		t.Fatalf("cannot read series. Error: %v", err)
	}
	for i, x := range xs {
		if x != float64(i) {
			t.Fatalf("wrong sample %v: %v", i, x)
		}
	}
	if _, err := tr.Get("unknown"); err == nil {
		t.Fatalf("reading an unknown variable must fail")
	}
}

// TestTraceAppendMissingVariable checks that incomplete samples fail.
func TestTraceAppendMissingVariable(t *testing.T) {
	tr := New("test-model", []string{"a", "b"})
	if err := tr.Append(map[string]float64{"a": 1.0}); err == nil {
		t.Fatalf("appending an incomplete sample must fail")
	}
}

// TestTraceSlice checks thinned slicing of a sample series.
func TestTraceSlice(t *testing.T) {
	tr := newTestTrace(t, 100)
	xs, err := tr.Slice("a", 10, 50, 10)
	if err != nil {
		t.Fatalf("cannot slice series. Error: %v", err)
	}
	expected := []float64{10.0, 20.0, 30.0, 40.0}
	if len(xs) != len(expected) {
		t.Fatalf("wrong slice length: %v", len(xs))
	}
	for i, x := range xs {
		if x != expected[i] {
			t.Fatalf("wrong slice element %v: %v", i, x)
		}
	}

	// a negative stop selects the end of the series
	xs, err = tr.Slice("a", 90, -1, 1)
	if err != nil {
		t.Fatalf("cannot slice series. Error: %v", err)
	}
	if len(xs) != 10 || xs[9] != 99.0 {
		t.Fatalf("wrong tail slice: %v", xs)
	}

	if _, err := tr.Slice("a", -1, 10, 1); err == nil {
		t.Fatalf("negative start must fail")
	}
	if _, err := tr.Slice("a", 0, 10, 0); err == nil {
		t.Fatalf("zero step must fail")
	}
}

// checkTracesEqual compares two traces sample by sample.
func checkTracesEqual(t *testing.T, want *Trace, got *Trace) {
	if got.Model() != want.Model() {
		t.Fatalf("wrong model name: %v", got.Model())
	}
	if got.Len() != want.Len() {
		t.Fatalf("wrong sample count: %v", got.Len())
	}
	if len(got.Names()) != len(want.Names()) {
		t.Fatalf("wrong variable count: %v", got.Names())
	}
	for i, name := range want.Names() {
		if got.Names()[i] != name {
			t.Fatalf("wrong variable order: %v", got.Names())
		}
		ws, err := want.Get(name)
		if err != nil {
			t.Fatalf("cannot read series. Error: %v", err)
		}
		gs, err := got.Get(name)
		if err != nil {
			t.Fatalf("cannot read series. Error: %v", err)
		}
		for j := range ws {
			if math.Float64bits(ws[j]) != math.Float64bits(gs[j]) {
				t.Fatalf("sample %v of %v differs: %v != %v", j, name, gs[j], ws[j])
			}
		}
	}
}
