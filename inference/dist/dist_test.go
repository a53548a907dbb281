package dist

import (
	"math"
	"testing"
)

// TestDiscreteUniformLogProb checks the log probability over and outside the support.
func TestDiscreteUniformLogProb(t *testing.T) {
	d := DiscreteUniform{Min: 0, Max: 9}
	expected := -math.Log(10.0)
	for x := 0; x < 10; x++ {
		if p := d.LogProb(float64(x)); math.Abs(p-expected) > 1e-12 {
			t.Fatalf("wrong log probability for %v; expected %v, got %v", x, expected, p)
		}
	}
	if p := d.LogProb(-1.0); !math.IsInf(p, -1) {
		t.Fatalf("value below support must have zero probability; got %v", p)
	}
	if p := d.LogProb(10.0); !math.IsInf(p, -1) {
		t.Fatalf("value above support must have zero probability; got %v", p)
	}
	if p := d.LogProb(0.5); !math.IsInf(p, -1) {
		t.Fatalf("non-integral value must have zero probability; got %v", p)
	}
}

// TestDiscreteUniformQuantile checks that quantiles stay on the integer support.
func TestDiscreteUniformQuantile(t *testing.T) {
	d := DiscreteUniform{Min: 5, Max: 14}
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100.0
		x := d.Quantile(p)
		if x < d.Min || x > d.Max {
			t.Fatalf("quantile %v out of support: %v", p, x)
		}
		if math.Floor(x) != x {
			t.Fatalf("quantile %v is not integral: %v", p, x)
		}
	}
	if x := d.Quantile(0.0); x != 5.0 {
		t.Fatalf("expected lowest support value; got %v", x)
	}
	if x := d.Quantile(1.0); x != 14.0 {
		t.Fatalf("expected highest support value; got %v", x)
	}
}
