package quad

import (
	"math"
	"testing"
)

func TestNewRuleInvalidOrder(t *testing.T) {
	for _, order := range []int{0, -1} {
		if _, err := NewRule(order); err == nil {
			t.Errorf("order %d: expected error, got nil", order)
		}
	}
}

func TestWeightsSumToIntervalLength(t *testing.T) {
	r, err := NewRule(6)
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}

	intervals := [][2]float64{
		{-0.5, -0.49},
		{-0.005, 0.005},
		{0.3, 0.9},
	}

	for _, iv := range intervals {
		_, w := r.Rescale(iv[0], iv[1])
		sum := 0.0
		for _, wk := range w {
			sum += wk
		}
		want := iv[1] - iv[0]
		if math.Abs(sum-want) > 1e-14 {
			t.Errorf("interval [%g,%g]: weights sum %.16f, want %.16f", iv[0], iv[1], sum, want)
		}
	}
}

func TestPolynomialExactness(t *testing.T) {
	// A 6-point rule is exact for polynomials up to degree 11.
	r, err := NewRule(6)
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}

	a, b := 0.2, 1.3
	nodes, w := r.Rescale(a, b)

	for deg := 0; deg <= 11; deg++ {
		got := 0.0
		for k := range nodes {
			got += w[k] * math.Pow(nodes[k], float64(deg))
		}
		p := float64(deg + 1)
		want := (math.Pow(b, p) - math.Pow(a, p)) / p
		if math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
			t.Errorf("degree %d: integral %.15f, want %.15f", deg, got, want)
		}
	}
}

func TestRescaleIntoMatchesRescale(t *testing.T) {
	r, err := NewRule(4)
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}

	n1, w1 := r.Rescale(-1.2, 0.7)

	n2 := make([]float64, r.Order())
	w2 := make([]float64, r.Order())
	r.RescaleInto(n2, w2, -1.2, 0.7)

	for k := range n1 {
		if n1[k] != n2[k] || w1[k] != w2[k] {
			t.Fatalf("node %d: Rescale and RescaleInto disagree", k)
		}
	}
}
