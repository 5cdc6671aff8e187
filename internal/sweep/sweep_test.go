package sweep

import (
	"context"
	"testing"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

func baseParams() scallop.Params {
	return scallop.Params{
		ThetaA: 1.0, Theta0: 1.0, N: 10, L: 1.0,
		Dt: 0.002, Duration: 0.006, Tau: 1.0, Delta: 0.01, Nfine: 4,
	}
}

func TestApply(t *testing.T) {
	p, err := Apply(baseParams(), ParamAmplitude, 0.5)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if p.ThetaA != 0.5 {
		t.Errorf("expected amplitude 0.5, got %f", p.ThetaA)
	}

	if _, err := Apply(baseParams(), "viscosity", 1.0); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSpan(t *testing.T) {
	values := Span(0, 1, 5)
	if len(values) != 5 {
		t.Fatalf("expected 5 values, got %d", len(values))
	}
	if values[0] != 0 || values[4] != 1 {
		t.Errorf("unexpected endpoints: %v", values)
	}
	if values[2] != 0.5 {
		t.Errorf("expected midpoint 0.5, got %f", values[2])
	}

	if got := Span(2, 3, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("single-value span: got %v", got)
	}
}

func TestRunSweep(t *testing.T) {
	points, err := Run(context.Background(), baseParams(), ParamAmplitude, []float64{0.0, 0.5, 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	for i, pt := range points {
		if pt.Err != nil {
			t.Errorf("point %d: unexpected error %v", i, pt.Err)
			continue
		}
		if pt.Metrics == nil {
			t.Errorf("point %d: missing metrics", i)
		}
	}

	// Zero amplitude cannot move the hinge.
	if v := points[0].Metrics["peak_speed"]; v > 1e-12 {
		t.Errorf("zero amplitude produced peak speed %g", v)
	}
}

func TestRunSweepRecordsPerPointFailures(t *testing.T) {
	base := baseParams()
	points, err := Run(context.Background(), base, ParamDelta, []float64{0.01, -1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if points[0].Err != nil {
		t.Errorf("valid point failed: %v", points[0].Err)
	}
	if points[1].Err == nil {
		t.Error("expected invalid delta to fail its point")
	}
}
