// Package sweep runs families of scallop simulations across a parameter
// range, one independent simulation per value.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/shiyuanhu/microalgal-swimming/internal/metrics"
	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

// Parameter names accepted by Apply.
const (
	ParamAmplitude = "amplitude"
	ParamTilt      = "tilt"
	ParamDelta     = "delta"
	ParamTau       = "tau"
)

// Apply returns base with the named parameter replaced.
func Apply(base scallop.Params, name string, value float64) (scallop.Params, error) {
	switch name {
	case ParamAmplitude:
		base.ThetaA = value
	case ParamTilt:
		base.Theta0 = value
	case ParamDelta:
		base.Delta = value
	case ParamTau:
		base.Tau = value
	default:
		return base, fmt.Errorf("sweep: unknown parameter %q", name)
	}
	return base, nil
}

// Point is the outcome of one sweep value.
type Point struct {
	Value   float64
	Metrics map[string]float64
	Err     error
}

// Run simulates one configuration per value, in parallel. Each simulation
// gets its own Scallop and metric set; results come back in value order.
// Individual failures are recorded per point rather than aborting the sweep.
func Run(ctx context.Context, base scallop.Params, name string, values []float64) ([]Point, error) {
	points := make([]Point, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		p, err := Apply(base, name, v)
		if err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(idx int, value float64, p scallop.Params) {
			defer wg.Done()

			points[idx] = Point{Value: value}

			sim, err := scallop.New(p)
			if err != nil {
				points[idx].Err = err
				return
			}
			for _, m := range metrics.Default() {
				sim.AddMetric(m)
			}

			result, err := sim.Run(ctx, nil)
			if err != nil {
				points[idx].Err = err
				return
			}
			points[idx].Metrics = result.Metrics
		}(i, v, p)
	}

	wg.Wait()
	return points, nil
}

// Span builds n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	values := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	return values
}
