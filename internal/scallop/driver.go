package scallop

import (
	"context"
	"fmt"
	"io"
)

type flusher interface {
	Flush() error
}

func (s *Scallop) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Scallop) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run marches the simulation until the configured duration is reached,
// appending one line per step to out in the form
//
//	t U x_hinge  ->  "%.5f %.10f %.10f"
//
// and flushing after every step so partial results survive interruption.
// out may be nil to run without persistence. On cancellation or a step
// failure the rows recorded so far are returned alongside the error.
func (s *Scallop) Run(ctx context.Context, out io.Writer) (*Result, error) {
	result := &Result{Metrics: make(map[string]float64)}

	for _, m := range s.metrics {
		m.Reset()
	}

	for s.t < s.p.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			return result, err
		}

		if out != nil {
			if _, err := fmt.Fprintf(out, "%.5f %.10f %.10f\n", s.t, s.u, s.xHinge); err != nil {
				return result, fmt.Errorf("write output: %w", err)
			}
			if f, ok := out.(flusher); ok {
				if err := f.Flush(); err != nil {
					return result, fmt.Errorf("flush output: %w", err)
				}
			}
		}

		rec := Record{
			Step:     s.step,
			Time:     s.t,
			Speed:    s.u,
			HingeX:   s.xHinge,
			Residual: s.ForceResidual(),
		}
		for _, m := range s.metrics {
			m.Observe(rec)
		}
		for _, o := range s.observers {
			o.OnStep(rec)
		}

		result.Times = append(result.Times, s.t)
		result.Speeds = append(result.Speeds, s.u)
		result.HingeX = append(result.HingeX, s.xHinge)
		result.StepsTaken++

		s.advance()
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
