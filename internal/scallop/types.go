package scallop

import "fmt"

// Params are the construction parameters of a scallop run. All lengths share
// one length unit; angles are in radians.
type Params struct {
	ThetaA   float64 // oscillation amplitude
	Theta0   float64 // tilt angle
	N        int     // boundary elements per filament
	L        float64 // filament length
	Dt       float64 // time step
	Duration float64 // total simulated time
	Tau      float64 // oscillation period
	Delta    float64 // regularization length
	Nfine    int     // Gauss-Legendre points per element
}

// Validate rejects parameter sets that cannot produce a meaningful run.
// It is called before the first step; a failure here never reaches the solver.
func (p Params) Validate() error {
	switch {
	case p.N <= 0:
		return fmt.Errorf("%w: segment count must be positive, got %d", ErrInvalidParams, p.N)
	case p.L <= 0:
		return fmt.Errorf("%w: filament length must be positive, got %g", ErrInvalidParams, p.L)
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParams, p.Dt)
	case p.Duration < p.Dt:
		return fmt.Errorf("%w: duration %g is shorter than dt %g", ErrInvalidParams, p.Duration, p.Dt)
	case p.Tau <= 0:
		return fmt.Errorf("%w: oscillation period must be positive, got %g", ErrInvalidParams, p.Tau)
	case p.Delta <= 0:
		return fmt.Errorf("%w: regularization length must be positive, got %g", ErrInvalidParams, p.Delta)
	case p.Nfine <= 0:
		return fmt.Errorf("%w: quadrature order must be positive, got %d", ErrInvalidParams, p.Nfine)
	}
	return nil
}

// Record is one solved time step as seen by metrics and observers.
type Record struct {
	Step     int
	Time     float64
	Speed    float64 // rigid-body translation speed U
	HingeX   float64 // hinge x-position after the Euler update
	Residual float64 // force-free residual sum(ds * f_x)
}

type Metric interface {
	Name() string
	Observe(rec Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(rec Record)
}

// Result collects the time series of a completed (or interrupted) run.
type Result struct {
	Times      []float64
	Speeds     []float64
	HingeX     []float64
	Metrics    map[string]float64
	StepsTaken int
}
