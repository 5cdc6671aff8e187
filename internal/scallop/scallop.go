package scallop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/shiyuanhu/microalgal-swimming/internal/quad"
	"github.com/shiyuanhu/microalgal-swimming/internal/stokes"
)

// Scallop is the two-filament scallop model: two rigid rods hinged on a
// shared pivot, oscillating in antiphase with a prescribed rotation. Each
// step solves a dense regularized-Stokeslet system for the force densities
// of filament 1 together with the force-free rigid translation speed of the
// hinge; filament 2's force density is the y-mirror of filament 1's by the
// antisymmetry of the configuration, which halves the unknown count. That
// reduction is valid only for exactly this two-filament antiphase geometry.
//
// A Scallop is not safe for concurrent use.
type Scallop struct {
	p Params

	ds   float64   // element length L/N
	s    []float64 // element edges on [-L/2, L/2], N+1 entries
	sMid []float64 // element midpoints, N entries

	rule *quad.Rule

	theta1, theta1Dot float64
	theta2, theta2Dot float64
	tang1, tang2      [3]float64
	hinge1, hinge2    [3]float64
	r1, r2            [][3]float64 // element midpoint positions

	lhs *mat.Dense
	rhs *mat.VecDense
	sol *mat.VecDense

	// quadrature scratch, reused across all element pairs
	qpos     [][3]float64
	qnodes   []float64
	qweights []float64

	metrics   []Metric
	observers []Observer

	t      float64
	xHinge float64
	u      float64
	step   int
}

// New validates p and constructs a scallop at t=0 with the hinge at x=0.
func New(p Params) (*Scallop, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rule, err := quad.NewRule(p.Nfine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	size := 3*p.N + 1
	s := &Scallop{
		p:        p,
		ds:       p.L / float64(p.N),
		s:        make([]float64, p.N+1),
		sMid:     make([]float64, p.N),
		rule:     rule,
		hinge1:   [3]float64{0, 5 * p.Delta, 0},
		hinge2:   [3]float64{0, -5 * p.Delta, 0},
		r1:       make([][3]float64, p.N),
		r2:       make([][3]float64, p.N),
		lhs:      mat.NewDense(size, size, nil),
		rhs:      mat.NewVecDense(size, nil),
		sol:      mat.NewVecDense(size, nil),
		qpos:     make([][3]float64, p.Nfine),
		qnodes:   make([]float64, p.Nfine),
		qweights: make([]float64, p.Nfine),
	}

	floats.Span(s.s, -p.L/2, p.L/2)
	for i := 0; i < p.N; i++ {
		s.sMid[i] = 0.5 * (s.s[i] + s.s[i+1])
	}

	s.updateGeometry()
	return s, nil
}

func (s *Scallop) Params() Params   { return s.p }
func (s *Scallop) Time() float64    { return s.t }
func (s *Scallop) Speed() float64   { return s.u }
func (s *Scallop) HingeX() float64  { return s.xHinge }
func (s *Scallop) Theta1() float64  { return s.theta1 }
func (s *Scallop) Theta2() float64  { return s.theta2 }
func (s *Scallop) StepCount() int   { return s.step }

// Forces returns a copy of the solved force densities of filament 1,
// 3 components per element.
func (s *Scallop) Forces() []float64 {
	f := make([]float64, 3*s.p.N)
	copy(f, s.sol.RawVector().Data[:3*s.p.N])
	return f
}

// ForceResidual is sum(ds * f_x) over filament 1's elements for the last
// solve. The closure row of the system drives it to zero; anything beyond
// solver tolerance signals a broken assembly.
func (s *Scallop) ForceResidual() float64 {
	res := 0.0
	for i := 0; i < s.p.N; i++ {
		res += s.ds * s.sol.AtVec(3*i)
	}
	return res
}

// updateGeometry evaluates the prescribed angles at the current time and
// rebuilds tangents, hinge anchors and element midpoints. Filament 2 is the
// exact negation of filament 1 by construction.
func (s *Scallop) updateGeometry() {
	omega := 2 * math.Pi / s.p.Tau
	sinwt, coswt := math.Sincos(omega * s.t)

	s.theta1 = s.p.ThetaA*sinwt + s.p.Theta0
	s.theta1Dot = s.p.ThetaA * omega * coswt
	s.theta2 = -s.theta1
	s.theta2Dot = -s.theta1Dot

	sin1, cos1 := math.Sincos(s.theta1)
	sin2, cos2 := math.Sincos(s.theta2)
	s.tang1 = [3]float64{cos1, sin1, 0}
	s.tang2 = [3]float64{cos2, sin2, 0}

	s.hinge1[0] = s.xHinge
	s.hinge2[0] = s.xHinge

	for i := 0; i < s.p.N; i++ {
		arc := s.sMid[i] + s.p.L/2
		for c := 0; c < 3; c++ {
			s.r1[i][c] = s.hinge1[c] + arc*s.tang1[c]
			s.r2[i][c] = s.hinge2[c] + arc*s.tang2[c]
		}
	}
}

// samplePoints fills the quadrature scratch with the Gauss-Legendre sample
// positions and weights for one element of one filament.
func (s *Scallop) samplePoints(elem, filament int) {
	s.rule.RescaleInto(s.qnodes, s.qweights, s.s[elem], s.s[elem+1])

	hinge, tang := s.hinge1, s.tang1
	if filament == 2 {
		hinge, tang = s.hinge2, s.tang2
	}

	for k := range s.qnodes {
		arc := s.qnodes[k] + s.p.L/2
		for c := 0; c < 3; c++ {
			s.qpos[k][c] = hinge[c] + arc*tang[c]
		}
	}
}

// assemble rebuilds the (3N+1) x (3N+1) system from scratch. Rod rotation
// changes every pairwise kernel value, so nothing from the previous step can
// be reused.
func (s *Scallop) assemble() {
	s.lhs.Zero()
	s.rhs.Zero()

	n := s.p.N
	for i := 0; i < n; i++ {
		target := s.r1[i]

		for j := 0; j < n; j++ {
			s.samplePoints(j, 1)
			self := stokes.WeightedSum(target, s.qpos, s.qweights, s.p.Delta)

			s.samplePoints(j, 2)
			cross := stokes.WeightedSum(target, s.qpos, s.qweights, s.p.Delta)

			// Cross contribution is post-multiplied by diag(1,-1,1): the
			// mirror relation maps filament 1's unknowns onto filament 2's
			// force density, flipping the y-component.
			for a := 0; a < 3; a++ {
				row := 3*i + a
				s.lhs.Set(row, 3*j, self[a][0]+cross[a][0])
				s.lhs.Set(row, 3*j+1, self[a][1]-cross[a][1])
				s.lhs.Set(row, 3*j+2, self[a][2]+cross[a][2])
			}
		}

		// No-slip: fluid velocity at the midpoint equals the prescribed
		// rotational velocity, perpendicular to the tangent.
		vRot := (s.sMid[i] + s.p.L/2) * s.theta1Dot
		sin1, cos1 := math.Sincos(s.theta1)
		s.rhs.SetVec(3*i, -sin1*vRot)
		s.rhs.SetVec(3*i+1, cos1*vRot)

		// Each x-equation couples to the unknown translation speed.
		s.lhs.Set(3*i, 3*n, -1)

		// Closure: net x-force on the combined body vanishes.
		s.lhs.Set(3*n, 3*i, s.ds)
	}
}

// solveSystem performs the dense direct solve and advances the hinge by one
// explicit Euler step. A singular or ill-conditioned matrix is fatal.
func (s *Scallop) solveSystem() error {
	if err := s.sol.SolveVec(s.lhs, s.rhs); err != nil {
		return fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	s.u = s.sol.AtVec(3 * s.p.N)
	s.xHinge += s.u * s.p.Dt
	return nil
}

// Step executes one time step at the current time: geometry update, full
// system rebuild, one direct solve, hinge update. Time advances separately
// via advance, so the step's output is stamped with the time it was solved at.
func (s *Scallop) Step() error {
	s.updateGeometry()
	s.assemble()
	if err := s.solveSystem(); err != nil {
		return &StepError{Step: s.step, Time: s.t, Err: err}
	}
	return nil
}

func (s *Scallop) advance() {
	s.t += s.p.Dt
	s.step++
}

// Tick is Step followed by the time advance, for callers driving the model
// outside Run (the live view).
func (s *Scallop) Tick() error {
	if err := s.Step(); err != nil {
		return err
	}
	s.advance()
	return nil
}
