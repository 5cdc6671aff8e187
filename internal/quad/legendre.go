package quad

import (
	"fmt"

	gquad "gonum.org/v1/gonum/integrate/quad"
)

// Rule holds a canonical Gauss-Legendre node/weight table on [-1, 1] for a
// fixed order. The table is computed once at construction and never mutated;
// per-segment rules are obtained by affine rescaling.
type Rule struct {
	order   int
	nodes   []float64
	weights []float64
}

// NewRule computes the canonical table for the given quadrature order.
// The resulting rule integrates polynomials up to degree 2*order-1 exactly.
func NewRule(order int) (*Rule, error) {
	if order <= 0 {
		return nil, fmt.Errorf("quad: order must be positive, got %d", order)
	}

	r := &Rule{
		order:   order,
		nodes:   make([]float64, order),
		weights: make([]float64, order),
	}
	gquad.Legendre{}.FixedLocations(r.nodes, r.weights, -1, 1)

	return r, nil
}

func (r *Rule) Order() int { return r.order }

// Rescale maps the canonical table onto [a, b].
func (r *Rule) Rescale(a, b float64) (nodes, weights []float64) {
	nodes = make([]float64, r.order)
	weights = make([]float64, r.order)
	r.RescaleInto(nodes, weights, a, b)
	return nodes, weights
}

// RescaleInto maps the canonical table onto [a, b] without allocating.
// nodes and weights must have length Order.
func (r *Rule) RescaleInto(nodes, weights []float64, a, b float64) {
	half := 0.5 * (b - a)
	mid := 0.5 * (b + a)
	for k := 0; k < r.order; k++ {
		nodes[k] = half*r.nodes[k] + mid
		weights[k] = half * r.weights[k]
	}
}
