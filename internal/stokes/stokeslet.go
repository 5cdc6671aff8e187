package stokes

import "math"

const oneOver8Pi = 1.0 / (8.0 * math.Pi)

// Block is a 3x3 kernel block in row-major order.
type Block [3][3]float64

// Reg evaluates the regularized Stokeslet for a single source point:
//
//	G_ij = [ (|r|^2 + 2d^2)/|r|_d^3 ] d_ij + r_i r_j / |r|_d^3,  all over 8 pi,
//
// where r = target - source and |r|_d = sqrt(|r|^2 + delta^2). The
// regularization keeps the kernel finite for coincident points, so any
// source/target pair is valid as long as delta > 0.
func Reg(target, source [3]float64, delta float64) Block {
	var r [3]float64
	r2 := 0.0
	for c := 0; c < 3; c++ {
		r[c] = target[c] - source[c]
		r2 += r[c] * r[c]
	}

	reg := math.Sqrt(r2 + delta*delta)
	inv3 := 1.0 / (reg * reg * reg)
	diag := (r2 + 2*delta*delta) * inv3

	var g Block
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := r[i] * r[j] * inv3
			if i == j {
				v += diag
			}
			g[i][j] = v * oneOver8Pi
		}
	}
	return g
}

// WeightedSum accumulates the quadrature-weighted kernel over a set of
// source points: sum_k w[k] * G(target - src[k]; delta). Sources and weights
// must have equal length.
func WeightedSum(target [3]float64, sources [][3]float64, weights []float64, delta float64) Block {
	var sum Block
	d2 := delta * delta

	for k, src := range sources {
		var r [3]float64
		r2 := 0.0
		for c := 0; c < 3; c++ {
			r[c] = target[c] - src[c]
			r2 += r[c] * r[c]
		}

		reg := math.Sqrt(r2 + d2)
		inv3 := weights[k] / (reg * reg * reg)
		diag := (r2 + 2*d2) * inv3

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				sum[i][j] += r[i] * r[j] * inv3
			}
			sum[i][i] += diag
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum[i][j] *= oneOver8Pi
		}
	}
	return sum
}
