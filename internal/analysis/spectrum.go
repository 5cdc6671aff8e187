// Package analysis provides frequency analysis of scallop velocity series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series using a
// radix-2 Cooley-Tukey recursion. The input length must be a power of two;
// use Pad first for arbitrary lengths.
func FFT(data []float64) []complex128 {
	x := make([]complex128, len(data))
	for i, v := range data {
		x[i] = complex(v, 0)
	}
	fftInPlace(x)
	return x
}

func fftInPlace(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	if n%2 != 0 {
		panic("analysis: fft requires power-of-2 length")
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	fftInPlace(even)
	fftInPlace(odd)

	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		x[k] = even[k] + w*odd[k]
		x[k+n/2] = even[k] - w*odd[k]
	}
}

// Pad zero-extends data to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns |FFT| for the non-negative frequencies of a real
// series, padding to a power of two as needed.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(Pad(data))
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC peak of a power spectrum,
// in cycles per time unit given the sampling interval dt and the padded
// series length n. Returns 0 for degenerate input.
func DominantFrequency(ps []float64, n int, dt float64) float64 {
	if len(ps) < 2 || n <= 0 || dt <= 0 {
		return 0
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	return float64(maxIdx) / (float64(n) * dt)
}
