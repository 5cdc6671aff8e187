package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	f := FFT(data)

	if math.Abs(real(f[0])-4) > 1e-12 {
		t.Errorf("DC bin: expected 4, got %v", f[0])
	}
	for i := 1; i < len(f); i++ {
		if math.Hypot(real(f[i]), imag(f[i])) > 1e-12 {
			t.Errorf("bin %d: expected 0, got %v", i, f[i])
		}
	}
}

func TestPad(t *testing.T) {
	padded := Pad(make([]float64, 5))
	if len(padded) != 8 {
		t.Errorf("expected length 8, got %d", len(padded))
	}

	same := make([]float64, 16)
	if len(Pad(same)) != 16 {
		t.Error("power-of-two input should not grow")
	}
}

func TestDominantFrequencyOfSine(t *testing.T) {
	// 4 Hz sine sampled at 128 Hz over one second.
	n := 128
	dt := 1.0 / 128.0
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	freq := DominantFrequency(ps, n, dt)

	if math.Abs(freq-4.0) > 0.5 {
		t.Errorf("expected dominant frequency ~4 Hz, got %f", freq)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency(nil, 0, 0); f != 0 {
		t.Errorf("expected 0 for degenerate input, got %f", f)
	}
	if f := DominantFrequency([]float64{1, 0, 0}, 8, -1); f != 0 {
		t.Errorf("expected 0 for negative dt, got %f", f)
	}
}
