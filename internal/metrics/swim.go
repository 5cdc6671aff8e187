package metrics

import (
	"math"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

// NetDisplacement reports how far the hinge travels over a run. For the
// rigid scallop this should stay near zero over whole oscillation periods:
// a reciprocal stroke cannot swim.
type NetDisplacement struct {
	last float64
}

func NewNetDisplacement() *NetDisplacement { return &NetDisplacement{} }

func (m *NetDisplacement) Name() string { return "net_displacement" }

// Observe keeps the latest hinge position; runs start with the hinge at
// x = 0, so the last position is the net displacement.
func (m *NetDisplacement) Observe(rec scallop.Record) {
	m.last = rec.HingeX
}

func (m *NetDisplacement) Value() float64 { return m.last }

func (m *NetDisplacement) Reset() { m.last = 0 }

// MeanSpeed averages |U| over the run.
type MeanSpeed struct {
	total   float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(rec scallop.Record) {
	m.total += math.Abs(rec.Speed)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// PeakSpeed tracks the largest |U| seen.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (m *PeakSpeed) Name() string { return "peak_speed" }

func (m *PeakSpeed) Observe(rec scallop.Record) {
	if v := math.Abs(rec.Speed); v > m.peak {
		m.peak = v
	}
}

func (m *PeakSpeed) Value() float64 { return m.peak }

func (m *PeakSpeed) Reset() { m.peak = 0 }

// MaxResidual tracks the worst force-free residual across steps. Values
// beyond solver tolerance point at a broken assembly, not at physics.
type MaxResidual struct {
	max float64
}

func NewMaxResidual() *MaxResidual { return &MaxResidual{} }

func (m *MaxResidual) Name() string { return "max_force_residual" }

func (m *MaxResidual) Observe(rec scallop.Record) {
	if v := math.Abs(rec.Residual); v > m.max {
		m.max = v
	}
}

func (m *MaxResidual) Value() float64 { return m.max }

func (m *MaxResidual) Reset() { m.max = 0 }

// Default is the metric set attached to every stored run.
func Default() []scallop.Metric {
	return []scallop.Metric{
		NewNetDisplacement(),
		NewMeanSpeed(),
		NewPeakSpeed(),
		NewMaxResidual(),
	}
}
