package metrics

import (
	"math"

	"github.com/san-kum/thermosim/internal/thermo"
)

type PeakTemperature struct {
	peak    float64
	samples int
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{peak: math.Inf(-1)}
}

func (p *PeakTemperature) Name() string { return "peak_temperature" }

func (p *PeakTemperature) Observe(f thermo.Frame) {
	p.peak = math.Max(p.peak, f.Temperature)
	p.samples++
}

func (p *PeakTemperature) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.peak
}

func (p *PeakTemperature) Reset() {
	p.peak = math.Inf(-1)
	p.samples = 0
}

// PeakParticles is the largest number of live bubbles and steam seen in one frame.
type PeakParticles struct {
	peak int
}

func NewPeakParticles() *PeakParticles {
	return &PeakParticles{}
}

func (p *PeakParticles) Name() string { return "peak_particles" }

func (p *PeakParticles) Observe(f thermo.Frame) {
	if n := f.BubbleCount + f.SteamCount; n > p.peak {
		p.peak = n
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }

func (p *PeakParticles) Reset() { p.peak = 0 }
