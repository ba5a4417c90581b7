package metrics

import "github.com/san-kum/thermosim/internal/thermo"

// RegimeTime accumulates simulated seconds spent in one phase regime.
type RegimeTime struct {
	regime  thermo.Regime
	seconds float64
}

func NewRegimeTime(r thermo.Regime) *RegimeTime {
	return &RegimeTime{regime: r}
}

func (r *RegimeTime) Name() string { return r.regime.String() + "_seconds" }

func (r *RegimeTime) Observe(f thermo.Frame) {
	if f.Visual.Regime == r.regime {
		r.seconds += f.Elapsed
	}
}

func (r *RegimeTime) Value() float64 { return r.seconds }

func (r *RegimeTime) Reset() { r.seconds = 0 }

// Default returns the metric set used for headless runs.
func Default() []thermo.Metric {
	return []thermo.Metric{
		NewPeakTemperature(),
		NewPeakParticles(),
		NewRegimeTime(thermo.Frozen),
		NewRegimeTime(thermo.Boiling),
		NewStability(),
		NewControlEffort(),
		NewWork(),
		NewEntropyDrift(),
	}
}
