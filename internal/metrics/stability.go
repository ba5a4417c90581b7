package metrics

import "github.com/san-kum/thermosim/internal/thermo"

// Stability is the fraction of frames with neither warning raised.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{
		name: "stability",
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f thermo.Frame) {
	s.samples++
	if f.FreezeWarning || f.BoilWarning {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
