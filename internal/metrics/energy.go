package metrics

import (
	"math"

	"github.com/san-kum/thermosim/internal/thermo"
)

// Work averages the displayed work quantity over all observed frames.
type Work struct {
	name    string
	samples int
	total   float64
}

func NewWork() *Work {
	return &Work{name: "mean_work"}
}

func (w *Work) Name() string { return w.name }

func (w *Work) Observe(f thermo.Frame) {
	w.total += f.Readings.Work
	w.samples++
}

func (w *Work) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return w.total / float64(w.samples)
}

func (w *Work) Reset() {
	w.total = 0
	w.samples = 0
}

// EntropyDrift tracks the largest entropy change from ambient seen so far.
type EntropyDrift struct {
	name     string
	maxDrift float64
}

func NewEntropyDrift() *EntropyDrift {
	return &EntropyDrift{name: "entropy_drift"}
}

func (e *EntropyDrift) Name() string { return e.name }

func (e *EntropyDrift) Observe(f thermo.Frame) {
	e.maxDrift = math.Max(e.maxDrift, math.Abs(f.Readings.EntropyChange))
}

func (e *EntropyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EntropyDrift) Reset() {
	e.maxDrift = 0
}
