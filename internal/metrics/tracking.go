package metrics

import (
	"math"

	"github.com/san-kum/thermosim/internal/thermo"
)

// TrackingError is the time-weighted mean distance from a target temperature.
type TrackingError struct {
	target  float64
	sum     float64
	elapsed float64
}

func NewTrackingError(target float64) *TrackingError {
	return &TrackingError{target: target}
}

func (e *TrackingError) Name() string { return "tracking_error" }

func (e *TrackingError) Observe(f thermo.Frame) {
	e.sum += math.Abs(f.Temperature-e.target) * f.Elapsed
	e.elapsed += f.Elapsed
}

func (e *TrackingError) Value() float64 {
	if e.elapsed == 0 {
		return 0
	}
	return e.sum / e.elapsed
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.elapsed = 0
}
