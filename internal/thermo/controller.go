package thermo

import "math"

// Advance integrates temperature over elapsed seconds. Heating is checked
// before cooling; ambient drift applies only when neither is set. The result
// is always inside [MinTemp, MaxTemp].
func Advance(s *State, elapsed float64, c Constants) {
	frames := c.Frames(elapsed)
	t := s.Temperature

	switch {
	case s.Heating:
		t += c.HeatRate * frames
		if t > c.BubbleThreshold {
			t += c.PhaseAcceleration * frames
		}
	case s.Cooling:
		t -= c.CoolRate * frames
		if t < c.FreezingPoint+10 {
			t -= c.PhaseAcceleration * frames
		}
	default:
		diff := t - c.Ambient
		if math.Abs(diff) > c.AmbientBand {
			step := c.AmbientCooling * frames
			// never overshoot the ambient point
			if step > math.Abs(diff) {
				step = math.Abs(diff)
			}
			if diff > 0 {
				t -= step
			} else {
				t += step
			}
		}
	}

	s.Temperature = c.Clamp(t)
}
