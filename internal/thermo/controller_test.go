package thermo

import (
	"math"
	"testing"
)

const nominalTick = 1.0 / 60

func TestAdvance_Heating(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name     string
		start    float64
		elapsed  float64
		expected float64
	}{
		{"below threshold", 20, nominalTick, 20.35},
		{"above threshold accelerates", 80, nominalTick, 80.40},
		{"one second", 20, 1, 41},
		{"clamped at ceiling", 119.9, 1, 120},
		{"zero elapsed", 50, 0, 50},
		{"negative elapsed", 50, -1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(c, tt.start)
			s.Heating = true
			Advance(s, tt.elapsed, c)
			if math.Abs(s.Temperature-tt.expected) > 1e-9 {
				t.Errorf("expected %.4f, got %.4f", tt.expected, s.Temperature)
			}
		})
	}
}

func TestAdvance_Cooling(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name     string
		start    float64
		elapsed  float64
		expected float64
	}{
		{"above freeze band", 50, nominalTick, 49.65},
		{"inside freeze band accelerates", 5, nominalTick, 4.60},
		{"clamped at floor", -19.9, 1, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(c, tt.start)
			s.Cooling = true
			Advance(s, tt.elapsed, c)
			if math.Abs(s.Temperature-tt.expected) > 1e-9 {
				t.Errorf("expected %.4f, got %.4f", tt.expected, s.Temperature)
			}
		})
	}
}

func TestAdvance_HeatingWinsOverCooling(t *testing.T) {
	c := DefaultConstants()
	s := NewState(c, 40)
	s.Heating, s.Cooling = true, true

	Advance(s, nominalTick, c)

	if s.Temperature <= 40 {
		t.Errorf("expected heating to apply, got %.4f", s.Temperature)
	}
}

func TestAdvance_IdleDrift(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name     string
		start    float64
		expected float64
	}{
		{"hot drifts down", 50, 49.95},
		{"cold drifts up", -10, -9.95},
		{"inside band holds", 20.4, 20.4},
		{"ambient holds", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(c, tt.start)
			Advance(s, nominalTick, c)
			if math.Abs(s.Temperature-tt.expected) > 1e-9 {
				t.Errorf("expected %.4f, got %.4f", tt.expected, s.Temperature)
			}
		})
	}
}

func TestAdvance_IdleDoesNotOvershoot(t *testing.T) {
	c := DefaultConstants()
	s := NewState(c, 21)

	Advance(s, 60, c)

	if s.Temperature != c.Ambient {
		t.Errorf("expected drift to stop at ambient, got %.4f", s.Temperature)
	}
}

func TestAdvance_AmbientFixedPoint(t *testing.T) {
	c := DefaultConstants()
	s := NewState(c, 20)

	for i := 0; i < 10000; i++ {
		Advance(s, nominalTick, c)
	}

	if s.Temperature != 20 {
		t.Errorf("ambient should be a fixed point, got %.6f", s.Temperature)
	}
}

func TestAdvance_BoundsAndMonotonicity(t *testing.T) {
	c := DefaultConstants()
	elapsed := []float64{0, 0.001, nominalTick, 0.1, 1, 5}

	for temp := c.MinTemp; temp <= c.MaxTemp; temp += 2.5 {
		for _, dt := range elapsed {
			heat := NewState(c, temp)
			heat.Heating = true
			Advance(heat, dt, c)
			if heat.Temperature < temp || heat.Temperature > c.MaxTemp {
				t.Errorf("heating from %.1f over %.3fs gave %.4f", temp, dt, heat.Temperature)
			}

			cool := NewState(c, temp)
			cool.Cooling = true
			Advance(cool, dt, c)
			if cool.Temperature > temp || cool.Temperature < c.MinTemp {
				t.Errorf("cooling from %.1f over %.3fs gave %.4f", temp, dt, cool.Temperature)
			}

			idle := NewState(c, temp)
			Advance(idle, dt, c)
			if idle.Temperature < c.MinTemp || idle.Temperature > c.MaxTemp {
				t.Errorf("idle from %.1f over %.3fs left bounds: %.4f", temp, dt, idle.Temperature)
			}
		}
	}
}

func TestAdvance_FrameRateIndependent(t *testing.T) {
	c := DefaultConstants()

	fast := NewState(c, 30)
	fast.Heating = true
	for i := 0; i < 120; i++ {
		Advance(fast, 1.0/120, c)
	}

	slow := NewState(c, 30)
	slow.Heating = true
	for i := 0; i < 30; i++ {
		Advance(slow, 1.0/30, c)
	}

	if math.Abs(fast.Temperature-slow.Temperature) > 1e-6 {
		t.Errorf("120 fps gave %.6f, 30 fps gave %.6f", fast.Temperature, slow.Temperature)
	}
}
