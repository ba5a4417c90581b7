package thermo

import (
	"math"
	"testing"
)

func TestRenderPhase_Regimes(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		temp     float64
		expected Regime
	}{
		{-20, Frozen},
		{0, Frozen},
		{0.01, Normal},
		{20, Normal},
		{99.99, Normal},
		{100, Boiling},
		{120, Boiling},
	}

	for _, tt := range tests {
		v := RenderPhase(tt.temp, c)
		if v.Regime != tt.expected {
			t.Errorf("RenderPhase(%.2f).Regime = %s, want %s", tt.temp, v.Regime, tt.expected)
		}
	}
}

func TestRenderPhase_ExclusiveRegimes(t *testing.T) {
	c := DefaultConstants()

	for temp := c.MinTemp; temp <= c.MaxTemp; temp += 0.25 {
		v := RenderPhase(temp, c)
		switch v.Regime {
		case Frozen:
			if v.IceOpacity != 1 || v.LiquidOpacity != 0 || v.Evaporation != 0 {
				t.Errorf("%.2f: frozen with liquid visible: %+v", temp, v)
			}
		case Boiling:
			if v.IceOpacity != 0 || v.IceFraction != 0 {
				t.Errorf("%.2f: boiling with ice visible", temp)
			}
		case Normal:
			if v.IceOpacity != 0 || v.LiquidOpacity != 1 || v.Evaporation != 0 {
				t.Errorf("%.2f: normal regime with phase effects: %+v", temp, v)
			}
		default:
			t.Errorf("%.2f: unknown regime %d", temp, v.Regime)
		}
	}
}

func TestRenderPhase_Frozen(t *testing.T) {
	c := DefaultConstants()

	v := RenderPhase(-5, c)
	if v.IceFraction != 1 {
		t.Errorf("expected ice fraction 1, got %f", v.IceFraction)
	}
	if v.LiquidColor != iceColor {
		t.Errorf("expected ice tint, got %v", v.LiquidColor)
	}
}

func TestRenderPhase_Evaporation(t *testing.T) {
	c := DefaultConstants()

	v := RenderPhase(110, c)
	if math.Abs(v.Evaporation-0.5) > 1e-12 {
		t.Errorf("expected evaporation 0.5, got %f", v.Evaporation)
	}
	if math.Abs(v.LiquidOpacity-0.5) > 1e-12 {
		t.Errorf("expected opacity 0.5, got %f", v.LiquidOpacity)
	}

	prev := RenderPhase(100, c).LiquidOpacity
	for temp := 100.5; temp <= 120; temp += 0.5 {
		op := RenderPhase(temp, c).LiquidOpacity
		if op >= prev {
			t.Errorf("opacity did not decrease at %.1f: %f >= %f", temp, op, prev)
		}
		prev = op
	}
}

func TestRenderPhase_FillHeight(t *testing.T) {
	c := DefaultConstants()

	ambient := RenderPhase(c.Ambient, c)
	if ambient.Volume != 1 {
		t.Errorf("expected unit volume at ambient, got %f", ambient.Volume)
	}
	if ambient.FillHeight != c.BaseHeight {
		t.Errorf("expected base height at ambient, got %f", ambient.FillHeight)
	}

	hot := RenderPhase(90, c)
	if hot.FillHeight <= ambient.FillHeight {
		t.Error("hot water should fill higher than ambient")
	}
}

func TestRenderPhase_Level(t *testing.T) {
	c := DefaultConstants()

	if l := RenderPhase(c.MinTemp, c).Level; l != 0 {
		t.Errorf("expected empty thermometer at min, got %f", l)
	}
	if l := RenderPhase(c.MaxTemp, c).Level; l != 1 {
		t.Errorf("expected full thermometer at max, got %f", l)
	}
}
