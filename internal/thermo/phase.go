package thermo

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Regime is the visual phase of the water. Exactly one applies at any temperature.
type Regime int

const (
	Normal Regime = iota
	Frozen
	Boiling
)

func (r Regime) String() string {
	switch r {
	case Frozen:
		return "frozen"
	case Boiling:
		return "boiling"
	default:
		return "normal"
	}
}

// Visual holds everything a host needs to draw the vessel and thermometer.
type Visual struct {
	Regime Regime

	// Volume is the expansion factor; FillHeight is BaseHeight scaled by it.
	Volume     float64
	FillHeight float64

	LiquidOpacity float64
	IceOpacity    float64
	IceFraction   float64
	Evaporation   float64

	// Level is the thermometer fill in [0, 1].
	Level float64

	LiquidColor      colorful.Color
	ThermometerColor colorful.Color
}

var (
	iceColor   = colorful.Color{R: 0.86, G: 0.94, B: 1.0}
	coldWater  = colorful.Color{R: 0.16, G: 0.45, B: 0.85}
	warmWater  = colorful.Color{R: 0.35, G: 0.62, B: 0.95}
	thermoCold = colorful.Color{R: 0.20, G: 0.40, B: 1.0}
	thermoHot  = colorful.Color{R: 1.0, G: 0.22, B: 0.15}
)

// ExpansionFactor is the relative volume at temperature t.
func ExpansionFactor(t float64, c Constants) float64 {
	return 1 + (t-c.Ambient)*c.ExpansionRate
}

// RenderPhase derives the visual parameters for temperature t.
func RenderPhase(t float64, c Constants) Visual {
	v := Visual{
		Volume: ExpansionFactor(t, c),
		Level:  clamp01((t - c.MinTemp) / (c.MaxTemp - c.MinTemp)),
	}
	v.FillHeight = c.BaseHeight * v.Volume

	switch {
	case t <= c.FreezingPoint:
		v.Regime = Frozen
		v.IceFraction = math.Min(1, (c.FreezingPoint-t)/10+1)
		v.IceOpacity = 1
		v.LiquidOpacity = 0
	case t >= c.BoilingPoint:
		v.Regime = Boiling
		v.Evaporation = math.Min(1, (t-c.BoilingPoint)/20)
		v.LiquidOpacity = 1 - v.Evaporation
	default:
		v.Regime = Normal
		v.LiquidOpacity = 1
	}

	span := c.BoilingPoint - c.FreezingPoint
	warmth := clamp01((t - c.FreezingPoint) / span)
	if v.Regime == Frozen {
		v.LiquidColor = iceColor
	} else {
		v.LiquidColor = coldWater.BlendLab(warmWater, warmth).Clamped()
	}
	v.ThermometerColor = thermoCold.BlendHcl(thermoHot, v.Level).Clamped()

	return v
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
