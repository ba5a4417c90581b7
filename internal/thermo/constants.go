package thermo

import (
	"fmt"
	"math"
)

// Constants is the fixed physics table. It is built once and never mutated.
type Constants struct {
	BoilingPoint  float64
	FreezingPoint float64
	MinTemp       float64
	MaxTemp       float64

	// Ambient is the reference temperature the system drifts toward when idle.
	Ambient     float64
	AmbientBand float64

	ExpansionRate     float64
	HeatRate          float64
	CoolRate          float64
	AmbientCooling    float64
	PhaseAcceleration float64
	BubbleThreshold   float64

	ThermalCoefficient float64
	Elasticity         float64
	SpecificHeat       float64

	// BaseHeight is the liquid fill at ambient, as a fraction of the vessel.
	BaseHeight float64
	NominalFPS float64
	SteamFloor float64
	BubbleLife float64
}

func DefaultConstants() Constants {
	return Constants{
		BoilingPoint:       100,
		FreezingPoint:      0,
		MinTemp:            -20,
		MaxTemp:            120,
		Ambient:            20,
		AmbientBand:        0.5,
		ExpansionRate:      0.000207,
		HeatRate:           0.35,
		CoolRate:           0.35,
		AmbientCooling:     0.05,
		PhaseAcceleration:  0.05,
		BubbleThreshold:    70,
		ThermalCoefficient: 0.000207,
		Elasticity:         2.2e9,
		SpecificHeat:       4.186,
		BaseHeight:         0.6,
		NominalFPS:         60,
		SteamFloor:         0.5,
		BubbleLife:         100,
	}
}

// Validate reports whether the table can drive a simulation.
func (c Constants) Validate() error {
	fields := map[string]float64{
		"boiling_point":       c.BoilingPoint,
		"freezing_point":      c.FreezingPoint,
		"min_temp":            c.MinTemp,
		"max_temp":            c.MaxTemp,
		"ambient":             c.Ambient,
		"ambient_band":        c.AmbientBand,
		"expansion_rate":      c.ExpansionRate,
		"heat_rate":           c.HeatRate,
		"cool_rate":           c.CoolRate,
		"ambient_cooling":     c.AmbientCooling,
		"phase_acceleration":  c.PhaseAcceleration,
		"bubble_threshold":    c.BubbleThreshold,
		"thermal_coefficient": c.ThermalCoefficient,
		"elasticity":          c.Elasticity,
		"specific_heat":       c.SpecificHeat,
		"base_height":         c.BaseHeight,
		"nominal_fps":         c.NominalFPS,
		"steam_floor":         c.SteamFloor,
		"bubble_life":         c.BubbleLife,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConstants, name)
		}
	}

	if c.MinTemp >= c.MaxTemp {
		return fmt.Errorf("%w: min_temp %.2f must be below max_temp %.2f", ErrInvalidConstants, c.MinTemp, c.MaxTemp)
	}
	if c.FreezingPoint >= c.BoilingPoint {
		return fmt.Errorf("%w: freezing_point must be below boiling_point", ErrInvalidConstants)
	}
	if c.HeatRate <= 0 || c.CoolRate <= 0 || c.AmbientCooling <= 0 {
		return fmt.Errorf("%w: heat, cool and ambient rates must be positive", ErrInvalidConstants)
	}
	if c.NominalFPS <= 0 || c.BubbleLife <= 0 || c.SteamFloor <= 0 {
		return fmt.Errorf("%w: nominal_fps, bubble_life and steam_floor must be positive", ErrInvalidConstants)
	}
	return nil
}

// Clamp limits t to [MinTemp, MaxTemp].
func (c Constants) Clamp(t float64) float64 {
	return math.Max(c.MinTemp, math.Min(c.MaxTemp, t))
}

// Frames converts elapsed seconds to nominal frames.
func (c Constants) Frames(elapsed float64) float64 {
	if elapsed <= 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return 0
	}
	return elapsed * c.NominalFPS
}
