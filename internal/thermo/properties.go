package thermo

import (
	"fmt"
	"math"
)

// Readings are the derived quantities for one tick, at full precision.
type Readings struct {
	Celsius    float64
	Fahrenheit float64
	Kelvin     float64

	ExpansionPercent float64
	ThermalStress    float64
	Work             float64
	EntropyChange    float64
}

// Row is one display line of the property table.
type Row struct {
	Label string
	Value string
}

// Properties maps temperature and volume to derived display quantities.
func Properties(t, volume float64, c Constants) Readings {
	delta := t - c.Ambient
	return Readings{
		Celsius:          t,
		Fahrenheit:       CelsiusToFahrenheit(t),
		Kelvin:           CelsiusToKelvin(t),
		ExpansionPercent: delta * c.ExpansionRate * 100,
		ThermalStress:    c.ThermalCoefficient * c.Elasticity * delta / 1000,
		Work:             volume * c.SpecificHeat * delta,
		EntropyChange:    math.Log(CelsiusToKelvin(t) / CelsiusToKelvin(c.Ambient)),
	}
}

func CelsiusToFahrenheit(t float64) float64 { return t*9/5 + 32 }
func CelsiusToKelvin(t float64) float64     { return t + 273.15 }

// Rows formats the readings with fixed precision for presentation.
func (r Readings) Rows() []Row {
	return []Row{
		{"Celsius", fmt.Sprintf("%.1f °C", r.Celsius)},
		{"Fahrenheit", fmt.Sprintf("%.1f °F", r.Fahrenheit)},
		{"Kelvin", fmt.Sprintf("%.1f K", r.Kelvin)},
		{"Expansion", fmt.Sprintf("%.3f %%", r.ExpansionPercent)},
		{"Stress", fmt.Sprintf("%.1f kPa", r.ThermalStress)},
		{"Work", fmt.Sprintf("%.1f J", r.Work)},
		{"Entropy", fmt.Sprintf("%.4f J/K", r.EntropyChange)},
	}
}

// Warnings reports whether the freeze and boil warnings are active.
func Warnings(t float64, c Constants) (freeze, boil bool) {
	return t <= c.FreezingPoint+5, t >= c.BoilingPoint-5
}
