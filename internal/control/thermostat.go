package control

import (
	"errors"

	"github.com/san-kum/thermosim/internal/thermo"
)

var ErrUnknownParam = errors.New("control: unknown parameter")

// Controller picks the input level for the next tick from the latest frame.
type Controller interface {
	Decide(f thermo.Frame) thermo.Input
	Reset()
	// Target is the setpoint in °C.
	Target() float64
}

// Thermostat switches the heater and cooler on a PID demand. Demand inside
// ±Deadband leaves both off.
type Thermostat struct {
	PID      *PID
	Deadband float64
}

func NewThermostat(pid *PID, deadband float64) *Thermostat {
	return &Thermostat{PID: pid, Deadband: max(deadband, 0)}
}

// NewBangBang holds target within ±band using the error alone.
func NewBangBang(target, band float64) *Thermostat {
	return NewThermostat(NewPID(1, 0, 0, target), band)
}

func (t *Thermostat) Decide(f thermo.Frame) thermo.Input {
	u := t.PID.Compute(f.Temperature, f.Clock)
	switch {
	case u > t.Deadband:
		return thermo.Heat
	case u < -t.Deadband:
		return thermo.Cool
	default:
		return thermo.Idle
	}
}

// Tunable is a controller whose gains can be read and set by name.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

func (t *Thermostat) Reset() { t.PID.Reset() }

// GetParams returns the PID parameters and the deadband.
func (t *Thermostat) GetParams() map[string]float64 {
	params := t.PID.GetParams()
	params["deadband"] = t.Deadband
	return params
}

// SetParam sets the deadband or one of the PID parameters.
func (t *Thermostat) SetParam(name string, value float64) error {
	if name == "deadband" {
		t.Deadband = max(value, 0)
		return nil
	}
	return t.PID.SetParam(name, value)
}

func (t *Thermostat) Target() float64 { return t.PID.Target }

type driver struct {
	sim  *thermo.Simulator
	ctrl Controller
}

func (d driver) OnFrame(f thermo.Frame) { d.sim.SetInput(d.ctrl.Decide(f)) }

// Attach lets ctrl set sim's inputs after every frame. Scheduled inputs are
// ignored from then on.
func Attach(sim *thermo.Simulator, ctrl Controller) {
	sim.AddDriver(driver{sim: sim, ctrl: ctrl})
}
