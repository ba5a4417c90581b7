package control

import (
	"fmt"
	"math"
)

// DefaultWindup caps the integral contribution to the demand.
const DefaultWindup = 20.0

// PID turns the temperature error into a signed heating demand.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
	// Windup bounds |Ki*integral|; zero leaves the integral unbounded.
	Windup float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		Windup: DefaultWindup,
		first:  true,
	}
}

// Compute returns the demand for temperature temp at simulated time t.
// Positive demand asks for heat.
func (p *PID) Compute(temp, t float64) float64 {
	err := p.Target - temp

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral = p.clampIntegral(p.integral + err*dt)
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return u
	}
	return p.Kp*err + p.Ki*p.integral
}

func (p *PID) clampIntegral(i float64) float64 {
	if p.Windup <= 0 || p.Ki == 0 {
		return i
	}
	limit := p.Windup / math.Abs(p.Ki)
	return math.Max(-limit, math.Min(limit, i))
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
		"windup": p.Windup,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	case "windup":
		p.Windup = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
