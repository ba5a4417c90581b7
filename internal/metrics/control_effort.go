package metrics

import "github.com/san-kum/thermosim/internal/thermo"

// ControlEffort is the share of simulated time the heater or cooler was held.
type ControlEffort struct {
	name   string
	active float64
	total  float64
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(f thermo.Frame) {
	if f.Heating || f.Cooling {
		c.active += f.Elapsed
	}
	c.total += f.Elapsed
}

func (c *ControlEffort) Value() float64 {
	if c.total == 0 {
		return 0
	}
	return c.active / c.total
}

func (c *ControlEffort) Reset() {
	c.active = 0
	c.total = 0
}
