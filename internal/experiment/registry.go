package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/thermo"
)

// Registry maps controller names to constructors.
type Registry struct {
	controllers map[string]func(config.ControllerConfig) control.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		controllers: make(map[string]func(config.ControllerConfig) control.Controller),
	}

	r.controllers["thermostat"] = func(p config.ControllerConfig) control.Controller {
		return control.NewBangBang(p.Target, p.Deadband)
	}
	r.controllers["pid"] = func(p config.ControllerConfig) control.Controller {
		return control.NewThermostat(control.NewPID(p.Kp, p.Ki, p.Kd, p.Target), p.Deadband)
	}

	return r
}

// GetController builds the configured controller. Disabled configs yield nil.
func (r *Registry) GetController(p config.ControllerConfig) (control.Controller, error) {
	if !p.Enabled() {
		return nil, nil
	}
	fn, ok := r.controllers[p.Type]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", p.Type)
	}
	return fn(p), nil
}

func (r *Registry) ListControllers() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh metric set for one run. Controlled runs
// also track distance from the target.
func (r *Registry) DefaultMetrics(p config.ControllerConfig) []thermo.Metric {
	ms := metrics.Default()
	if p.Enabled() {
		ms = append(ms, metrics.NewTrackingError(p.Target))
	}
	return ms
}
