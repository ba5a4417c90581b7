package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/thermo"
)

var ErrNotTunable = errors.New("experiment: controller has no tunable parameters")

// Experiment is one seeded headless session built from a config.
type Experiment struct {
	cfg        *config.Config
	simulator  *thermo.Simulator
	controller control.Controller
	randSource *rand.Rand
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup builds the simulator, attaches the configured controller, and
// registers ms.
func (e *Experiment) Setup(registry *Registry, ms []thermo.Metric) error {
	sim, err := thermo.New(thermo.DefaultConstants(), e.cfg.SimConfig(), e.randSource)
	if err != nil {
		return err
	}

	ctrl, err := registry.GetController(e.cfg.Controller)
	if err != nil {
		return err
	}
	if ctrl != nil {
		control.Attach(sim, ctrl)
	}

	for _, m := range ms {
		sim.AddMetric(m)
	}

	e.simulator = sim
	e.controller = ctrl
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*thermo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	sched, err := e.cfg.ToSchedule()
	if err != nil {
		return nil, err
	}
	return e.simulator.Run(ctx, sched)
}

// Controller is nil when the session runs on its schedule alone.
func (e *Experiment) Controller() control.Controller {
	return e.controller
}

// Tune sets parameters of the attached controller by name.
func (e *Experiment) Tune(params map[string]float64) error {
	t, ok := e.controller.(control.Tunable)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotTunable, e.cfg.Controller.Type)
	}
	for name, v := range params {
		if err := t.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}
