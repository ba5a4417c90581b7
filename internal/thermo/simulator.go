package thermo

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Simulator is the driver loop. It owns the State and both particle systems.
type Simulator struct {
	c       Constants
	cfg     Config
	state   *State
	bubbles *BubbleSystem
	steam   *SteamSystem

	bubbleSize Size
	steamSize  Size

	last    time.Time
	started bool

	metrics   []Metric
	observers []Observer
	// driven is set once an observer owns the input levels
	driven bool
}

func New(c Constants, cfg Config, rng Rand) (*Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfig)
	}

	return &Simulator{
		c:          c,
		cfg:        cfg,
		state:      NewState(c, cfg.InitialTemperature),
		bubbles:    NewBubbleSystem(c, rng),
		steam:      NewSteamSystem(c, rng),
		bubbleSize: Size{Width: cfg.Width, Height: cfg.Height},
		steamSize:  Size{Width: cfg.Width, Height: cfg.SteamHeight},
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxStep <= 0 || math.IsNaN(cfg.MaxStep) || math.IsInf(cfg.MaxStep, 0) {
		return fmt.Errorf("%w: max step must be positive, got %f", ErrInvalidConfig, cfg.MaxStep)
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.SteamHeight < 0 {
		return fmt.Errorf("%w: surface size must not be negative", ErrInvalidConfig)
	}
	if math.IsNaN(cfg.InitialTemperature) || math.IsInf(cfg.InitialTemperature, 0) {
		return fmt.Errorf("%w: initial temperature is not finite", ErrInvalidConfig)
	}
	return nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// AddDriver registers an observer that sets the input levels itself. Run
// then keeps the schedule's timing but no longer applies its inputs.
func (s *Simulator) AddDriver(o Observer) {
	s.AddObserver(o)
	s.driven = true
}

func (s *Simulator) Constants() Constants { return s.c }
func (s *Simulator) State() *State        { return s.state }

func (s *Simulator) SetHeating(on bool) { s.state.Heating = on }
func (s *Simulator) SetCooling(on bool) { s.state.Cooling = on }

// SetInput sets both levels from a single input.
func (s *Simulator) SetInput(in Input) {
	s.state.Heating = in == Heat
	s.state.Cooling = in == Cool
}

// Sizes returns the bubble and steam surface dimensions.
func (s *Simulator) Sizes() (bubbles, steam Size) {
	return s.bubbleSize, s.steamSize
}

// Resize updates both surface dimensions. Negative sizes become zero.
func (s *Simulator) Resize(bubbles, steam Size) {
	s.bubbleSize = nonNegative(bubbles)
	s.steamSize = nonNegative(steam)
}

func nonNegative(sz Size) Size {
	return Size{Width: math.Max(0, sz.Width), Height: math.Max(0, sz.Height)}
}

// Reset restores the initial temperature and drops every particle.
func (s *Simulator) Reset() {
	heating, cooling := s.state.Heating, s.state.Cooling
	s.state = NewState(s.c, s.cfg.InitialTemperature)
	s.state.Heating, s.state.Cooling = heating, cooling
	s.started = false
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick advances by the wall time since the previous tick. The first tick
// has zero elapsed time. time.Time carries a monotonic reading, so wall
// clock adjustments do not affect the step.
func (s *Simulator) Tick(now time.Time) Frame {
	elapsed := 0.0
	if s.started {
		elapsed = now.Sub(s.last).Seconds()
	}
	s.last = now
	s.started = true
	return s.Advance(elapsed)
}

// Advance runs one tick of elapsed seconds, clamped to [0, MaxStep].
func (s *Simulator) Advance(elapsed float64) Frame {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	if elapsed > s.cfg.MaxStep {
		elapsed = s.cfg.MaxStep
	}

	st := s.state
	st.Clock += elapsed

	Advance(st, elapsed, s.c)
	st.Volume = ExpansionFactor(st.Temperature, s.c)

	f := Frame{
		Elapsed:     elapsed,
		Clock:       st.Clock,
		Temperature: st.Temperature,
		Heating:     st.Heating,
		Cooling:     st.Cooling,
		Visual:      RenderPhase(st.Temperature, s.c),
		Bubbles:     s.bubbles.Step(st, s.bubbleSize, elapsed),
		Steam:       s.steam.Step(st, s.steamSize, elapsed),
		Readings:    Properties(st.Temperature, st.Volume, s.c),
	}
	f.FreezeWarning, f.BoilWarning = Warnings(st.Temperature, s.c)
	f.BubbleCount, f.SteamCount = len(st.Bubbles), len(st.Steam)

	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}
	return f
}

// Run drives the simulator headless through sched at a fixed step.
func (s *Simulator) Run(ctx context.Context, sched Schedule) (*Result, error) {
	if err := validateSchedule(sched); err != nil {
		return nil, err
	}
	if sched.Step > s.cfg.MaxStep {
		return nil, fmt.Errorf("%w: step %f exceeds max step %f", ErrInvalidSchedule, sched.Step, s.cfg.MaxStep)
	}

	steps := int(math.Ceil(sched.Duration()/sched.Step)) + 1
	result := &Result{
		Times:        make([]float64, 0, steps),
		Temperatures: make([]float64, 0, steps),
		Volumes:      make([]float64, 0, steps),
		BubbleCounts: make([]int, 0, steps),
		SteamCounts:  make([]int, 0, steps),
		Regimes:      make([]Regime, 0, steps),
		Metrics:      make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	record := func(f Frame) {
		result.Times = append(result.Times, f.Clock)
		result.Temperatures = append(result.Temperatures, f.Temperature)
		result.Volumes = append(result.Volumes, f.Visual.Volume)
		result.BubbleCounts = append(result.BubbleCounts, f.BubbleCount)
		result.SteamCounts = append(result.SteamCounts, f.SteamCount)
		result.Regimes = append(result.Regimes, f.Visual.Regime)
	}

	record(s.Advance(0))

	for _, seg := range sched.Segments {
		if !s.driven {
			s.SetInput(seg.Input)
		}
		remaining := seg.Duration
		for remaining > 1e-9 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}

			dt := math.Min(sched.Step, remaining)
			record(s.Advance(dt))
			remaining -= dt
			result.Steps++
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func validateSchedule(sched Schedule) error {
	if len(sched.Segments) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidSchedule)
	}
	if sched.Step <= 0 || math.IsNaN(sched.Step) {
		return fmt.Errorf("%w: step must be positive, got %f", ErrInvalidSchedule, sched.Step)
	}
	for i, seg := range sched.Segments {
		if seg.Duration <= 0 || math.IsNaN(seg.Duration) || math.IsInf(seg.Duration, 0) {
			return fmt.Errorf("%w: segment %d duration must be positive", ErrInvalidSchedule, i)
		}
	}
	return nil
}
