package thermo

// Config holds per-session driver settings. Physics live in Constants.
type Config struct {
	// MaxStep caps the elapsed seconds integrated in one tick.
	MaxStep float64

	// Width and Height size the bubble surface; the steam surface shares
	// the width and has its own height.
	Width       float64
	Height      float64
	SteamHeight float64

	InitialTemperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxStep:            0.25,
		Width:              160,
		Height:             96,
		SteamHeight:        32,
		InitialTemperature: 20,
	}
}

// Frame is the output of one tick.
type Frame struct {
	Elapsed     float64
	Clock       float64
	Temperature float64
	Heating     bool
	Cooling     bool

	Visual   Visual
	Readings Readings

	FreezeWarning bool
	BoilWarning   bool

	Bubbles []DrawCommand
	Steam   []DrawCommand

	BubbleCount int
	SteamCount  int
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Segment holds one input level for a duration in seconds.
type Segment struct {
	Input    Input
	Duration float64
}

// Schedule drives a headless run.
type Schedule struct {
	Segments []Segment
	// Step is the fixed elapsed time per tick, in seconds.
	Step float64
}

func (s Schedule) Duration() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}

type Result struct {
	Times        []float64
	Temperatures []float64
	Volumes      []float64
	BubbleCounts []int
	SteamCounts  []int
	Regimes      []Regime
	Metrics      map[string]float64
	Steps        int
}
