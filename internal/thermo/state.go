package thermo

// Bubble is a rising disc spawned below the boiling point once the water is
// hot enough. Life counts down in nominal frames.
type Bubble struct {
	X, Y  float64
	Size  float64
	Speed float64
	Life  float64
}

// SteamParticle is a rising puff above the water surface. Sway is its own
// horizontal oscillation frequency in radians per second.
type SteamParticle struct {
	X, Y  float64
	Size  float64
	Speed float64
	Sway  float64
}

// State is the mutable simulation record owned by the driver loop.
type State struct {
	Temperature float64
	Heating     bool
	Cooling     bool

	// Volume is the expansion factor derived from Temperature each tick.
	Volume float64

	Bubbles []Bubble
	Steam   []SteamParticle

	// Clock is simulated seconds since start. It drives particle sway.
	Clock float64
}

// NewState returns a state at temperature t, clamped to the table's bounds.
func NewState(c Constants, t float64) *State {
	s := &State{
		Temperature: c.Clamp(t),
		Bubbles:     make([]Bubble, 0, 64),
		Steam:       make([]SteamParticle, 0, 64),
	}
	s.Volume = ExpansionFactor(s.Temperature, c)
	return s
}

// Particles returns the number of live bubbles and steam particles.
func (s *State) Particles() int {
	return len(s.Bubbles) + len(s.Steam)
}

// Input is the pair of levels a host feeds the simulator.
type Input int

const (
	Idle Input = iota
	Heat
	Cool
)

func (in Input) String() string {
	switch in {
	case Heat:
		return "heat"
	case Cool:
		return "cool"
	default:
		return "idle"
	}
}

// ParseInput maps a schedule keyword to an Input.
func ParseInput(s string) (Input, bool) {
	switch s {
	case "idle", "":
		return Idle, true
	case "heat":
		return Heat, true
	case "cool":
		return Cool, true
	}
	return Idle, false
}
