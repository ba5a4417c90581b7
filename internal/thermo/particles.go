package thermo

import (
	"image/color"
	"math"
)

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

const (
	// DefaultMaxParticles bounds each particle collection.
	DefaultMaxParticles = 512

	bubbleChance = 0.3
	bubbleAlpha  = 0.6
	swayAmp      = 0.5
	steamDecay   = 0.98
)

var (
	bubbleTint = color.NRGBA{R: 210, G: 235, B: 255}
	steamTint  = color.NRGBA{R: 255, G: 255, B: 255}
)

// chance converts a per-nominal-frame probability to one over frames.
func chance(p, frames float64) float64 {
	p = clamp01(p)
	if frames <= 0 || p == 0 {
		return 0
	}
	return 1 - math.Pow(1-p, frames)
}

// trials counts successes of a per-nominal-frame probability p over frames.
// Whole frames each get one trial at p; the remainder gets one trial at
// p*remainder, so the expected count is p*frames at any tick length.
func trials(rng Rand, p, frames float64) int {
	if frames <= 0 || p <= 0 {
		return 0
	}
	whole := math.Floor(frames + 1e-9)
	n := 0
	for i := 0.0; i < whole; i++ {
		if rng.Float64() < p {
			n++
		}
	}
	if rest := frames - whole; rest > 1e-9 && rng.Float64() < p*rest {
		n++
	}
	return n
}

// BubbleSystem spawns and advances the bubble collection of a State.
type BubbleSystem struct {
	c   Constants
	rng Rand
	max int
}

func NewBubbleSystem(c Constants, rng Rand) *BubbleSystem {
	return &BubbleSystem{c: c, rng: rng, max: DefaultMaxParticles}
}

// Intensity is how far t exceeds the bubble threshold, normalized by 30.
func (b *BubbleSystem) Intensity(t float64) float64 {
	return (t - b.c.BubbleThreshold) / 30
}

// Step spawns, advances and culls bubbles, returning draws for the survivors.
func (b *BubbleSystem) Step(s *State, size Size, elapsed float64) []DrawCommand {
	frames := b.c.Frames(elapsed)

	if s.Temperature > b.c.BubbleThreshold {
		for n := trials(b.rng, bubbleChance, frames); n > 0; n-- {
			b.spawn(s, size)
		}
	}

	for i := range s.Bubbles {
		p := &s.Bubbles[i]
		p.Y -= p.Speed * frames
		p.X += math.Sin(s.Clock*5+float64(i)) * swayAmp * frames
		p.Life -= frames
	}

	kept := s.Bubbles[:0]
	for _, p := range s.Bubbles {
		if p.Y < 0 || p.Life <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	s.Bubbles = kept

	cmds := make([]DrawCommand, 0, len(s.Bubbles))
	for _, p := range s.Bubbles {
		col := bubbleTint
		col.A = alpha8(bubbleAlpha * p.Life / b.c.BubbleLife)
		cmds = append(cmds, DrawCommand{Kind: DrawDisc, X: p.X, Y: p.Y, Radius: p.Size, Inner: col})
	}
	return cmds
}

func (b *BubbleSystem) spawn(s *State, size Size) {
	intensity := b.Intensity(s.Temperature)
	scale := 0.5 + intensity*0.5
	for i := 0; float64(i) < 2*intensity; i++ {
		if len(s.Bubbles) >= b.max {
			return
		}
		s.Bubbles = append(s.Bubbles, Bubble{
			X:     b.rng.Float64() * size.Width,
			Y:     size.Height,
			Size:  (2 + b.rng.Float64()*3) * scale,
			Speed: (1 + b.rng.Float64()*2) * scale,
			Life:  b.c.BubbleLife,
		})
	}
}

// SteamSystem spawns and advances the steam collection of a State.
type SteamSystem struct {
	c   Constants
	rng Rand
	max int
}

func NewSteamSystem(c Constants, rng Rand) *SteamSystem {
	return &SteamSystem{c: c, rng: rng, max: DefaultMaxParticles}
}

// Intensity is how far t exceeds the boiling point, normalized by 20.
func (st *SteamSystem) Intensity(t float64) float64 {
	return (t - st.c.BoilingPoint) / 20
}

// Step spawns at most one particle, then advances and culls the collection.
func (st *SteamSystem) Step(s *State, size Size, elapsed float64) []DrawCommand {
	frames := st.c.Frames(elapsed)

	if s.Temperature >= st.c.BoilingPoint && len(s.Steam) < st.max {
		intensity := st.Intensity(s.Temperature)
		if st.rng.Float64() < chance(intensity*0.5, frames) {
			scale := 0.5 + intensity
			s.Steam = append(s.Steam, SteamParticle{
				X:     st.rng.Float64() * size.Width,
				Y:     size.Height,
				Size:  (5 + st.rng.Float64()*10) * scale,
				Speed: (0.5 + st.rng.Float64()) * scale,
				Sway:  1 + st.rng.Float64()*2,
			})
		}
	}

	decay := math.Pow(steamDecay, frames)
	for i := range s.Steam {
		p := &s.Steam[i]
		p.Y -= p.Speed * frames
		p.X += math.Sin(s.Clock*p.Sway) * swayAmp * frames
		p.Size *= decay
	}

	kept := s.Steam[:0]
	for _, p := range s.Steam {
		if p.Size < st.c.SteamFloor {
			continue
		}
		kept = append(kept, p)
	}
	s.Steam = kept

	cmds := make([]DrawCommand, 0, len(s.Steam))
	for _, p := range s.Steam {
		inner := steamTint
		inner.A = alpha8(p.Size * 0.03)
		outer := steamTint
		outer.A = 0
		cmds = append(cmds, DrawCommand{Kind: DrawRadial, X: p.X, Y: p.Y, Radius: p.Size, Inner: inner, Outer: outer})
	}
	return cmds
}
