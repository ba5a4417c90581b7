package thermo

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

// seqRand replays a fixed sequence of values.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func constRand(v float64) *seqRand { return &seqRand{vals: []float64{v}} }

func TestChance(t *testing.T) {
	tests := []struct {
		p, frames, expected float64
	}{
		{0.3, 1, 0.3},
		{0.3, 2, 0.51},
		{0.3, 0, 0},
		{0, 10, 0},
		{1, 0.5, 1},
		{1.5, 1, 1},
	}

	for _, tt := range tests {
		if got := chance(tt.p, tt.frames); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("chance(%v, %v) = %v, want %v", tt.p, tt.frames, got, tt.expected)
		}
	}
}

func TestBubbleSystem_NoSpawnAtThreshold(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0))
	s := NewState(c, c.BubbleThreshold)

	for i := 0; i < 100; i++ {
		bs.Step(s, Size{Width: 100, Height: 100}, nominalTick)
	}

	if len(s.Bubbles) != 0 {
		t.Errorf("expected no bubbles at threshold, got %d", len(s.Bubbles))
	}
}

func TestBubbleSystem_Burst(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0))
	s := NewState(c, 100)

	cmds := bs.Step(s, Size{Width: 100, Height: 100}, nominalTick)

	// intensity 1 gives a burst of two
	if len(s.Bubbles) != 2 {
		t.Fatalf("expected 2 bubbles, got %d", len(s.Bubbles))
	}
	if len(cmds) != 2 {
		t.Errorf("expected 2 draw commands, got %d", len(cmds))
	}
	for _, b := range s.Bubbles {
		if math.Abs(b.Y-99) > 1e-9 {
			t.Errorf("expected bubble to rise one pixel, got y=%f", b.Y)
		}
		if math.Abs(b.Life-(c.BubbleLife-1)) > 1e-9 {
			t.Errorf("expected life %f, got %f", c.BubbleLife-1, b.Life)
		}
		if b.Size <= 0 || b.Speed <= 0 {
			t.Errorf("bubble must have positive size and speed: %+v", b)
		}
	}
	for _, cmd := range cmds {
		if cmd.Kind != DrawDisc {
			t.Errorf("bubbles draw as discs, got kind %d", cmd.Kind)
		}
	}
}

func TestBubbleSystem_ZeroElapsedDoesNotSpawn(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0))
	s := NewState(c, 110)

	bs.Step(s, Size{Width: 100, Height: 100}, 0)

	if len(s.Bubbles) != 0 {
		t.Errorf("expected no spawn on zero elapsed, got %d", len(s.Bubbles))
	}
}

func TestBubbleSystem_Removal(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0.99))
	s := NewState(c, 20)
	s.Bubbles = []Bubble{
		{X: 10, Y: 50, Size: 2, Speed: 1, Life: 0.5},
		{X: 20, Y: 50, Size: 2, Speed: 1, Life: 50},
		{X: 30, Y: 0.5, Size: 2, Speed: 1, Life: 50},
		{X: 40, Y: 80, Size: 2, Speed: 2, Life: 10},
		{X: 50, Y: 40, Size: 2, Speed: 1, Life: 0.9},
	}

	cmds := bs.Step(s, Size{Width: 100, Height: 100}, nominalTick)

	if len(s.Bubbles) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %+v", len(s.Bubbles), s.Bubbles)
	}
	if len(cmds) != 2 {
		t.Errorf("expected draws for survivors only, got %d", len(cmds))
	}

	expected := []struct{ y, life float64 }{{49, 49}, {78, 9}}
	for i, want := range expected {
		got := s.Bubbles[i]
		if math.Abs(got.Y-want.y) > 1e-9 || math.Abs(got.Life-want.life) > 1e-9 {
			t.Errorf("survivor %d: got y=%f life=%f, want y=%f life=%f", i, got.Y, got.Life, want.y, want.life)
		}
	}
}

func TestBubbleSystem_AlphaTracksLife(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0.99))
	s := NewState(c, 20)
	s.Bubbles = []Bubble{
		{X: 10, Y: 50, Size: 2, Speed: 1, Life: 91},
		{X: 20, Y: 50, Size: 2, Speed: 1, Life: 41},
	}

	cmds := bs.Step(s, Size{Width: 100, Height: 100}, nominalTick)

	if cmds[0].Inner.A <= cmds[1].Inner.A {
		t.Errorf("older bubble should be fainter: %d vs %d", cmds[0].Inner.A, cmds[1].Inner.A)
	}
}

func TestBubbleSystem_Bounded(t *testing.T) {
	c := DefaultConstants()
	bs := NewBubbleSystem(c, constRand(0))
	s := NewState(c, c.MaxTemp)

	for i := 0; i < 2000; i++ {
		bs.Step(s, Size{Width: 100, Height: 1e9}, nominalTick)
	}

	if len(s.Bubbles) > DefaultMaxParticles {
		t.Errorf("bubble count %d exceeds cap %d", len(s.Bubbles), DefaultMaxParticles)
	}
}

func TestBubbleSystem_SpawnRate(t *testing.T) {
	c := DefaultConstants()
	rng := rand.New(rand.NewSource(7))
	bs := NewBubbleSystem(c, rng)

	bursts := 0
	const ticks = 5000
	for i := 0; i < ticks; i++ {
		s := NewState(c, 85)
		bs.Step(s, Size{Width: 100, Height: 100}, nominalTick)
		if len(s.Bubbles) > 0 {
			bursts++
		}
	}

	rate := float64(bursts) / ticks
	if rate < 0.25 || rate > 0.35 {
		t.Errorf("expected burst rate near 0.3, got %.3f", rate)
	}
}

func TestTrials(t *testing.T) {
	tests := []struct {
		name     string
		rng      Rand
		frames   float64
		expected int
	}{
		{"one nominal frame", constRand(0), 1, 1},
		{"whole and partial frames", constRand(0), 2.5, 3},
		{"no success", constRand(0.99), 4, 0},
		{"zero elapsed", constRand(0), 0, 0},
		// 0.2 < 0.3*0.75 but not < 0.3*0.5
		{"partial frame scales probability", constRand(0.2), 0.5, 0},
		{"larger partial frame", constRand(0.2), 0.75, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trials(tt.rng, 0.3, tt.frames); got != tt.expected {
				t.Errorf("trials(0.3, %v) = %d, want %d", tt.frames, got, tt.expected)
			}
		})
	}
}

func TestBubbleSystem_RateIndependentOfTickLength(t *testing.T) {
	c := DefaultConstants()
	const seconds = 500.0

	rate := func(fps int) float64 {
		bs := NewBubbleSystem(c, rand.New(rand.NewSource(11)))
		s := NewState(c, 85)
		dt := 1.0 / float64(fps)
		spawned := 0
		for i := 0; i < int(seconds)*fps; i++ {
			s.Bubbles = s.Bubbles[:0]
			bs.Step(s, Size{Width: 100, Height: 1e6}, dt)
			spawned += len(s.Bubbles)
		}
		return float64(spawned) / seconds
	}

	// 0.3 bursts of one bubble per nominal frame at 60 frames per second
	const expected = 18.0
	for _, fps := range []int{15, 30, 60, 240} {
		if got := rate(fps); math.Abs(got-expected) > 0.05*expected {
			t.Errorf("fps=%d: expected about %.1f bubbles/s, got %.2f", fps, expected, got)
		}
	}
}

func TestSteamSystem_Gate(t *testing.T) {
	c := DefaultConstants()
	ss := NewSteamSystem(c, constRand(0))
	s := NewState(c, 99.9)

	for i := 0; i < 100; i++ {
		ss.Step(s, Size{Width: 100, Height: 100}, nominalTick)
	}

	if len(s.Steam) != 0 {
		t.Errorf("expected no steam below boiling, got %d", len(s.Steam))
	}
}

func TestSteamSystem_SingleSpawnPerTick(t *testing.T) {
	c := DefaultConstants()
	ss := NewSteamSystem(c, constRand(0))
	s := NewState(c, c.MaxTemp)

	for i := 1; i <= 20; i++ {
		cmds := ss.Step(s, Size{Width: 100, Height: 100}, nominalTick)
		if len(s.Steam) != i {
			t.Fatalf("tick %d: expected %d particles, got %d", i, i, len(s.Steam))
		}
		if cmds[len(cmds)-1].Kind != DrawRadial {
			t.Errorf("steam draws with a radial fill")
		}
	}
}

func TestSteamSystem_DecayAndRemoval(t *testing.T) {
	c := DefaultConstants()
	ss := NewSteamSystem(c, constRand(0.99))
	s := NewState(c, 20)
	s.Steam = []SteamParticle{
		{X: 10, Y: 50, Size: 10, Speed: 1, Sway: 1},
		{X: 20, Y: 50, Size: 0.505, Speed: 1, Sway: 1},
		{X: 30, Y: 50, Size: 4, Speed: 1, Sway: 2},
	}

	cmds := ss.Step(s, Size{Width: 100, Height: 100}, nominalTick)

	if len(s.Steam) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(s.Steam))
	}
	if math.Abs(s.Steam[0].Size-9.8) > 1e-9 {
		t.Errorf("expected size 9.8, got %f", s.Steam[0].Size)
	}
	if math.Abs(s.Steam[1].Size-3.92) > 1e-9 {
		t.Errorf("expected size 3.92, got %f", s.Steam[1].Size)
	}
	if len(cmds) != 2 {
		t.Errorf("expected 2 draws, got %d", len(cmds))
	}
	if cmds[0].Inner.A <= cmds[1].Inner.A {
		t.Error("larger puff should be more opaque")
	}
	if cmds[0].Outer.A != 0 {
		t.Error("radial fill should fade to transparent")
	}
}

func TestSteamSystem_DecayFrameRateIndependent(t *testing.T) {
	c := DefaultConstants()

	fast := NewState(c, 20)
	fast.Steam = []SteamParticle{{Size: 10, Speed: 1, Sway: 1}}
	ssFast := NewSteamSystem(c, constRand(0.99))
	for i := 0; i < 4; i++ {
		ssFast.Step(fast, Size{Width: 100, Height: 1000}, 1.0/240)
	}

	slow := NewState(c, 20)
	slow.Steam = []SteamParticle{{Size: 10, Speed: 1, Sway: 1}}
	NewSteamSystem(c, constRand(0.99)).Step(slow, Size{Width: 100, Height: 1000}, nominalTick)

	if math.Abs(fast.Steam[0].Size-slow.Steam[0].Size) > 1e-9 {
		t.Errorf("decay depends on frame rate: %f vs %f", fast.Steam[0].Size, slow.Steam[0].Size)
	}
}

type recordingSurface struct {
	size    Size
	clears  int
	circles int
	radials int
}

func (r *recordingSurface) Size() Size { return r.size }
func (r *recordingSurface) Clear()     { r.clears++ }
func (r *recordingSurface) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.circles++
}
func (r *recordingSurface) FillRadial(x, y, rad float64, inner, outer color.NRGBA) {
	r.radials++
}

func TestPaint(t *testing.T) {
	cmds := []DrawCommand{
		{Kind: DrawDisc, X: 1, Y: 1, Radius: 2},
		{Kind: DrawRadial, X: 3, Y: 3, Radius: 4},
		{Kind: DrawDisc, X: 5, Y: 5, Radius: 1},
	}

	surf := &recordingSurface{size: Size{Width: 10, Height: 10}}
	Paint(surf, cmds)
	if surf.clears != 1 || surf.circles != 2 || surf.radials != 1 {
		t.Errorf("unexpected calls: %+v", surf)
	}

	empty := &recordingSurface{}
	Paint(empty, cmds)
	if empty.circles != 0 || empty.radials != 0 {
		t.Error("zero-sized surface should not be drawn on")
	}

	Paint(nil, cmds)
}
