package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/thermosim/internal/thermo"
)

const (
	gaugeFrequency = 6.0
	gaugeDamping   = 1.0
)

// Gauge is a vertical thermometer whose mercury eases toward the
// simulated level on a critically damped spring.
type Gauge struct {
	Height int

	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewGauge creates a gauge of height rows updated fps times per second.
func NewGauge(fps, height int) *Gauge {
	return &Gauge{
		Height: max(height, 0),
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), gaugeFrequency, gaugeDamping),
	}
}

// Update moves the mercury one frame toward target and returns the new level.
func (g *Gauge) Update(target float64) float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

// Snap jumps straight to level with no motion.
func (g *Gauge) Snap(level float64) {
	g.pos, g.vel = level, 0
}

func (g *Gauge) Level() float64 { return g.pos }

// View draws the tube with freezing and boiling marks beside it.
func (g *Gauge) View(v thermo.Visual, c thermo.Constants) string {
	if g.Height == 0 {
		return ""
	}

	mercury := lipgloss.NewStyle().Foreground(lipgloss.Color(v.ThermometerColor.Hex()))
	glass := Subtle

	filled := int(math.Round(clampUnit(g.pos) * float64(g.Height)))
	boilRow := g.markRow(c.BoilingPoint, c)
	freezeRow := g.markRow(c.FreezingPoint, c)

	var b strings.Builder
	for r := 0; r < g.Height; r++ {
		cell := glass.Render("│ │")
		if r >= g.Height-filled {
			cell = glass.Render("│") + mercury.Render("█") + glass.Render("│")
		}
		b.WriteString(cell)

		switch r {
		case boilRow:
			b.WriteString(MetricLabel.Render(fmt.Sprintf("─ %.0f°", c.BoilingPoint)))
		case freezeRow:
			b.WriteString(MetricLabel.Render(fmt.Sprintf("─ %.0f°", c.FreezingPoint)))
		}
		b.WriteString("\n")
	}
	b.WriteString(mercury.Render("(●)"))

	return b.String()
}

func (g *Gauge) markRow(t float64, c thermo.Constants) int {
	level := (t - c.MinTemp) / (c.MaxTemp - c.MinTemp)
	return g.Height - 1 - int(math.Round(clampUnit(level)*float64(g.Height-1)))
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
