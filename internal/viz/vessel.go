package viz

import (
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/thermosim/internal/thermo"
)

// Vessel renders the water column with its bubble overlay and the steam
// plume above it. Bubbles live in the liquid band of the column canvas;
// the steam canvas is a thermo surface of its own.
type Vessel struct {
	Width, Height int
	SteamHeight   int

	Bubbles *Canvas
	Steam   *Canvas

	noise *perlin.Perlin
}

const (
	rippleAmplitude = 2.0 // sub-pixels at full agitation
	rippleScale     = 0.15
	rippleSpeed     = 2.0
)

func NewVessel(w, h, steamHeight int) *Vessel {
	v := &Vessel{noise: perlin.NewPerlin(2, 2, 3, 1)}
	v.Resize(w, h, steamHeight)
	return v
}

// Resize reallocates both canvases. Negative sizes become zero.
func (v *Vessel) Resize(w, h, steamHeight int) {
	v.Width, v.Height, v.SteamHeight = max(w, 0), max(h, 0), max(steamHeight, 0)
	v.Bubbles = NewCanvas(v.Width, v.Height)
	v.Steam = NewCanvas(v.Width, v.SteamHeight)
}

// Sizes reports the liquid band and the steam canvas in sub-pixels for vis,
// in the order thermo.Simulator.Resize takes them.
func (v *Vessel) Sizes(vis thermo.Visual) (bubbles, steam thermo.Size) {
	return v.liquid(vis).Size(), v.Steam.Size()
}

// liquid is the band of the column canvas below the surface.
func (v *Vessel) liquid(vis thermo.Visual) *Window {
	rows := v.liquidRows(vis) * 4
	return &Window{Canvas: v.Bubbles, Top: v.Height*4 - rows, Rows: rows}
}

// Draw replays the frame's particles and marks the liquid surface. Bubble
// draws are clipped to the liquid. Above the bubble threshold the surface
// ripples with the bubble intensity.
func (v *Vessel) Draw(f thermo.Frame, c thermo.Constants) {
	v.Bubbles.Clear()
	band := v.liquid(f.Visual)
	thermo.Paint(band, f.Bubbles)
	thermo.Paint(v.Steam, f.Steam)

	if band.Rows == 0 || f.Visual.Regime == thermo.Frozen || f.Visual.LiquidOpacity <= 0 {
		return
	}
	base := band.Top
	amp := rippleAmplitude * clampUnit((f.Temperature-c.BubbleThreshold)/(c.BoilingPoint-c.BubbleThreshold))

	px, py := 0, base+v.ripple(0, f.Clock, amp)
	for x := 1; x < v.Width*2; x++ {
		y := base + v.ripple(x, f.Clock, amp)
		v.Bubbles.DrawLine(px, py, x, y)
		px, py = x, y
	}
	v.Bubbles.Set(px, py)
}

func (v *Vessel) ripple(x int, clock, amp float64) int {
	if amp == 0 {
		return 0
	}
	n := v.noise.Noise2D(float64(x)*rippleScale, clock*rippleSpeed)
	return int(math.Round(math.Max(-1, math.Min(1, n)) * amp))
}

// liquidRows is the number of cell rows covered by water or ice.
func (v *Vessel) liquidRows(vis thermo.Visual) int {
	rows := int(math.Round(clampUnit(vis.FillHeight) * float64(v.Height)))
	return min(max(rows, 0), v.Height)
}

// View renders steam, walls, and the tinted column. Ice fills the column
// from the bottom by IceFraction.
func (v *Vessel) View(vis thermo.Visual, theme Theme) string {
	if v.Width == 0 || v.Height == 0 {
		return ""
	}

	empty := parseColor(theme.Vessel)
	wall := lipgloss.NewStyle().Foreground(theme.Muted)
	steam := lipgloss.NewStyle().Foreground(theme.Steam)
	air := lipgloss.NewStyle().Foreground(theme.Bubble).Background(theme.Vessel)

	opacity := vis.LiquidOpacity
	if vis.Regime == thermo.Frozen {
		opacity = vis.IceOpacity
	}
	tint := empty.BlendRgb(vis.LiquidColor, clampUnit(opacity)).Clamped()
	liquid := lipgloss.NewStyle().
		Foreground(theme.Bubble).
		Background(lipgloss.Color(tint.Hex()))

	rows := v.liquidRows(vis)
	if vis.Regime == thermo.Frozen {
		rows = int(math.Round(float64(rows) * clampUnit(vis.IceFraction)))
	}

	var b strings.Builder
	for _, row := range v.Steam.Rows() {
		b.WriteString(" " + steam.Render(row) + "\n")
	}
	for r, row := range v.Bubbles.Rows() {
		style := air
		if r >= v.Height-rows {
			style = liquid
		}
		b.WriteString(wall.Render("│") + style.Render(row) + wall.Render("│") + "\n")
	}
	b.WriteString(wall.Render("└" + strings.Repeat("─", v.Width) + "┘"))

	return b.String()
}
