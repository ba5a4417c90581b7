package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/thermosim/internal/thermo"
	"github.com/san-kum/thermosim/internal/viz"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var ErrUnknownLayer = errors.New("export: unknown layer")

const (
	bubbleFill = "#e6f6ff"
	steamFill  = "#d0d8e0"
)

// LayerToSVG renders one of the vessel's canvases on its own: "bubbles"
// (the column) or "steam".
func LayerToSVG(v *viz.Vessel, layer string, scale float64) (string, error) {
	switch layer {
	case "bubbles":
		return CanvasToSVG(v.Bubbles, scale, bubbleFill), nil
	case "steam":
		return CanvasToSVG(v.Steam, scale, steamFill), nil
	default:
		return "", fmt.Errorf("%w: %q (bubbles, steam)", ErrUnknownLayer, layer)
	}
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))
	writeDots(&sb, canvas, scale, 0, 0)
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SnapshotToSVG draws one frame: the steam plume, the vessel with its
// tinted column, and the bubbles in it. The vessel's canvases must already
// hold the frame (see viz.Vessel.Draw).
func SnapshotToSVG(f thermo.Frame, v *viz.Vessel, scale float64) string {
	if v == nil {
		return ""
	}

	width := float64(v.Width) * scale * 2
	steamH := float64(v.SteamHeight) * scale * 4
	vesselH := float64(v.Height) * scale * 4

	var sb strings.Builder
	writeHeader(&sb, width, steamH+vesselH)

	vis := f.Visual
	opacity := vis.LiquidOpacity
	if vis.Regime == thermo.Frozen {
		opacity = vis.IceOpacity * vis.IceFraction
	}
	fillH := math.Min(1, math.Max(0, vis.FillHeight)) * vesselH
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.3f"/>
`, steamH+vesselH-fillH, width, fillH, vis.LiquidColor.Hex(), opacity))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#4488aa"/>
`, steamH, width, vesselH))

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\" fill-opacity=\"0.7\">\n", steamFill))
	writeDots(&sb, v.Steam, scale, 0, 0)
	sb.WriteString(fmt.Sprintf("</g>\n<g fill=\"%s\">\n", bubbleFill))
	writeDots(&sb, v.Bubbles, scale, 0, steamH)
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<text x="4" y="14" fill="%s" font-family="monospace" font-size="12">%.1f °C %s</text>
`, vis.ThermometerColor.Hex(), f.Temperature, vis.Regime))
	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

func writeDots(sb *strings.Builder, canvas *viz.Canvas, scale, x0, y0 float64) {
	if canvas == nil {
		return
	}
	dotRadius := scale * 0.4

	// Convert each braille character to dots
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := x0 + float64(col)*scale*2
			baseY := y0 + float64(row)*scale*4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}
}

// TraceToSVG plots temperature against time as a polyline, with dashed
// guides at the freezing and boiling points.
func TraceToSVG(times, temps []float64, c thermo.Constants, width, height int, strokeColor string) string {
	n := min(len(times), len(temps))
	if n < 2 {
		return ""
	}

	minX, maxX := times[0], times[n-1]
	minY, maxY := c.MinTemp, c.MaxTemp
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY

	project := func(t, temp float64) (float64, float64) {
		x := (t - minX) / rangeX * float64(width)
		y := float64(height) - (temp-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))

	for _, guide := range []float64{c.FreezingPoint, c.BoilingPoint} {
		_, y := project(minX, guide)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y, width, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := 0; i < n; i++ {
		x, y := project(times[i], temps[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
