package thermo

import "image/color"

// Size is a drawing surface's dimensions in pixel-space units.
type Size struct {
	Width, Height float64
}

// Empty reports whether nothing can be drawn at this size.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Surface is a 2D raster target for particle draws.
type Surface interface {
	Size() Size
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	// FillRadial fills a disc fading from inner at the center to outer at radius r.
	FillRadial(x, y, r float64, inner, outer color.NRGBA)
}

type DrawKind int

const (
	DrawDisc DrawKind = iota
	DrawRadial
)

// DrawCommand is one computed draw, decoupled from any concrete surface.
type DrawCommand struct {
	Kind   DrawKind
	X, Y   float64
	Radius float64
	Inner  color.NRGBA
	Outer  color.NRGBA
}

// Paint clears s and replays cmds onto it. Empty surfaces get no draws.
func Paint(s Surface, cmds []DrawCommand) {
	if s == nil {
		return
	}
	s.Clear()
	if s.Size().Empty() {
		return
	}
	for _, cmd := range cmds {
		switch cmd.Kind {
		case DrawRadial:
			s.FillRadial(cmd.X, cmd.Y, cmd.Radius, cmd.Inner, cmd.Outer)
		default:
			s.FillCircle(cmd.X, cmd.Y, cmd.Radius, cmd.Inner)
		}
	}
}

func alpha8(a float64) uint8 {
	return uint8(clamp01(a)*255 + 0.5)
}
