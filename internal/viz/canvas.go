package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/thermosim/internal/thermo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// bayer is a 4x4 ordered-dither matrix. Alpha is emulated by setting a dot
// only where coverage exceeds the threshold at that sub-pixel.
var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Canvas is a Braille sub-pixel raster. It implements thermo.Surface with
// sub-pixel coordinates.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

var _ thermo.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas of w x h terminal cells. Negative sizes become zero.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SetPixel sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Size reports the canvas in sub-pixels.
func (c *Canvas) Size() thermo.Size {
	return thermo.Size{Width: float64(c.Width * 2), Height: float64(c.Height * 4)}
}

// Rows returns the canvas one text row per cell row.
func (c *Canvas) Rows() []string {
	rows := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		rows[i] = string(row)
	}
	return rows
}

// FillCircle sets every sub-pixel inside the disc, dithered by col's alpha.
func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	coverage := float64(col.A) / 255
	fill(x, y, r, func(float64) float64 { return coverage }, c.Set)
}

// FillRadial fades coverage linearly from inner alpha at the center to outer at r.
func (c *Canvas) FillRadial(x, y, r float64, inner, outer color.NRGBA) {
	fill(x, y, r, radial(inner, outer), c.Set)
}

func radial(inner, outer color.NRGBA) func(d float64) float64 {
	a0, a1 := float64(inner.A)/255, float64(outer.A)/255
	return func(d float64) float64 { return a0 + (a1-a0)*d }
}

// fill visits sub-pixels within r of (x, y) and plots those whose coverage
// beats the dither threshold. coverage receives the normalized distance.
func fill(x, y, r float64, coverage func(d float64) float64, plot func(x, y int)) {
	if r <= 0 {
		return
	}
	// discs smaller than a dot still mark their center
	if r < 0.5 {
		if coverage(0) > 0 {
			plot(int(math.Round(x)), int(math.Round(y)))
		}
		return
	}

	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-r)), int(math.Ceil(y+r))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx, dy := float64(px)-x, float64(py)-y
			d := math.Sqrt(dx*dx+dy*dy) / r
			if d > 1 {
				continue
			}
			threshold := (bayer[(py&3)][(px&3)] + 0.5) / 16
			if coverage(d) > threshold {
				plot(px, py)
			}
		}
	}
}

// Window is a band of a canvas starting at sub-pixel row Top and Rows
// sub-pixels tall. It is a thermo.Surface in its own coordinates; draws
// outside the band are dropped.
type Window struct {
	Canvas *Canvas
	Top    int
	Rows   int
}

var _ thermo.Surface = (*Window)(nil)

func (w *Window) Size() thermo.Size {
	return thermo.Size{Width: float64(w.Canvas.Width * 2), Height: float64(max(w.Rows, 0))}
}

// Clear empties the cell rows the band touches.
func (w *Window) Clear() {
	if w.Rows <= 0 {
		return
	}
	first, last := max(w.Top/4, 0), min((w.Top+w.Rows-1)/4, w.Canvas.Height-1)
	for i := first; i <= last; i++ {
		for j := range w.Canvas.Grid[i] {
			w.Canvas.Grid[i][j] = 0x2800
		}
	}
}

func (w *Window) FillCircle(x, y, r float64, col color.NRGBA) {
	coverage := float64(col.A) / 255
	fill(x, y, r, func(float64) float64 { return coverage }, w.set)
}

func (w *Window) FillRadial(x, y, r float64, inner, outer color.NRGBA) {
	fill(x, y, r, radial(inner, outer), w.set)
}

func (w *Window) set(x, y int) {
	if y < 0 || y >= w.Rows {
		return
	}
	w.Canvas.Set(x, y+w.Top)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
