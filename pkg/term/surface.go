// Package term renders the engine into a terminal cell grid with tcell.
//
// Each cell is treated as one pixel: a Surface keeps a colour per cell and
// Composite paints the colours as cell backgrounds. Text is drawn on top
// with grapheme-aware widths.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/rising/pkg/render"
)

// Logical size of one terminal cell. Cells are about twice as tall as wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Background is the colour of unpainted cells.
var Background = colorful.Color{R: 0x12 / 255.0, G: 0x10 / 255.0, B: 0x2a / 255.0}

type cell struct {
	clr colorful.Color
	set bool
}

// Surface is a render.Surface backed by a cols x rows grid.
type Surface struct {
	cols, rows int
	cells      []cell

	base  render.Affine
	cur   render.Affine
	stack []render.Affine
}

// NewSurface creates a surface for a terminal of cols x rows cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// LogicalSize returns the logical size covered by cols x rows cells.
func LogicalSize(cols, rows int) (float64, float64) {
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

// Resize reallocates the grid. Content is dropped.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
	s.base = render.Scaling(1/CellWidth, 1/CellHeight)
	s.cur = s.base
	s.stack = s.stack[:0]
}

// Size returns the grid size in cells.
func (s *Surface) Size() (int, int) {
	return s.cols, s.rows
}

// Clear implements render.Surface.
func (s *Surface) Clear() {
	clear(s.cells)
	s.cur = s.base
	s.stack = s.stack[:0]
}

// Save implements render.Surface.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
}

// Restore implements render.Surface. Restore with an empty stack is ignored.
func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

// Translate implements render.Surface.
func (s *Surface) Translate(x, y float64) {
	s.cur = s.cur.Translate(x, y)
}

// Rotate implements render.Surface.
func (s *Surface) Rotate(theta float64) {
	s.cur = s.cur.Rotate(theta)
}

// FillEllipse implements render.Surface. A shape smaller than a cell still
// paints the cell under its centre.
func (s *Surface) FillEllipse(rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.fill(-rx, -ry, rx, ry, clr, func(x, y float64) bool {
		return (x*x)/(rx*rx)+(y*y)/(ry*ry) <= 1
	})
}

// FillRect implements render.Surface.
func (s *Surface) FillRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	s.fill(x, y, x+w, y+h, clr, func(lx, ly float64) bool {
		return lx >= x && lx <= x+w && ly >= y && ly <= y+h
	})
}

// fill paints every cell whose centre maps inside the local shape.
func (s *Surface) fill(x0, y0, x1, y1 float64, clr color.Color, inside func(x, y float64) bool) {
	inv, ok := s.cur.Invert()
	if !ok {
		return
	}
	minX, minY, maxX, maxY := s.cur.BoundingBox(x0, y0, x1, y1)

	c0 := max(int(math.Floor(minX)), 0)
	r0 := max(int(math.Floor(minY)), 0)
	c1 := min(int(math.Ceil(maxX)), s.cols-1)
	r1 := min(int(math.Ceil(maxY)), s.rows-1)

	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			lx, ly := inv.Apply(float64(col)+0.5, float64(row)+0.5)
			if inside(lx, ly) {
				s.paint(col, row, clr)
				painted = true
			}
		}
	}
	if !painted {
		cx, cy := s.cur.Apply((x0+x1)/2, (y0+y1)/2)
		s.paint(int(math.Floor(cx)), int(math.Floor(cy)), clr)
	}
}

// paint blends clr over the cell by its alpha.
func (s *Surface) paint(col, row int, clr color.Color) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	_, _, _, a := clr.RGBA()
	if a == 0 {
		return
	}
	fg, _ := colorful.MakeColor(clr)

	c := &s.cells[row*s.cols+col]
	under := Background
	if c.set {
		under = c.clr
	}
	c.clr = under.BlendRgb(fg, float64(a)/0xffff).Clamped()
	c.set = true
}

// At returns the cell colour and whether the cell was painted.
func (s *Surface) At(col, row int) (colorful.Color, bool) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return colorful.Color{}, false
	}
	c := s.cells[row*s.cols+col]
	return c.clr, c.set
}

// tcellColor converts a colorful colour to a terminal true colour.
func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Composite paints the layers into screen, later layers on top. Cells no
// layer painted get the background colour.
func Composite(screen tcell.Screen, layers ...*Surface) {
	cols, rows := screen.Size()
	bg := tcell.StyleDefault.Background(tcellColor(Background))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			style := bg
			for i := len(layers) - 1; i >= 0; i-- {
				if c, ok := layers[i].At(col, row); ok {
					style = tcell.StyleDefault.Background(tcellColor(c))
					break
				}
			}
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}
