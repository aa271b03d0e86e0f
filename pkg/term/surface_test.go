package term

import (
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var red = color.NRGBA{R: 255, A: 255}

func TestSurfaceFillEllipse(t *testing.T) {
	s := NewSurface(20, 10)

	s.Save()
	s.Translate(80, 80)
	s.FillEllipse(20, 20, red)
	s.Restore()

	if _, ok := s.At(10, 5); !ok {
		t.Error("cell under the ellipse centre should be painted")
	}
	if _, ok := s.At(0, 0); ok {
		t.Error("far cell should stay empty")
	}
}

func TestSurfaceTinyShapePaintsCentreCell(t *testing.T) {
	s := NewSurface(20, 10)
	s.Translate(4, 4)
	s.FillEllipse(1, 1, red)

	if _, ok := s.At(0, 0); !ok {
		t.Error("a sub-cell ellipse should paint the cell under its centre")
	}
}

func TestSurfaceRotatedRect(t *testing.T) {
	s := NewSurface(20, 10)
	s.Translate(80, 80)
	s.Rotate(math.Pi / 2)
	s.FillRect(0, -4, 40, 8, red)

	if _, ok := s.At(10, 6); !ok {
		t.Error("rotated rect should extend downwards")
	}
	if _, ok := s.At(13, 5); ok {
		t.Error("rotated rect should not extend to the right")
	}
}

func TestSurfaceBlendsAlpha(t *testing.T) {
	s := NewSurface(4, 4)
	s.FillRect(0, 0, CellWidth, CellHeight, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	c, ok := s.At(0, 0)
	if !ok {
		t.Fatal("cell should be painted")
	}
	if c.R <= Background.R || c.R >= 1 {
		t.Errorf("expected a blend between background and white, got %v", c)
	}
}

func TestSurfaceClearResetsTransform(t *testing.T) {
	s := NewSurface(20, 10)
	s.Translate(100, 100)
	s.FillRect(0, 0, CellWidth, CellHeight, red)
	s.Clear()

	if _, ok := s.At(12, 6); ok {
		t.Error("Clear should erase painted cells")
	}
	s.FillRect(0, 0, CellWidth, CellHeight, red)
	if _, ok := s.At(0, 0); !ok {
		t.Error("Clear should reset the transform")
	}
}

func TestSurfaceOutOfBounds(t *testing.T) {
	s := NewSurface(4, 4)
	s.Restore() // empty stack is ignored
	s.Translate(-100, -100)
	s.FillEllipse(5, 5, red)
	s.FillRect(0, 0, 1, 1, color.NRGBA{})

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if _, ok := s.At(col, row); ok {
				t.Fatalf("cell (%d, %d) should be empty", col, row)
			}
		}
	}
	if _, ok := s.At(-1, 9); ok {
		t.Error("At outside the grid should report false")
	}
}

func TestComposite(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	bottom := NewSurface(4, 2)
	bottom.FillRect(0, 0, 2*CellWidth, CellHeight, color.NRGBA{G: 255, A: 255})
	top := NewSurface(4, 2)
	top.FillRect(CellWidth, 0, CellWidth, CellHeight, red)

	Composite(screen, bottom, top)

	bgAt := func(col, row int) tcell.Color {
		_, _, style, _ := screen.GetContent(col, row)
		_, bg, _ := style.Decompose()
		return bg
	}
	if bgAt(1, 0) != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("top layer should win at (1, 0), got %v", bgAt(1, 0))
	}
	if bgAt(0, 0) != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("bottom layer should show at (0, 0), got %v", bgAt(0, 0))
	}
	if bgAt(3, 1) != tcellColor(Background) {
		t.Errorf("unpainted cell should use the background, got %v", bgAt(3, 1))
	}
}
