package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/rising/internal/particle"
)

// recordingSurface 记录绘制调用并跟踪变换栈，用于验证渲染顺序
type recordingSurface struct {
	ops      []string
	cur      Affine
	stack    []Affine
	maxDepth int
	fills    []fill
}

type fill struct {
	kind   string
	center [2]float64 // surface-space centre of the shape
	w, h   float64
	clr    color.Color
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{cur: Identity()}
}

func (r *recordingSurface) Clear() {
	r.ops = append(r.ops, "clear")
	r.cur = Identity()
	r.stack = r.stack[:0]
}

func (r *recordingSurface) Save() {
	r.ops = append(r.ops, "save")
	r.stack = append(r.stack, r.cur)
	if len(r.stack) > r.maxDepth {
		r.maxDepth = len(r.stack)
	}
}

func (r *recordingSurface) Restore() {
	r.ops = append(r.ops, "restore")
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *recordingSurface) Translate(x, y float64) {
	r.ops = append(r.ops, "translate")
	r.cur = r.cur.Translate(x, y)
}

func (r *recordingSurface) Rotate(theta float64) {
	r.ops = append(r.ops, "rotate")
	r.cur = r.cur.Rotate(theta)
}

func (r *recordingSurface) FillEllipse(rx, ry float64, clr color.Color) {
	r.ops = append(r.ops, "ellipse")
	cx, cy := r.cur.Apply(0, 0)
	r.fills = append(r.fills, fill{kind: "ellipse", center: [2]float64{cx, cy}, w: rx, h: ry, clr: clr})
}

func (r *recordingSurface) FillRect(x, y, w, h float64, clr color.Color) {
	r.ops = append(r.ops, "rect")
	cx, cy := r.cur.Apply(x+w/2, y+h/2)
	r.fills = append(r.fills, fill{kind: "rect", center: [2]float64{cx, cy}, w: w, h: h, clr: clr})
}

func TestDrawPetalsEmptyOnlyClears(t *testing.T) {
	s := newRecordingSurface()
	DrawPetals(s, nil)
	if len(s.ops) != 1 || s.ops[0] != "clear" {
		t.Errorf("expected only clear, got %v", s.ops)
	}

	s = newRecordingSurface()
	DrawConfetti(s, []particle.Confetti{})
	if len(s.ops) != 1 || s.ops[0] != "clear" {
		t.Errorf("expected only clear, got %v", s.ops)
	}
}

func TestDrawPetalsIsolatesTransforms(t *testing.T) {
	petals := []particle.Petal{
		{X: 100, Y: 50, Radius: 10, Rot: math.Pi / 3, Hue: 30},
		{X: 300, Y: 200, Radius: 6, Rot: 1.1, Hue: 50},
	}

	s := newRecordingSurface()
	DrawPetals(s, petals)

	want := []string{
		"clear",
		"save", "translate", "rotate", "ellipse", "restore",
		"save", "translate", "rotate", "ellipse", "restore",
	}
	if len(s.ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, s.ops)
	}
	for i := range want {
		if s.ops[i] != want[i] {
			t.Fatalf("op %d: expected %s, got %s", i, want[i], s.ops[i])
		}
	}

	if s.maxDepth != 1 {
		t.Errorf("expected transform stack depth 1, got %d", s.maxDepth)
	}

	// Each petal lands on its own position regardless of the previous rotation.
	for i, p := range petals {
		f := s.fills[i]
		if math.Abs(f.center[0]-p.X) > 1e-9 || math.Abs(f.center[1]-p.Y) > 1e-9 {
			t.Errorf("petal %d drawn at (%.2f, %.2f), want (%.2f, %.2f)", i, f.center[0], f.center[1], p.X, p.Y)
		}
		if f.w != p.Radius*1.3 || f.h != p.Radius {
			t.Errorf("petal %d radii = (%.2f, %.2f), want (%.2f, %.2f)", i, f.w, f.h, p.Radius*1.3, p.Radius)
		}
	}
}

func TestDrawConfettiCentresRect(t *testing.T) {
	c := particle.Confetti{X: 40, Y: 60, Size: 10, Rot: 0.7, Color: color.NRGBA{R: 255, A: 255}, Life: 10}

	s := newRecordingSurface()
	DrawConfetti(s, []particle.Confetti{c})

	if len(s.fills) != 1 || s.fills[0].kind != "rect" {
		t.Fatalf("expected one rect, got %+v", s.fills)
	}
	f := s.fills[0]
	if f.w != 10 || f.h != 6 {
		t.Errorf("expected 10x6 rect, got %.1fx%.1f", f.w, f.h)
	}

	// The rect spans [-5, 5] x [-5, 1] locally; its centre is (0, -2) rotated.
	sin, cos := math.Sincos(c.Rot)
	wantX := c.X + 2*sin
	wantY := c.Y - 2*cos
	if math.Abs(f.center[0]-wantX) > 1e-9 || math.Abs(f.center[1]-wantY) > 1e-9 {
		t.Errorf("rect centre (%.3f, %.3f), want (%.3f, %.3f)", f.center[0], f.center[1], wantX, wantY)
	}
	if f.clr != c.Color {
		t.Errorf("expected color %v, got %v", c.Color, f.clr)
	}
}

func TestDrawClearsEveryFrame(t *testing.T) {
	s := newRecordingSurface()
	petals := []particle.Petal{{X: 1, Y: 1, Radius: 5}}
	DrawPetals(s, petals)
	DrawPetals(s, petals)

	clears := 0
	for _, op := range s.ops {
		if op == "clear" {
			clears++
		}
	}
	if clears != 2 {
		t.Errorf("expected a clear per frame, got %d", clears)
	}
}
