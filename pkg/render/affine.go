package render

import "math"

// Affine is a 2D affine transform mapping local points to surface points:
//
//	x' = A*x + C*y + Tx
//	y' = B*x + D*y + Ty
type Affine struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Scaling returns a transform that scales by (sx, sy).
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Translate returns m with a translation applied in local space, matching
// canvas translate().
func (m Affine) Translate(x, y float64) Affine {
	m.Tx += m.A*x + m.C*y
	m.Ty += m.B*x + m.D*y
	return m
}

// Rotate returns m with a rotation by theta radians applied in local space,
// matching canvas rotate().
func (m Affine) Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{
		A:  m.A*cos + m.C*sin,
		B:  m.B*cos + m.D*sin,
		C:  -m.A*sin + m.C*cos,
		D:  -m.B*sin + m.D*cos,
		Tx: m.Tx,
		Ty: m.Ty,
	}
}

// Apply maps a local point to surface space.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Affine{}, false
	}
	inv.A = m.D / det
	inv.B = -m.B / det
	inv.C = -m.C / det
	inv.D = m.A / det
	inv.Tx = -(inv.A*m.Tx + inv.C*m.Ty)
	inv.Ty = -(inv.B*m.Tx + inv.D*m.Ty)
	return inv, true
}

// BoundingBox returns the surface-space bounds of the local rectangle
// [x0, x1] x [y0, y1].
func (m Affine) BoundingBox(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		px, py := m.Apply(pt[0], pt[1])
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}
	return minX, minY, maxX, maxY
}
