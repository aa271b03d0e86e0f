// Package render draws the particle collections onto layered surfaces.
//
// Surface is the only drawing capability the engine depends on. It follows
// canvas semantics: Translate and Rotate modify the current transform,
// Save/Restore push and pop it, and Fill* paint a shape in the current local
// coordinate system. Each particle is drawn inside its own Save/Restore pair
// so particles never leak transform state into each other.
package render

import "image/color"

// Surface is an abstract 2D paint target in logical coordinates.
type Surface interface {
	// Clear erases the whole surface and resets the transform stack.
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	// FillEllipse paints an axis-aligned ellipse centred on the local origin.
	FillEllipse(rx, ry float64, clr color.Color)

	// FillRect paints a rectangle with its top-left corner at (x, y).
	FillRect(x, y, w, h float64, clr color.Color)
}
