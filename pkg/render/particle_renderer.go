package render

import "github.com/decker502/rising/internal/particle"

const (
	// petalAspect is the petal ellipse width relative to its height.
	petalAspect = 1.3

	// confettiAspect is the confetti rectangle height relative to its width.
	confettiAspect = 0.6
)

// DrawPetals clears s and paints every petal as a rotated ellipse.
func DrawPetals(s Surface, petals []particle.Petal) {
	s.Clear()
	for _, p := range petals {
		s.Save()
		s.Translate(p.X, p.Y)
		s.Rotate(p.Rot)
		s.FillEllipse(p.Radius*petalAspect, p.Radius, p.Color())
		s.Restore()
	}
}

// DrawConfetti clears s and paints every confetti piece as a rotated
// rectangle centred on its position.
func DrawConfetti(s Surface, confetti []particle.Confetti) {
	s.Clear()
	for _, c := range confetti {
		s.Save()
		s.Translate(c.X, c.Y)
		s.Rotate(c.Rot)
		s.FillRect(-c.Size/2, -c.Size/2, c.Size, c.Size*confettiAspect, c.Color)
		s.Restore()
	}
}
