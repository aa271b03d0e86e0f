// Package particle holds the two particle collections that float behind the
// spotlight: ambient petals that drift down the surface and short-lived
// confetti bursts pulled down by gravity.
//
// All coordinates are logical surface units; the render layer is responsible
// for device pixel scaling. Time is measured in normalized frame units
// (1.0 = one 60 Hz frame).
package particle

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Petal is a single ambient particle.
type Petal struct {
	X, Y   float64 // Position (logical units)
	VX, VY float64 // Velocity per frame unit
	Radius float64 // Minor radius; the ellipse is 1.3x wider than tall
	Rot    float64 // Rotation angle in radians
	VRot   float64 // Rotation speed in radians per frame unit
	Hue    float64 // HSL hue in degrees (warm range 20-60)
}

// Color returns the petal fill color: hsl(hue 90% 65% / 0.95).
func (p Petal) Color() color.NRGBA {
	r, g, b := colorful.Hsl(p.Hue, 0.9, 0.65).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 242}
}

// Confetti is a single burst particle.
type Confetti struct {
	X, Y   float64
	VX, VY float64
	Size   float64 // Width; height is Size*0.6
	Rot    float64
	VRot   float64
	Color  color.NRGBA
	Life   float64 // Remaining life in frame units; never increases
}

// Config controls spawning and the physics step.
//
// SoftTarget is a threshold, not a cap: the per-step gate only spawns while
// the population is below it, and batch spawning can overshoot it by at most
// SpawnBatch-1.
type Config struct {
	SoftTarget    int
	SpawnChance   float64
	SpawnBatch    int
	AmbientMargin float64

	Gravity     float64
	Damping     float64
	BurstMargin float64
	LifeMin     float64
	LifeJitter  float64
}

// DefaultConfig returns the tuning used by the desktop build.
func DefaultConfig() Config {
	return Config{
		SoftTarget:    45,
		SpawnChance:   0.08,
		SpawnBatch:    3,
		AmbientMargin: 30,
		Gravity:       0.24,
		Damping:       0.6,
		BurstMargin:   60,
		LifeMin:       100,
		LifeJitter:    80,
	}
}

const (
	// petalSpawnY is where replenished petals enter, just above the top edge.
	petalSpawnY = -20.0

	// celebrateGroupSize is the confetti count per celebration group.
	celebrateGroupSize = 6
)
