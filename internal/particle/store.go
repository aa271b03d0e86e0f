package particle

import (
	"image/color"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Store owns the petal and confetti collections of one engine instance.
//
// Store is not safe for concurrent use; the engine drives it from a single
// execution context.
type Store struct {
	cfg Config
	rng *rand.Rand

	width, height float64

	petals   []Petal
	confetti []Confetti
}

// NewStore creates an empty store for a surface of the given logical size.
// A nil rng falls back to a time-independent fixed seed so that output is
// reproducible; production callers pass their own source.
func NewStore(cfg Config, rng *rand.Rand, width, height float64) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Store{
		cfg:      cfg,
		rng:      rng,
		width:    width,
		height:   height,
		petals:   make([]Petal, 0, cfg.SoftTarget+cfg.SpawnBatch),
		confetti: make([]Confetti, 0, 256),
	}
}

// SetBounds updates the logical surface size used for spawning and removal.
// Existing particle coordinates are left untouched.
func (s *Store) SetBounds(width, height float64) {
	s.width = width
	s.height = height
}

// Bounds returns the logical surface size.
func (s *Store) Bounds() (float64, float64) {
	return s.width, s.height
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Petals returns the live petals. The slice is owned by the store and is
// only valid until the next mutating call.
func (s *Store) Petals() []Petal {
	return s.petals
}

// Confetti returns the live confetti. Same ownership rules as Petals.
func (s *Store) Confetti() []Confetti {
	return s.confetti
}

// PetalCount returns the ambient population size.
func (s *Store) PetalCount() int {
	return len(s.petals)
}

// ConfettiCount returns the burst population size.
func (s *Store) ConfettiCount() int {
	return len(s.confetti)
}

// Clear removes every particle from both collections.
func (s *Store) Clear() {
	s.petals = s.petals[:0]
	s.confetti = s.confetti[:0]
}

// SpawnPetal adds one petal at (x, y) with randomized kinematics.
func (s *Store) SpawnPetal(x, y float64) {
	s.petals = append(s.petals, Petal{
		X:      x,
		Y:      y,
		VX:     (s.rng.Float64() - 0.5) * 0.6,
		VY:     0.6 + s.rng.Float64()*1.2,
		Radius: 6 + s.rng.Float64()*10,
		Rot:    s.rng.Float64() * math.Pi * 2,
		VRot:   (s.rng.Float64() - 0.5) * 0.06,
		Hue:    20 + s.rng.Float64()*40,
	})
}

// SpawnPetalRandom adds one petal at a random x just above the top edge.
func (s *Store) SpawnPetalRandom() {
	s.SpawnPetal(s.rng.Float64()*s.width, petalSpawnY)
}

// Seed spreads n petals over the whole surface. Used once at startup so the
// scene does not begin empty.
func (s *Store) Seed(n int) {
	for i := 0; i < n; i++ {
		s.SpawnPetal(s.rng.Float64()*s.width, s.rng.Float64()*s.height)
	}
}

// SpawnPetalBatch adds up to SpawnBatch petals staggered above the top edge.
// Nothing is spawned once the population has reached the soft target, which
// keeps the ambient count within SoftTarget+SpawnBatch.
// Returns the number of petals spawned.
func (s *Store) SpawnPetalBatch() int {
	if len(s.petals) >= s.cfg.SoftTarget {
		return 0
	}
	for i := 0; i < s.cfg.SpawnBatch; i++ {
		s.SpawnPetal(s.rng.Float64()*s.width, -10-s.rng.Float64()*120)
	}
	return s.cfg.SpawnBatch
}

// SpawnBurst adds count confetti pieces at (x, y).
func (s *Store) SpawnBurst(x, y float64, count int) {
	for i := 0; i < count; i++ {
		hue := math.Floor(s.rng.Float64()*40) + 20
		lightness := 0.45 + s.rng.Float64()*0.2
		r, g, b := colorful.Hsl(hue, 0.9, lightness).Clamped().RGB255()

		s.confetti = append(s.confetti, Confetti{
			X:     x,
			Y:     y,
			VX:    (s.rng.Float64() - 0.5) * 8,
			VY:    (s.rng.Float64() - 0.9) * 8,
			Size:  6 + s.rng.Float64()*8,
			Rot:   s.rng.Float64() * math.Pi * 2,
			VRot:  (s.rng.Float64() - 0.5) * 0.3,
			Color: color.NRGBA{R: r, G: g, B: b, A: 255},
			Life:  s.cfg.LifeMin + s.rng.Float64()*s.cfg.LifeJitter,
		})
	}
}

// BurstRandom spawns count confetti at a random x in the middle band of the
// surface (y between 30% and 70% of the height).
func (s *Store) BurstRandom(count int) {
	x := s.rng.Float64() * s.width
	y := s.height*0.3 + s.rng.Float64()*s.height*0.4
	s.SpawnBurst(x, y, count)
}

// Celebrate spawns groups small bursts jittered around the upper centre.
func (s *Store) Celebrate(groups int) {
	for i := 0; i < groups; i++ {
		x := s.width*0.5 + (s.rng.Float64()-0.5)*300
		y := s.height*0.45 + (s.rng.Float64()-0.5)*100
		s.SpawnBurst(x, y, celebrateGroupSize)
	}
}

// Step advances both collections by dt frame units.
func (s *Store) Step(dt float64) {
	s.StepPetals(dt)
	s.StepConfetti(dt)
}

// StepPetals moves petals, drops the ones below the bottom margin and, while
// under the soft target, spawns one new petal behind a random gate.
func (s *Store) StepPetals(dt float64) {
	if dt < 0 {
		dt = 0
	}
	limit := s.height + s.cfg.AmbientMargin

	alive := s.petals[:0]
	for _, p := range s.petals {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Rot += p.VRot * dt
		if p.Y > limit {
			continue
		}
		alive = append(alive, p)
	}
	s.petals = alive

	if len(s.petals) < s.cfg.SoftTarget && s.rng.Float64() < s.cfg.SpawnChance {
		s.SpawnPetalRandom()
	}
}

// StepConfetti applies gravity, moves confetti and drops expired or fallen
// pieces. Gravity is added once per step regardless of dt so bursts keep the
// same weight at any frame rate.
func (s *Store) StepConfetti(dt float64) {
	if dt < 0 {
		dt = 0
	}
	limit := s.height + s.cfg.BurstMargin

	alive := s.confetti[:0]
	for _, c := range s.confetti {
		c.VY += s.cfg.Gravity
		c.X += c.VX * dt * s.cfg.Damping
		c.Y += c.VY * dt * s.cfg.Damping
		c.Rot += c.VRot * dt
		c.Life -= dt
		if c.Y > limit || c.Life <= 0 {
			continue
		}
		alive = append(alive, c)
	}
	s.confetti = alive
}
