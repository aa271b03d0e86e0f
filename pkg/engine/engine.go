// Package engine assembles the particle layers and the spotlight into one
// instance driven by a single Tick per host frame.
package engine

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/rising/internal/particle"
	"github.com/decker502/rising/pkg/clock"
	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/render"
	"github.com/decker502/rising/pkg/spotlight"
	"github.com/decker502/rising/pkg/systems"
)

// BlessingName is the display name used for random blessings.
const BlessingName = "Blessing"

// Chimer plays the short celebration sound. PlayChime reports whether a
// sound was actually started.
type Chimer interface {
	PlayChime() bool
}

// Options configures a new Engine.
type Options struct {
	Config *config.EngineConfig // nil uses config.DefaultEngineConfig()
	Source spotlight.Source     // the wish list; nil means an empty list
	Rand   *rand.Rand           // nil seeds from the wall clock

	// Petals and Confetti are the two drawing layers. Either may be nil, in
	// which case that collection is simulated but not drawn.
	Petals   render.Surface
	Confetti render.Surface

	Chimer    Chimer
	Blessings []string

	Width, Height float64 // logical surface size
}

// Engine owns every piece of mutable state of one animated surface.
// It is not safe for concurrent use: the host calls every method from its
// update loop.
type Engine struct {
	cfg *config.EngineConfig
	rng *rand.Rand

	clock   *clock.Scheduler
	store   *particle.Store
	seq     *spotlight.Sequencer
	rot     *spotlight.Rotation
	frames  *systems.FrameScheduler
	spawner *systems.AmbientSpawner

	source    spotlight.Source
	chimer    Chimer
	blessings []string

	pendingFrame func(now time.Duration)
	started      bool
}

// New creates an engine. Nothing moves until Start is called.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	src := opts.Source
	if src == nil {
		src = spotlight.Items(nil)
	}

	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		clock:     clock.NewScheduler(),
		source:    src,
		chimer:    opts.Chimer,
		blessings: opts.Blessings,
	}

	e.store = particle.NewStore(particleConfig(cfg), rng, opts.Width, opts.Height)
	e.seq = spotlight.NewSequencer(sequencerConfig(cfg), e.clock, rng, e.store)
	e.rot = spotlight.NewRotation(src, e.seq, e.clock, cfg.Rotation.AutoInterval)
	e.frames = systems.NewFrameScheduler(e, e.store, opts.Petals, opts.Confetti,
		cfg.Frame.TargetPeriod, cfg.Frame.MaxElapsed)
	e.spawner = systems.NewAmbientSpawner(e.clock, e.store, cfg.Ambient.SpawnInterval)

	return e
}

func particleConfig(cfg *config.EngineConfig) particle.Config {
	return particle.Config{
		SoftTarget:    cfg.Ambient.SoftTarget,
		SpawnChance:   cfg.Ambient.SpawnChance,
		SpawnBatch:    cfg.Ambient.SpawnBatch,
		AmbientMargin: cfg.Ambient.RemovalMargin,
		Gravity:       cfg.Burst.Gravity,
		Damping:       cfg.Burst.Damping,
		BurstMargin:   cfg.Burst.RemovalMargin,
		LifeMin:       cfg.Burst.LifeMin,
		LifeJitter:    cfg.Burst.LifeJitter,
	}
}

func sequencerConfig(cfg *config.EngineConfig) spotlight.Config {
	return spotlight.Config{
		NameInterval:   cfg.Spotlight.NameInterval,
		TextInterval:   cfg.Spotlight.TextInterval,
		CaretPause:     cfg.Spotlight.CaretPause,
		Decoration:     cfg.Spotlight.Decoration,
		CelebrateCount: cfg.Spotlight.CelebrateCount,
		Effects:        cfg.Spotlight.Effects,
		FallbackName:   cfg.Spotlight.FallbackName,
		FallbackText:   cfg.Spotlight.FallbackText,
	}
}

// Start seeds the ambient layer, starts the frame loop and the periodic
// timers, and spotlights the first item.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true

	e.store.Seed(e.cfg.Ambient.InitialCount)
	e.frames.Start()
	e.spawner.Start()
	e.rot.JumpTo(0)
	if e.cfg.Rotation.AutoStart {
		e.rot.StartAuto()
	}
	log.Printf("[Engine] Started: %d items, %d petals", e.source.Len(), e.store.PetalCount())
}

// Stop tears down the frame loop and every timer.
func (e *Engine) Stop() {
	if !e.started {
		return
	}
	e.started = false

	e.frames.Stop()
	e.spawner.Stop()
	e.rot.StopAuto()
	e.seq.Stop()
	e.pendingFrame = nil
	log.Printf("[Engine] Stopped")
}

// RequestFrame implements systems.FrameRequester. The callback runs on the
// next Tick.
func (e *Engine) RequestFrame(cb func(now time.Duration)) {
	e.pendingFrame = cb
}

// Tick advances the engine to now, the time since the host started. Due
// timers fire first, then the pending frame callback steps and redraws the
// particle layers.
func (e *Engine) Tick(now time.Duration) {
	e.clock.AdvanceTo(now)

	if cb := e.pendingFrame; cb != nil {
		e.pendingFrame = nil
		cb(now)
	}
}

// Resize updates the logical surface size. Particle coordinates are kept.
func (e *Engine) Resize(width, height float64) {
	e.store.SetBounds(width, height)
}

// SetSurfaces replaces the drawing layers.
func (e *Engine) SetSurfaces(petals, confetti render.Surface) {
	e.frames.SetSurfaces(petals, confetti)
}

// Present supersedes the current spotlight with item. The item does not
// need to be part of the list.
func (e *Engine) Present(item spotlight.Item) {
	e.seq.Present(item)
}

// Advance spotlights the next item.
func (e *Engine) Advance() {
	e.rot.Advance()
}

// JumpTo spotlights item i (wrapped into range).
func (e *Engine) JumpTo(i int) {
	e.rot.JumpTo(i)
}

// StartAuto starts automatic rotation.
func (e *Engine) StartAuto() {
	e.rot.StartAuto()
}

// StopAuto stops automatic rotation.
func (e *Engine) StopAuto() {
	e.rot.StopAuto()
}

// ToggleAuto flips automatic rotation and returns the new state.
func (e *Engine) ToggleAuto() bool {
	if e.rot.IsAuto() {
		e.rot.StopAuto()
	} else {
		e.rot.StartAuto()
	}
	return e.rot.IsAuto()
}

// IsAuto reports whether automatic rotation is running.
func (e *Engine) IsAuto() bool {
	return e.rot.IsAuto()
}

// Index returns the spotlighted list index, or -1 while the list is empty.
func (e *Engine) Index() int {
	return e.rot.Index()
}

// ListChanged revalidates the selection after the list was mutated.
func (e *Engine) ListChanged() {
	e.rot.Sync()
}

// SpawnBurst spawns count confetti at (x, y).
func (e *Engine) SpawnBurst(x, y float64, count int) {
	e.store.SpawnBurst(x, y, count)
}

// BurstRandom spawns count confetti at a random point in the middle band.
func (e *Engine) BurstRandom(count int) {
	e.store.BurstRandom(count)
}

// ManualBurst is the user-triggered confetti shower.
func (e *Engine) ManualBurst() {
	e.store.BurstRandom(e.cfg.Celebration.ManualBurst)
}

// SilentBurst marks a wish added without taking the spotlight.
func (e *Engine) SilentBurst() {
	e.store.BurstRandom(e.cfg.Celebration.SilentBurst)
}

// Celebrate plays the small celebration: grouped confetti near the card and
// the chime.
func (e *Engine) Celebrate() {
	e.store.Celebrate(e.cfg.Celebration.TinyGroups)
	if e.chimer != nil {
		e.chimer.PlayChime()
	}
}

// Bless spotlights a random blessing phrase and bursts confetti. It returns
// false when no blessings are configured.
func (e *Engine) Bless() bool {
	if len(e.blessings) == 0 {
		log.Printf("[Engine] Warning: no blessings configured")
		return false
	}
	text := e.blessings[e.rng.Intn(len(e.blessings))]
	e.seq.Present(spotlight.Item{Name: BlessingName, Text: text})
	e.store.BurstRandom(e.cfg.Spotlight.BlessingBurst)
	return true
}

// Primary returns the visible name.
func (e *Engine) Primary() string { return e.seq.Primary() }

// Secondary returns the visible text.
func (e *Engine) Secondary() string { return e.seq.Secondary() }

// Caret returns the target showing the typing caret.
func (e *Engine) Caret() spotlight.Target { return e.seq.Caret() }

// Effect returns the active entrance effect, or "".
func (e *Engine) Effect() string { return e.seq.Effect() }

// EffectAge returns how long the current entrance effect has been applied.
func (e *Engine) EffectAge() time.Duration { return e.clock.Now() - e.seq.EffectStart() }

// State returns the spotlight state.
func (e *Engine) State() spotlight.State { return e.seq.State() }

// Petals returns the live petals for custom drawing.
func (e *Engine) Petals() []particle.Petal { return e.store.Petals() }

// Confetti returns the live confetti for custom drawing.
func (e *Engine) Confetti() []particle.Confetti { return e.store.Confetti() }

// DrawPetals draws the petal layer into s.
func (e *Engine) DrawPetals(s render.Surface) { render.DrawPetals(s, e.store.Petals()) }

// DrawConfetti draws the confetti layer into s.
func (e *Engine) DrawConfetti(s render.Surface) { render.DrawConfetti(s, e.store.Confetti()) }

// Now returns the engine clock.
func (e *Engine) Now() time.Duration { return e.clock.Now() }

// Frames returns the number of particle frames run.
func (e *Engine) Frames() uint64 { return e.frames.Frames() }

// OnSettled registers a callback for fully revealed sequences.
func (e *Engine) OnSettled(fn func(spotlight.Item)) { e.seq.OnSettled = fn }

// OnPrimaryRevealed registers a callback for completed names.
func (e *Engine) OnPrimaryRevealed(fn func(spotlight.Item)) { e.seq.OnPrimaryRevealed = fn }
