package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/spotlight"
)

type countingChimer struct{ plays int }

func (c *countingChimer) PlayChime() bool {
	c.plays++
	return true
}

const frame = 16666 * time.Microsecond

func newTestEngine(items spotlight.Items) (*Engine, *countingChimer) {
	chimer := &countingChimer{}
	e := New(Options{
		Source:    items,
		Rand:      rand.New(rand.NewSource(11)),
		Chimer:    chimer,
		Blessings: []string{"May Krishna's flute bring melody to your life."},
		Width:     960,
		Height:    640,
	})
	return e, chimer
}

// run ticks the engine frame by frame until d has elapsed.
func run(e *Engine, from, d time.Duration) time.Duration {
	end := from + d
	for now := from; now < end; now += frame {
		e.Tick(now)
	}
	e.Tick(end)
	return end
}

func TestStartSeedsAndSpotlightsFirstItem(t *testing.T) {
	items := spotlight.Items{{Name: "ACI Team", Text: "Warm wishes"}, {Name: "Prince Singh", Text: "Happy Janmashtami"}}
	e, _ := newTestEngine(items)
	e.Start()

	if len(e.Petals()) != config.DefaultEngineConfig().Ambient.InitialCount {
		t.Errorf("expected %d seeded petals, got %d", config.DefaultEngineConfig().Ambient.InitialCount, len(e.Petals()))
	}
	if e.Index() != 0 {
		t.Errorf("expected index 0, got %d", e.Index())
	}
	if e.State() != spotlight.StateRevealingPrimary {
		t.Errorf("expected RevealingPrimary, got %s", e.State())
	}
	if !e.IsAuto() {
		t.Error("auto rotation should start by default")
	}

	run(e, 0, 2*time.Second)
	if e.Primary() != "ACI Team" || e.Secondary() != "Warm wishes" {
		t.Errorf("unexpected spotlight %q / %q", e.Primary(), e.Secondary())
	}
	if e.State() != spotlight.StateSettled {
		t.Errorf("expected Settled, got %s", e.State())
	}
}

func TestTickRunsOneFramePerCall(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()

	for i := 0; i < 30; i++ {
		e.Tick(time.Duration(i) * frame)
	}
	if e.Frames() != 30 {
		t.Errorf("expected 30 frames, got %d", e.Frames())
	}
}

func TestAutoRotationAdvances(t *testing.T) {
	items := spotlight.Items{{Name: "a", Text: "1"}, {Name: "b", Text: "2"}, {Name: "c", Text: "3"}}
	e, _ := newTestEngine(items)
	e.Start()
	e.StartAuto()

	now := run(e, 0, 9*time.Second)
	if e.Index() != 1 {
		t.Errorf("expected index 1 after one period, got %d", e.Index())
	}
	run(e, now, 9*time.Second)
	if e.Index() != 2 {
		t.Errorf("expected index 2 after two periods, got %d", e.Index())
	}
}

func TestEmptyListShowsFallback(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()

	if e.Primary() != "ACI Family" || e.Secondary() != "Wishes you a joyous Janmashtami!" {
		t.Errorf("expected fallback pair, got %q / %q", e.Primary(), e.Secondary())
	}
	e.Advance()
	e.JumpTo(-4)
	if e.Index() != -1 {
		t.Errorf("expected -1 index, got %d", e.Index())
	}
}

func TestBlessPresentsSyntheticItem(t *testing.T) {
	e, _ := newTestEngine(spotlight.Items{{Name: "a", Text: "b"}})
	e.Start()
	before := len(e.Confetti())

	if !e.Bless() {
		t.Fatal("Bless() should succeed with blessings configured")
	}
	if got := len(e.Confetti()) - before; got != 26 {
		t.Errorf("expected 26 confetti, got %d", got)
	}

	run(e, 0, 5*time.Second)
	if e.Primary() != BlessingName {
		t.Errorf("expected %q, got %q", BlessingName, e.Primary())
	}
	if e.Index() != 0 {
		t.Errorf("blessing must not move the selection, got %d", e.Index())
	}
}

func TestBlessWithoutBlessings(t *testing.T) {
	e := New(Options{Width: 100, Height: 100})
	if e.Bless() {
		t.Error("Bless() without blessings should report false")
	}
}

func TestCelebratePlaysChime(t *testing.T) {
	e, chimer := newTestEngine(nil)
	e.Celebrate()

	if chimer.plays != 1 {
		t.Errorf("expected one chime, got %d", chimer.plays)
	}
	want := config.DefaultEngineConfig().Celebration.TinyGroups * 6
	if len(e.Confetti()) != want {
		t.Errorf("expected %d confetti, got %d", want, len(e.Confetti()))
	}
}

func TestBurstsDrainDuringTicks(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()
	e.SpawnBurst(100, 100, 30)
	e.ManualBurst()

	run(e, 0, 5*time.Second)
	if n := len(e.Confetti()); n != 0 {
		t.Errorf("expected confetti drained, got %d", n)
	}
}

func TestStopHaltsEverything(t *testing.T) {
	e, _ := newTestEngine(spotlight.Items{{Name: "a", Text: "b"}})
	e.Start()
	e.Tick(0)
	e.Stop()

	frames := e.Frames()
	run(e, 0, 20*time.Second)
	if e.Frames() != frames {
		t.Errorf("frames advanced after Stop: %d -> %d", frames, e.Frames())
	}
	if e.IsAuto() {
		t.Error("auto rotation should stop with the engine")
	}
}

func TestResizeKeepsParticleCoordinates(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.SpawnBurst(50, 60, 5)

	e.Resize(320, 200)
	for _, c := range e.Confetti() {
		if c.X != 50 || c.Y != 60 {
			t.Errorf("resize moved confetti to (%.1f, %.1f)", c.X, c.Y)
		}
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a, _ := newTestEngine(spotlight.Items{{Name: "one", Text: "x"}})
	b, _ := newTestEngine(spotlight.Items{{Name: "two", Text: "y"}})
	a.Start()
	b.Start()

	run(a, 0, 2*time.Second)
	if b.Primary() != "" {
		t.Errorf("ticking one engine revealed text in another: %q", b.Primary())
	}
	if a.Primary() != "one" {
		t.Errorf("expected %q, got %q", "one", a.Primary())
	}
}

func TestListChangedKeepsIndexValid(t *testing.T) {
	items := spotlight.Items{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	src := &mutableSource{items: items}
	e := New(Options{Source: src, Rand: rand.New(rand.NewSource(1)), Width: 100, Height: 100})
	e.Start()
	e.JumpTo(2)

	src.items = src.items[:1]
	e.ListChanged()
	if e.Index() != 0 {
		t.Errorf("expected index 0, got %d", e.Index())
	}
}

type mutableSource struct{ items spotlight.Items }

func (m *mutableSource) Len() int                 { return len(m.items) }
func (m *mutableSource) At(i int) spotlight.Item { return m.items[i] }
