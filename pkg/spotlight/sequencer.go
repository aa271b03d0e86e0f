package spotlight

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/rising/pkg/clock"
)

// Config holds the sequencer timing and content settings.
type Config struct {
	NameInterval   time.Duration // per-grapheme delay for the primary target
	TextInterval   time.Duration // per-grapheme delay for the secondary target
	CaretPause     time.Duration // caret stays visible this long after each reveal
	Decoration     time.Duration // entrance effect is removed this long after settling
	CelebrateCount int           // confetti burst on settle
	Effects        []string
	FallbackName   string
	FallbackText   string
}

// DefaultConfig returns the desktop timings.
func DefaultConfig() Config {
	return Config{
		NameInterval:   24 * time.Millisecond,
		TextInterval:   20 * time.Millisecond,
		CaretPause:     140 * time.Millisecond,
		Decoration:     900 * time.Millisecond,
		CelebrateCount: 28,
		Effects:        []string{EffectSlide, EffectZoom, EffectRotate, EffectBounce},
		FallbackName:   "ACI Family",
		FallbackText:   "Wishes you a joyous Janmashtami!",
	}
}

// Sequencer runs the spotlight state machine
//
//	Idle → RevealingPrimary → RevealingSecondary → Settled
//
// and back to RevealingPrimary on the next Present. Only one sequence is live:
// Present bumps the token and stops every timer of the previous sequence
// before touching the display.
type Sequencer struct {
	cfg     Config
	timers  clock.Timers
	rng     *rand.Rand
	burster Burster

	token uint64
	state State
	item  Item

	primary   string
	secondary string
	caret     Target

	effect      string
	effectStart time.Duration

	current    *reveal
	revealTick *clock.Timer
	pause      *clock.Timer
	decoration *clock.Timer

	// OnPrimaryRevealed is called once the primary target holds the full name.
	OnPrimaryRevealed func(Item)
	// OnSettled is called after both targets are complete and the celebration
	// burst was requested.
	OnSettled func(Item)
	// OnChange is called after every visible mutation.
	OnChange func()
}

// NewSequencer creates an idle sequencer. burster may be nil.
func NewSequencer(cfg Config, timers clock.Timers, rng *rand.Rand, burster Burster) *Sequencer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if len(cfg.Effects) == 0 {
		cfg.Effects = DefaultConfig().Effects
	}
	return &Sequencer{
		cfg:     cfg,
		timers:  timers,
		rng:     rng,
		burster: burster,
	}
}

// Present supersedes any running sequence and starts revealing item.
func (s *Sequencer) Present(item Item) {
	s.cancel()
	s.token++

	s.item = item
	s.effect = s.cfg.Effects[s.rng.Intn(len(s.cfg.Effects))]
	s.effectStart = s.timers.Now()
	s.primary = ""
	s.secondary = ""

	s.enter(StateRevealingPrimary)
}

// PresentFallback supersedes any running sequence and shows the fixed
// placeholder pair without a reveal.
func (s *Sequencer) PresentFallback() {
	s.cancel()
	s.token++

	s.item = Item{Name: s.cfg.FallbackName, Text: s.cfg.FallbackText}
	s.effect = ""
	s.primary = s.cfg.FallbackName
	s.secondary = s.cfg.FallbackText
	s.caret = TargetNone
	s.state = StateIdle
	s.changed()
}

// Stop cancels the running sequence, leaving the display as it is.
func (s *Sequencer) Stop() {
	s.cancel()
	s.token++
	s.caret = TargetNone
}

// State returns the current state.
func (s *Sequencer) State() State { return s.state }

// Item returns the item of the current sequence.
func (s *Sequencer) Item() Item { return s.item }

// Primary returns the visible content of the primary target.
func (s *Sequencer) Primary() string { return s.primary }

// Secondary returns the visible content of the secondary target.
func (s *Sequencer) Secondary() string { return s.secondary }

// Caret returns the target currently showing the typing caret.
func (s *Sequencer) Caret() Target { return s.caret }

// Effect returns the active entrance effect, or "" once it was removed.
func (s *Sequencer) Effect() string { return s.effect }

// EffectStart returns the timer time at which the current effect was applied.
func (s *Sequencer) EffectStart() time.Duration { return s.effectStart }

// Token returns the live sequence token.
func (s *Sequencer) Token() uint64 { return s.token }

// cancel stops every timer of the live sequence. Stop is synchronous, so no
// callback of the old sequence can run after this returns.
func (s *Sequencer) cancel() {
	s.revealTick.Stop()
	s.pause.Stop()
	s.decoration.Stop()
	s.revealTick, s.pause, s.decoration = nil, nil, nil
	s.current = nil
}

func (s *Sequencer) live(tok uint64) bool {
	return tok == s.token
}

// enter performs the entry action of st for the live sequence.
func (s *Sequencer) enter(st State) {
	s.state = st
	tok := s.token

	switch st {
	case StateRevealingPrimary:
		s.caret = TargetPrimary
		s.changed()
		if !s.live(tok) {
			return
		}
		s.startReveal(tok, s.item.Name, s.cfg.NameInterval)

	case StateRevealingSecondary:
		s.caret = TargetSecondary
		s.changed()
		if !s.live(tok) {
			return
		}
		s.startReveal(tok, s.item.Text, s.cfg.TextInterval)

	case StateSettled:
		s.caret = TargetNone
		s.changed()
		if !s.live(tok) {
			return
		}
		if s.burster != nil {
			s.burster.BurstRandom(s.cfg.CelebrateCount)
		}
		if s.OnSettled != nil {
			s.OnSettled(s.item)
		}
		if !s.live(tok) {
			return
		}
		s.decoration = s.timers.AfterFunc(s.cfg.Decoration, func() {
			if !s.live(tok) {
				return
			}
			s.decoration = nil
			s.effect = ""
			s.changed()
		})
	}
}

// startReveal begins the character protocol for the current state's target.
// Zero-length text resolves without a timer.
func (s *Sequencer) startReveal(tok uint64, text string, interval time.Duration) {
	s.current = newReveal(text)
	if s.current.done() {
		s.revealed(tok)
		return
	}

	s.revealTick = s.timers.Every(interval, func() {
		if !s.live(tok) || s.current == nil {
			return
		}
		s.current.next()
		s.setTarget(s.current.visible())
		s.changed()
		if !s.live(tok) {
			return
		}
		if s.current.done() {
			s.revealTick.Stop()
			s.revealTick = nil
			s.revealed(tok)
		}
	})
}

func (s *Sequencer) setTarget(v string) {
	switch s.state {
	case StateRevealingPrimary:
		s.primary = v
	case StateRevealingSecondary:
		s.secondary = v
	}
}

// revealed runs when the current target holds its full text. The caret stays
// up for CaretPause before the machine moves on.
func (s *Sequencer) revealed(tok uint64) {
	s.current = nil
	from := s.state

	if from == StateRevealingPrimary && s.OnPrimaryRevealed != nil {
		s.OnPrimaryRevealed(s.item)
		if !s.live(tok) {
			return
		}
	}

	s.pause = s.timers.AfterFunc(s.cfg.CaretPause, func() {
		if !s.live(tok) {
			return
		}
		s.pause = nil
		switch from {
		case StateRevealingPrimary:
			s.enter(StateRevealingSecondary)
		case StateRevealingSecondary:
			s.enter(StateSettled)
		default:
			log.Printf("[Sequencer] Warning: reveal finished in unexpected state %s", from)
		}
	})
}

func (s *Sequencer) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
