package spotlight

import (
	"log"
	"time"

	"github.com/decker502/rising/pkg/clock"
)

// Rotation moves the spotlight through a Source, manually or on a fixed
// auto-advance period.
type Rotation struct {
	src      Source
	seq      *Sequencer
	timers   clock.Timers
	interval time.Duration

	index int
	auto  *clock.Timer
}

// NewRotation creates a rotation over src driving seq.
func NewRotation(src Source, seq *Sequencer, timers clock.Timers, interval time.Duration) *Rotation {
	return &Rotation{
		src:      src,
		seq:      seq,
		timers:   timers,
		interval: interval,
	}
}

// Index returns the current selection, or -1 while the list is empty.
func (r *Rotation) Index() int {
	if r.src.Len() == 0 {
		return -1
	}
	return r.index
}

// Advance selects the next item and presents it. On an empty list the
// fallback pair is shown instead.
func (r *Rotation) Advance() {
	n := r.src.Len()
	if n == 0 {
		r.index = 0
		r.seq.PresentFallback()
		return
	}
	r.index = (r.index + 1) % n
	r.seq.Present(r.src.At(r.index))
}

// JumpTo selects item i, wrapping any integer into [0, n).
func (r *Rotation) JumpTo(i int) {
	n := r.src.Len()
	if n == 0 {
		r.index = 0
		r.seq.PresentFallback()
		return
	}
	r.index = ((i % n) + n) % n
	r.seq.Present(r.src.At(r.index))
}

// Sync revalidates the selection after the list changed. The running
// sequence is left alone unless the list became empty.
func (r *Rotation) Sync() {
	n := r.src.Len()
	if n == 0 {
		r.index = 0
		if r.seq.State() != StateIdle || r.seq.Primary() != r.seq.cfg.FallbackName {
			r.seq.PresentFallback()
		}
		return
	}
	if r.index >= n {
		r.index %= n
	}
}

// StartAuto starts the auto-advance timer, replacing a running one.
func (r *Rotation) StartAuto() {
	if r.auto.Active() {
		r.auto.Stop()
	}
	r.auto = r.timers.Every(r.interval, r.Advance)
	log.Printf("[Rotation] Auto-advance started (every %v)", r.interval)
}

// StopAuto stops the auto-advance timer. Calling it while stopped is a no-op.
func (r *Rotation) StopAuto() {
	if !r.auto.Active() {
		return
	}
	r.auto.Stop()
	r.auto = nil
	log.Printf("[Rotation] Auto-advance stopped")
}

// IsAuto reports whether the auto-advance timer is running.
func (r *Rotation) IsAuto() bool {
	return r.auto.Active()
}
