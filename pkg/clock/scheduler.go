// Package clock provides the timer primitive used by the spotlight and the
// ambient spawner.
//
// Scheduler is a cooperative timer queue: nothing fires on its own. The host
// calls AdvanceTo once per frame from its single update loop and due
// callbacks run inline, in deadline order. This keeps every timer callback on
// the same execution context as the frame loop, so engine state needs no
// locks, and tests can drive time explicitly.
package clock

import (
	"container/heap"
	"time"
)

// minPeriod is the smallest accepted repeat period. Shorter periods would
// make AdvanceTo spin.
const minPeriod = time.Millisecond

// Timer is a handle to a scheduled callback.
type Timer struct {
	s        *Scheduler
	deadline time.Duration
	period   time.Duration // 0 for one-shot timers
	seq      uint64
	fn       func()
	done     bool // stopped or (one-shot) fired
	index    int
}

// Stop cancels the timer. It returns true if the call prevented a future
// firing. Stop takes effect immediately: a stopped timer never runs again,
// even if its deadline has already passed within the current AdvanceTo.
func (t *Timer) Stop() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	t.s.active--
	return true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.done
}

// Scheduler is a virtual-time timer queue. It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	active int
	queue  timerQueue
}

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that will still fire.
func (s *Scheduler) Pending() int {
	return s.active
}

// AfterFunc schedules fn to run once, d after the current scheduler time.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.schedule(s.now+d, 0, fn)
}

// Every schedules fn to run every d, first at now+d.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d < minPeriod {
		d = minPeriod
	}
	return s.schedule(s.now+d, d, fn)
}

func (s *Scheduler) schedule(deadline, period time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		s:        s,
		deadline: deadline,
		period:   period,
		seq:      s.seq,
		fn:       fn,
	}
	s.active++
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d.
func (s *Scheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to t, running every callback whose deadline is
// at or before t. Callbacks observe Now() equal to their own deadline, and
// timers scheduled from inside a callback fire in the same call if they fall
// due. Moving backwards is a no-op.
func (s *Scheduler) AdvanceTo(t time.Duration) {
	if t < s.now {
		return
	}

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.deadline > t {
			break
		}
		heap.Pop(&s.queue)
		if next.done {
			continue
		}

		s.now = next.deadline
		if next.period > 0 {
			next.deadline += next.period
			s.seq++
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			next.done = true
			s.active--
		}
		next.fn()
	}

	s.now = t
}

// timerQueue orders timers by deadline, then by scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Timers is the timer capability consumed by the engine components.
// *Scheduler implements it.
type Timers interface {
	Now() time.Duration
	AfterFunc(d time.Duration, fn func()) *Timer
	Every(d time.Duration, fn func()) *Timer
}

var _ Timers = (*Scheduler)(nil)
