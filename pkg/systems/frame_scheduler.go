package systems

import (
	"log"
	"time"

	"github.com/decker502/rising/internal/particle"
	"github.com/decker502/rising/pkg/render"
)

// FrameRequester 宿主提供的逐帧重绘原语
//
// RequestFrame 注册一个回调，在下一次重绘前调用一次。
// now 是单调递增的宿主时间戳。回调若需继续运行必须重新注册。
type FrameRequester interface {
	RequestFrame(cb func(now time.Duration))
}

// FrameScheduler drives the continuous particle loop.
//
// Each frame it normalizes the elapsed host time into frame units, steps both
// particle collections and redraws both layers, then re-registers itself with
// the host. It keeps running until Stop is called.
type FrameScheduler struct {
	host     FrameRequester
	store    *particle.Store
	petals   render.Surface
	confetti render.Surface

	targetPeriod time.Duration
	maxElapsed   time.Duration

	running    bool
	generation uint64
	last       time.Duration
	hasLast    bool
	frames     uint64
	lastDt     float64
}

// NewFrameScheduler 创建帧调度器
//
// 参数：
//   - host: 宿主重绘原语，可为 nil（降级模式，粒子层不运行）
//   - store: 粒子存储
//   - petals / confetti: 两个独立的绘制层，可为 nil（只更新物理，不绘制）
//   - targetPeriod / maxElapsed: dt 归一化周期和单帧间隔上限
func NewFrameScheduler(host FrameRequester, store *particle.Store, petals, confetti render.Surface, targetPeriod, maxElapsed time.Duration) *FrameScheduler {
	return &FrameScheduler{
		host:         host,
		store:        store,
		petals:       petals,
		confetti:     confetti,
		targetPeriod: targetPeriod,
		maxElapsed:   maxElapsed,
	}
}

// Start registers the frame callback. It returns false when no host is
// available, in which case the particle layer stays idle.
func (fs *FrameScheduler) Start() bool {
	if fs.host == nil {
		log.Printf("[FrameScheduler] Warning: no frame requester available, particle layer disabled")
		return false
	}
	if fs.running {
		return true
	}

	fs.running = true
	fs.generation++
	fs.hasLast = false
	fs.host.RequestFrame(fs.callback(fs.generation))
	log.Printf("[FrameScheduler] Started")
	return true
}

// Stop tears the loop down. A callback already handed to the host becomes a
// no-op and does not re-register.
func (fs *FrameScheduler) Stop() {
	if !fs.running {
		return
	}
	fs.running = false
	log.Printf("[FrameScheduler] Stopped after %d frames", fs.frames)
}

// IsRunning reports whether the loop is active.
func (fs *FrameScheduler) IsRunning() bool {
	return fs.running
}

// Frames returns the number of frames processed.
func (fs *FrameScheduler) Frames() uint64 {
	return fs.frames
}

// LastDt returns the dt used by the most recent frame.
func (fs *FrameScheduler) LastDt() float64 {
	return fs.lastDt
}

// SetSurfaces swaps the layers drawn each frame, e.g. after the host
// recreated them.
func (fs *FrameScheduler) SetSurfaces(petals, confetti render.Surface) {
	fs.petals = petals
	fs.confetti = confetti
}

func (fs *FrameScheduler) callback(gen uint64) func(now time.Duration) {
	return func(now time.Duration) {
		if !fs.running || gen != fs.generation {
			return
		}
		fs.frame(now)
		fs.host.RequestFrame(fs.callback(gen))
	}
}

// frame runs one step + draw pass.
func (fs *FrameScheduler) frame(now time.Duration) {
	dt := fs.normalize(now)
	fs.lastDt = dt
	fs.frames++

	fs.store.Step(dt)

	if fs.petals != nil {
		render.DrawPetals(fs.petals, fs.store.Petals())
	}
	if fs.confetti != nil {
		render.DrawConfetti(fs.confetti, fs.store.Confetti())
	}
}

// normalize converts the time since the previous frame into frame units,
// clamping the elapsed time to [0, maxElapsed].
func (fs *FrameScheduler) normalize(now time.Duration) float64 {
	if !fs.hasLast {
		fs.last = now
		fs.hasLast = true
	}
	elapsed := now - fs.last
	fs.last = now

	return NormalizeDelta(elapsed, fs.targetPeriod, fs.maxElapsed)
}

// NormalizeDelta converts an elapsed duration into frame units:
// min(max(elapsed, 0), maxElapsed) / targetPeriod.
func NormalizeDelta(elapsed, targetPeriod, maxElapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxElapsed {
		elapsed = maxElapsed
	}
	if targetPeriod <= 0 {
		return 0
	}
	return float64(elapsed) / float64(targetPeriod)
}
