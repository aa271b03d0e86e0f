// Package spotlight sequences the featured item on screen: the entrance
// effect, the two-stage text reveal and the rotation through the wish list.
//
// Everything runs on the caller's execution context. Timers come from a
// clock.Timers implementation, and every timer callback carries the token of
// the sequence that scheduled it, so a superseded sequence can never touch
// the display again.
package spotlight

// Item is the read-only value revealed by the sequencer.
type Item struct {
	Name string
	Text string
}

// State 聚光灯状态枚举
type State int

const (
	// StateIdle 尚未展示任何条目，或正在显示占位文本
	StateIdle State = iota

	// StateRevealingPrimary 正在逐字显示名字
	StateRevealingPrimary

	// StateRevealingSecondary 正在逐字显示祝福文本
	StateRevealingSecondary

	// StateSettled 两段文本均已显示完毕
	StateSettled
)

// String 返回 State 的字符串表示
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRevealingPrimary:
		return "RevealingPrimary"
	case StateRevealingSecondary:
		return "RevealingSecondary"
	case StateSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// Target identifies one of the two display targets.
type Target int

const (
	TargetNone Target = iota
	TargetPrimary
	TargetSecondary
)

// Entrance effect identifiers.
const (
	EffectSlide  = "slide"
	EffectZoom   = "zoom"
	EffectRotate = "rotate"
	EffectBounce = "bounce"
)

// Source is the read-only view of the external item list.
type Source interface {
	Len() int
	At(i int) Item
}

// Items adapts a plain slice to Source.
type Items []Item

func (s Items) Len() int      { return len(s) }
func (s Items) At(i int) Item { return s[i] }

// Burster receives the celebration burst when a sequence settles.
type Burster interface {
	BurstRandom(count int)
}
