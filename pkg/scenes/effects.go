package scenes

import (
	"math"
	"time"

	"github.com/decker502/rising/pkg/spotlight"
	"github.com/decker502/rising/pkg/utils"
)

// 入场动画参数（逻辑坐标）
const (
	slideDistance  = 80.0
	bounceHeight   = 60.0
	zoomFrom       = 0.6
	rotateFrom     = -15 * math.Pi / 180
	rotateZoomFrom = 0.9
)

// CardTransform is the transient transform applied to the spotlight card.
// DX/DY are logical offsets, Angle is in radians around the card centre.
type CardTransform struct {
	DX, DY float64
	Scale  float64
	Angle  float64
	Alpha  float64
}

// Identity is the resting card.
func Identity() CardTransform {
	return CardTransform{Scale: 1, Alpha: 1}
}

// EffectTransform evaluates an entrance effect age into its lifetime.
// Unknown or finished effects return Identity.
func EffectTransform(effect string, age, lifetime time.Duration) CardTransform {
	if effect == "" || lifetime <= 0 || age >= lifetime {
		return Identity()
	}
	p := utils.Clamp01(float64(age) / float64(lifetime))
	fade := utils.EaseOutQuad(p)

	tr := Identity()
	switch effect {
	case spotlight.EffectSlide:
		tr.DX = utils.Lerp(-slideDistance, 0, utils.EaseOutCubic(p))
		tr.Alpha = fade
	case spotlight.EffectZoom:
		tr.Scale = utils.Lerp(zoomFrom, 1, utils.EaseOutBack(p))
		tr.Alpha = fade
	case spotlight.EffectRotate:
		eased := utils.EaseOutCubic(p)
		tr.Angle = utils.Lerp(rotateFrom, 0, eased)
		tr.Scale = utils.Lerp(rotateZoomFrom, 1, eased)
		tr.Alpha = fade
	case spotlight.EffectBounce:
		tr.DY = utils.Lerp(-bounceHeight, 0, utils.EaseOutBounce(p))
		tr.Alpha = utils.Clamp01(p * 3)
	}
	return tr
}
