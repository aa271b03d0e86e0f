package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// discRadius is the radius of the pre-rendered disc stamp used for ellipses.
const discRadius = 32

var (
	stampOnce  sync.Once
	whitePixel *ebiten.Image
	discStamp  *ebiten.Image
)

// initStamps 懒加载绘制用的白色像素和圆形印章
// 1x1 取自 3x3 图片的中心，避免线性过滤时采样到边缘透明像素
func initStamps() {
	stampOnce.Do(func() {
		base := ebiten.NewImage(3, 3)
		base.Fill(color.White)
		whitePixel = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

		discStamp = ebiten.NewImage(discRadius*2, discRadius*2)
		vector.DrawFilledCircle(discStamp, discRadius, discRadius, discRadius, color.White, true)
	})
}

// Layer is an ebiten-backed Surface with its own offscreen image.
//
// Drawing happens in logical coordinates; the backing image is sized to the
// logical size multiplied by the device scale factor, and a base transform
// scales logical units to pixels. Resize only touches the backing image, so
// particle coordinates stay valid across window changes.
type Layer struct {
	image *ebiten.Image

	width, height float64 // logical size
	scale         float64 // device scale factor

	base  ebiten.GeoM
	cur   ebiten.GeoM
	stack []ebiten.GeoM
}

// NewLayer creates a layer for the given logical size and device scale.
func NewLayer(width, height, scale float64) *Layer {
	initStamps()
	l := &Layer{}
	l.Resize(width, height, scale)
	return l
}

// Resize recomputes the backing pixel size. The image is only reallocated
// when the pixel size actually changes.
func (l *Layer) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	pw, ph := PixelSize(width, height, scale)

	if l.image == nil || l.image.Bounds().Dx() != pw || l.image.Bounds().Dy() != ph {
		if l.image != nil {
			l.image.Deallocate()
		}
		l.image = ebiten.NewImage(pw, ph)
	}

	l.width, l.height, l.scale = width, height, scale
	l.base = ebiten.GeoM{}
	l.base.Scale(scale, scale)
	l.cur = l.base
	l.stack = l.stack[:0]
}

// PixelSize converts a logical size to backing pixels, floored and at least 1.
func PixelSize(width, height, scale float64) (int, int) {
	pw := int(math.Floor(width * scale))
	ph := int(math.Floor(height * scale))
	return max(pw, 1), max(ph, 1)
}

// Image returns the backing image.
func (l *Layer) Image() *ebiten.Image {
	return l.image
}

// Scale returns the device scale factor.
func (l *Layer) Scale() float64 {
	return l.scale
}

// Size returns the logical size.
func (l *Layer) Size() (float64, float64) {
	return l.width, l.height
}

// Clear implements Surface.
func (l *Layer) Clear() {
	l.image.Clear()
	l.cur = l.base
	l.stack = l.stack[:0]
}

// Save implements Surface.
func (l *Layer) Save() {
	l.stack = append(l.stack, l.cur)
}

// Restore implements Surface. Restore with an empty stack is ignored.
func (l *Layer) Restore() {
	if n := len(l.stack); n > 0 {
		l.cur = l.stack[n-1]
		l.stack = l.stack[:n-1]
	}
}

// Translate implements Surface.
func (l *Layer) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(l.cur)
	l.cur = m
}

// Rotate implements Surface.
func (l *Layer) Rotate(theta float64) {
	var m ebiten.GeoM
	m.Rotate(theta)
	m.Concat(l.cur)
	l.cur = m
}

// FillEllipse implements Surface.
func (l *Layer) FillEllipse(rx, ry float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-discRadius, -discRadius)
	op.GeoM.Scale(rx/discRadius, ry/discRadius)
	op.GeoM.Concat(l.cur)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	l.image.DrawImage(discStamp, op)
}

// FillRect implements Surface.
func (l *Layer) FillRect(x, y, w, h float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(l.cur)
	op.ColorScale.ScaleWithColor(clr)
	l.image.DrawImage(whitePixel, op)
}

// DrawTo composites the layer onto dst at device resolution.
func (l *Layer) DrawTo(dst *ebiten.Image) {
	dst.DrawImage(l.image, nil)
}
