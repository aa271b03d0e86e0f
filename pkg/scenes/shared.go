// Package scenes implements the desktop host screens: the spotlight view with
// the wish list, and the compose form for new wishes.
package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/engine"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/render"
)

// 配色
var (
	backgroundColor = color.RGBA{R: 0x12, G: 0x10, B: 0x2a, A: 0xff}
	cardColor       = color.RGBA{R: 0x24, G: 0x1f, B: 0x4d, A: 0xe6}
	accentColor     = color.RGBA{R: 0xff, G: 0xb3, B: 0x47, A: 0xff}
	devCardColor    = color.RGBA{R: 0x4a, G: 0x36, B: 0x12, A: 0xe6}
	nameColor       = color.RGBA{R: 0xff, G: 0xd7, B: 0x80, A: 0xff}
	textColor       = color.RGBA{R: 0xf2, G: 0xee, B: 0xff, A: 0xff}
	mutedColor      = color.RGBA{R: 0xa8, G: 0xa2, B: 0xc8, A: 0xff}
	errorColor      = color.RGBA{R: 0xff, G: 0x6b, B: 0x5a, A: 0xff}
)

// Shared is the state every scene works on. The App owns it and keeps the
// logical size and device scale current.
type Shared struct {
	Engine   *engine.Engine
	Wishes   *game.WishStore
	Audio    *game.AudioManager
	Settings *game.SettingsManager
	Scenes   *game.SceneManager
	Config   *config.EngineConfig
	Fonts    *Fonts

	Petals   *render.Layer
	Confetti *render.Layer

	Width, Height float64 // logical size
	Scale         float64 // device scale factor

	ExportPath string // file used by export/import
}

// NewFactory returns the scene factory used by the SceneManager.
func NewFactory(sh *Shared) game.SceneFactory {
	return func(name string) game.Scene {
		switch name {
		case game.SceneSpotlight:
			return NewSpotlightScene(sh)
		case game.SceneCompose:
			return NewComposeScene(sh)
		}
		return nil
	}
}

// Fonts holds the UI typeface and caches faces per pixel size.
type Fonts struct {
	source *text.GoTextFaceSource
	cache  map[float64]*text.GoTextFace
}

// LoadFonts parses the embedded Go Regular typeface.
func LoadFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &Fonts{
		source: source,
		cache:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Face returns a face for a logical size rendered at the device scale.
// Glyphs are rasterized at pixel size so they stay sharp on HiDPI screens.
func (f *Fonts) Face(size, scale float64) *text.GoTextFace {
	px := math.Round(size*scale*4) / 4
	if face, ok := f.cache[px]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    f.source,
		Size:      px,
		Direction: text.DirectionLeftToRight,
	}
	f.cache[px] = face
	return face
}

// toast 状态栏上短暂显示的提示
type toast struct {
	message string
	isError bool
	left    float64 // 剩余秒数
}

const toastDuration = 2.5

func (t *toast) show(message string, isError bool) {
	t.message = message
	t.isError = isError
	t.left = toastDuration
}

func (t *toast) update(deltaTime float64) {
	if t.left > 0 {
		t.left -= deltaTime
		if t.left <= 0 {
			t.message = ""
		}
	}
}

func (t *toast) visible() bool {
	return t.message != ""
}
