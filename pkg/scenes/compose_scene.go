package scenes

import (
	"errors"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/utils"
)

// 按住退格键的重复节奏（以 tick 计）
const (
	repeatDelay    = 30
	repeatInterval = 3
)

const composeHelp = "Tab switch field   Enter share + spotlight   Ctrl+Enter add silently   Esc cancel"

// ComposeScene is the form for a new wish. The engine keeps animating the
// petal layer behind it.
type ComposeScene struct {
	shared *Shared

	name  textField
	text  textField
	focus int // 0 名字, 1 祝福

	errMessage string
}

// NewComposeScene creates an empty form focused on the name field.
func NewComposeScene(sh *Shared) *ComposeScene {
	return &ComposeScene{
		shared: sh,
		name:   textField{limit: game.MaxNameLength},
		text:   textField{limit: game.MaxTextLength},
	}
}

func (c *ComposeScene) focused() *textField {
	if c.focus == 0 {
		return &c.name
	}
	return &c.text
}

// repeatingKeyPressed 按下时触发一次，按住超过 repeatDelay 后周期触发
func repeatingKeyPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// Update reads typed characters and the form keys.
func (c *ComposeScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.cancel()
		return
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		c.submit(ctrl)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		c.focus = 1 - c.focus
	}

	if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
		c.focused().Append(chars)
		c.errMessage = ""
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		c.focused().Backspace()
	}
}

// submit stores the wish. A normal submit spotlights it and celebrates;
// a silent one only bursts confetti. The form stays open on error.
func (c *ComposeScene) submit(silent bool) error {
	w, err := c.shared.Wishes.Add(c.name.Value(), c.text.Value())
	if err != nil {
		if errors.Is(err, game.ErrEmptyText) {
			c.errMessage = "Please write a wish first"
			c.focus = 1
		} else {
			c.errMessage = err.Error()
		}
		return err
	}

	e := c.shared.Engine
	e.ListChanged()
	if silent {
		e.SilentBurst()
	} else {
		e.JumpTo(c.shared.Wishes.Len() - 1)
		e.Celebrate()
	}
	log.Printf("[ComposeScene] Added wish %s from %q (silent=%v)", w.ID, w.Name, silent)

	c.name.Reset()
	c.text.Reset()
	c.shared.Scenes.Load(game.SceneSpotlight)
	return nil
}

// SaveOnExit 实现 game.Saveable：关闭窗口时未提交的祝福静默保存
func (c *ComposeScene) SaveOnExit() bool {
	if strings.TrimSpace(c.text.Value()) == "" {
		return true
	}
	if _, err := c.shared.Wishes.Add(c.name.Value(), c.text.Value()); err != nil {
		log.Printf("[ComposeScene] Failed to keep draft: %v", err)
		return false
	}
	log.Printf("[ComposeScene] Draft kept on exit")
	return true
}

func (c *ComposeScene) cancel() {
	c.shared.Scenes.Load(game.SceneSpotlight)
}

// Draw renders the form over the animated layers.
func (c *ComposeScene) Draw(screen *ebiten.Image) {
	sh := c.shared
	scale := sh.Scale

	screen.Fill(backgroundColor)
	if sh.Petals != nil {
		sh.Petals.DrawTo(screen)
	}

	x, y, w, _ := config.SpotlightCardRect(sh.Width, sh.Height)
	h := 260.0
	fillRect(screen, x, y, w, h, scale, cardColor)
	fillRect(screen, x, y, w, 3, scale, accentColor)

	title := sh.Fonts.Face(config.SpotlightTextFontSize, scale)
	body := sh.Fonts.Face(config.WishListFontSize, scale)
	pad := config.SpotlightPadding

	drawText(screen, "Share your Janmashtami wish", title, (x+pad)*scale, (y+pad)*scale, nameColor)

	fields := []struct {
		label string
		field *textField
		top   float64
	}{
		{"Your name (optional)", &c.name, y + 64},
		{"Your wish", &c.text, y + 130},
	}
	caret := caretOn(sh.Engine.Now())
	for i, f := range fields {
		drawText(screen, f.label, body, (x+pad)*scale, f.top*scale, mutedColor)
		boxTop := f.top + 20
		fillRect(screen, x+pad, boxTop, w-2*pad, 30, scale, backgroundColor)
		if i == c.focus {
			fillRect(screen, x+pad, boxTop+29, w-2*pad, 1, scale, accentColor)
		}

		value := f.field.Value()
		if i == c.focus && caret {
			value += "|"
		}
		lines := wrapTail(value, body, (w-2*pad-12)*scale)
		drawText(screen, lines, body, (x+pad+6)*scale, (boxTop+7)*scale, textColor)
	}

	if c.errMessage != "" {
		drawText(screen, c.errMessage, body, (x+pad)*scale, (y+h-48)*scale, errorColor)
	}
	drawText(screen, composeHelp, body, (x+pad)*scale, (y+h-26)*scale, mutedColor)

	if sh.Confetti != nil {
		sh.Confetti.DrawTo(screen)
	}
}

// wrapTail 只显示换行后的最后一行，保证输入位置可见
func wrapTail(value string, face *text.GoTextFace, maxWidth float64) string {
	lines := utils.WrapText(value, face, maxWidth)
	return lines[len(lines)-1]
}
