package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/render"
	"github.com/decker502/rising/pkg/spotlight"
	"github.com/decker502/rising/pkg/utils"
)

const (
	caretBlink = 400 * time.Millisecond

	emptyListTitle = "No wishes yet"
	emptyListText  = "Be the first to share a warm Janmashtami wish!"

	helpLine = "→ next   N new wish   B blessing   P auto   M chime   Ctrl+C confetti   Ctrl+S export   Ctrl+O import"
)

// SpotlightScene shows the spotlight card over the petal layer, the wish
// list below it and the confetti layer on top.
type SpotlightScene struct {
	shared *Shared

	card   *render.Layer // 离屏卡片，入场动画整体变换
	offset int           // 列表滚动偏移
	toast  toast

	clearArmed float64 // 再次按 Ctrl+L 确认清空的剩余秒数
}

// NewSpotlightScene creates the main scene.
func NewSpotlightScene(sh *Shared) *SpotlightScene {
	return &SpotlightScene{shared: sh}
}

// Update handles keyboard, wheel and pointer input.
func (s *SpotlightScene) Update(deltaTime float64) {
	s.tick(deltaTime)

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.shared.Engine.Advance()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.previous()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.shared.Engine.ManualBurst()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.exportWishes()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		s.importWishes()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.requestClear()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.toggleChime()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.toggleAuto()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.bless()
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.shared.Scenes.Load(game.SceneCompose)
		return
	}

	if steps := utils.WheelSteps(); steps != 0 {
		s.scroll(-steps)
	}

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		scale := s.shared.Scale
		s.selectSlot(slotAt(s.shared.Width, s.shared.Height, float64(x)/scale, float64(y)/scale, config.WishListMaxVisible))
	}
}

func (s *SpotlightScene) previous() {
	if i := s.shared.Engine.Index(); i >= 0 {
		s.shared.Engine.JumpTo(i - 1)
	}
}

func (s *SpotlightScene) scroll(delta int) {
	s.offset = clampOffset(s.shared.Wishes.Len(), s.offset+delta, config.WishListMaxVisible)
}

// selectSlot spotlights the wish in the clicked list slot and celebrates.
func (s *SpotlightScene) selectSlot(slot int) bool {
	if slot < 0 {
		return false
	}
	indices := visibleWishes(s.shared.Wishes.Len(), s.offset, config.WishListMaxVisible)
	if slot >= len(indices) {
		return false
	}
	s.shared.Engine.JumpTo(indices[slot])
	s.shared.Engine.Celebrate()
	return true
}

func (s *SpotlightScene) toggleChime() {
	if s.shared.Audio.ToggleChime() {
		s.toast.show("Chime on", false)
	} else {
		s.toast.show("Chime muted", false)
	}
}

func (s *SpotlightScene) toggleAuto() {
	auto := s.shared.Engine.ToggleAuto()
	if s.shared.Settings != nil {
		s.shared.Settings.SetAutoRotate(auto)
		if err := s.shared.Settings.Save(); err != nil {
			log.Printf("[SpotlightScene] Warning: Failed to save settings: %v", err)
		}
	}
	if auto {
		s.toast.show("Auto rotation on", false)
	} else {
		s.toast.show("Auto rotation paused", false)
	}
}

func (s *SpotlightScene) bless() {
	if !s.shared.Engine.Bless() {
		s.toast.show("No blessings available", true)
	}
}

func (s *SpotlightScene) exportWishes() {
	n, err := s.shared.Wishes.ExportFile(s.shared.ExportPath)
	if err != nil {
		log.Printf("[SpotlightScene] Export failed: %v", err)
		s.toast.show("Export failed", true)
		return
	}
	s.toast.show(fmt.Sprintf("Exported %d wishes to %s", n, s.shared.ExportPath), false)
}

func (s *SpotlightScene) importWishes() {
	n, err := s.shared.Wishes.ImportFile(s.shared.ExportPath)
	if err != nil {
		log.Printf("[SpotlightScene] Import failed: %v", err)
		s.toast.show("Invalid JSON file", true)
		return
	}
	s.shared.Engine.ListChanged()
	s.toast.show(fmt.Sprintf("Imported %d wishes", n), false)
}

// tick 推进提示和清空确认的倒计时
func (s *SpotlightScene) tick(deltaTime float64) {
	s.toast.update(deltaTime)
	if s.clearArmed > 0 {
		s.clearArmed -= deltaTime
	}
}

// requestClear 第一次按下只提示确认，提示期间再按一次才清空
func (s *SpotlightScene) requestClear() {
	if s.clearArmed > 0 {
		s.clearArmed = 0
		s.clearWishes()
		return
	}
	s.clearArmed = toastDuration
	s.toast.show("Clear all wishes? Press Ctrl+L again, this cannot be undone", true)
}

func (s *SpotlightScene) clearWishes() {
	s.shared.Wishes.Clear()
	s.offset = 0
	s.shared.Engine.ListChanged()
	s.toast.show("All wishes cleared", false)
}

// Draw renders background, petals, card, list, confetti and status line.
func (s *SpotlightScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if s.shared.Petals != nil {
		s.shared.Petals.DrawTo(screen)
	}
	s.drawCard(screen)
	s.drawList(screen)
	if s.shared.Confetti != nil {
		s.shared.Confetti.DrawTo(screen)
	}
	s.drawStatus(screen)
}

// caretOn 光标闪烁
func caretOn(now time.Duration) bool {
	return (now/caretBlink)%2 == 0
}

func (s *SpotlightScene) drawCard(screen *ebiten.Image) {
	sh := s.shared
	scale := sh.Scale
	e := sh.Engine
	x, y, w, h := config.SpotlightCardRect(sh.Width, sh.Height)

	if s.card == nil {
		s.card = render.NewLayer(w, h, scale)
	} else {
		s.card.Resize(w, h, scale)
	}
	s.card.Clear()
	s.card.FillRect(0, 0, w, h, cardColor)
	s.card.FillRect(0, 0, w, 3, accentColor)
	img := s.card.Image()

	caret := caretOn(e.Now())
	name := e.Primary()
	if caret && e.Caret() == spotlight.TargetPrimary {
		name += "|"
	}
	secondary := e.Secondary()
	if caret && e.Caret() == spotlight.TargetSecondary {
		secondary += "|"
	}

	pad := config.SpotlightPadding
	drawText(img, name, sh.Fonts.Face(config.SpotlightNameFontSize, scale), pad*scale, pad*scale, nameColor)

	textFace := sh.Fonts.Face(config.SpotlightTextFontSize, scale)
	top := pad + config.SpotlightNameFontSize + 16
	for i, line := range utils.WrapText(secondary, textFace, (w-2*pad)*scale) {
		drawText(img, line, textFace, pad*scale, (top+float64(i)*config.SpotlightLineSpacing)*scale, textColor)
	}

	tr := EffectTransform(e.Effect(), e.EffectAge(), sh.Config.Spotlight.Decoration)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w*scale/2, -h*scale/2)
	op.GeoM.Scale(tr.Scale, tr.Scale)
	op.GeoM.Rotate(tr.Angle)
	op.GeoM.Translate((x+w/2+tr.DX)*scale, (y+h/2+tr.DY)*scale)
	op.ColorScale.ScaleAlpha(float32(tr.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *SpotlightScene) drawList(screen *ebiten.Image) {
	sh := s.shared
	scale := sh.Scale
	face := sh.Fonts.Face(config.WishListFontSize, scale)

	if sh.Wishes.Len() == 0 {
		x, y, w, h := config.WishCardRect(sh.Width, sh.Height, 0)
		fillRect(screen, x, y, w, h, scale, cardColor)
		drawText(screen, emptyListTitle, face, (x+10)*scale, (y+4)*scale, mutedColor)
		drawText(screen, emptyListText, face, (x+10)*scale, (y+21)*scale, textColor)
		return
	}

	selected := sh.Engine.Index()
	for slot, idx := range visibleWishes(sh.Wishes.Len(), s.offset, config.WishListMaxVisible) {
		w := sh.Wishes.Get(idx)
		x, y, cw, ch := config.WishCardRect(sh.Width, sh.Height, slot)

		bg := cardColor
		if w.IsDeveloper() {
			bg = devCardColor
		}
		fillRect(screen, x, y, cw, ch, scale, bg)
		if idx == selected {
			vector.StrokeRect(screen, float32(x*scale), float32(y*scale), float32(cw*scale), float32(ch*scale),
				float32(scale*1.5), accentColor, true)
		}

		drawText(screen, wishMeta(w), face, (x+10)*scale, (y+4)*scale, mutedColor)
		line := w.Text
		if lines := utils.WrapText(w.Text, face, (cw-20)*scale); len(lines) > 1 {
			line = lines[0] + "…"
		}
		drawText(screen, line, face, (x+10)*scale, (y+21)*scale, textColor)
	}
}

func (s *SpotlightScene) drawStatus(screen *ebiten.Image) {
	sh := s.shared
	scale := sh.Scale
	face := sh.Fonts.Face(config.WishListFontSize, scale)
	y := sh.Height - 28

	if s.toast.visible() {
		clr := nameColor
		if s.toast.isError {
			clr = errorColor
		}
		drawText(screen, s.toast.message, face, 16*scale, (y-20)*scale, clr)
	}

	auto, chime := "off", "muted"
	if sh.Engine.IsAuto() {
		auto = "on"
	}
	if sh.Audio.ChimeEnabled() {
		chime = "on"
	}
	status := fmt.Sprintf("auto %s · chime %s · %d wishes   %s", auto, chime, sh.Wishes.Len(), helpLine)
	drawText(screen, status, face, 16*scale, y*scale, mutedColor)
}

// drawText 在像素坐标 (x, y) 处绘制文本
func drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

// fillRect 按逻辑坐标填充矩形
func fillRect(dst *ebiten.Image, x, y, w, h, scale float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x*scale), float32(y*scale), float32(w*scale), float32(h*scale), clr, false)
}
