package term

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/engine"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/spotlight"
)

// FramePeriod is the ticker period of the terminal loop (~60 FPS).
const FramePeriod = 16 * time.Millisecond

const (
	cardHeight   = 7
	maxListRows  = 6
	caretBlink   = 400 * time.Millisecond
	toastTimeout = 2500 * time.Millisecond

	selectedMark = "▸"
	markWidth    = 2

	statusHelp = "→ next  ← prev  b blessing  p auto  m chime  c confetti  r reload  q quit"
)

var (
	cardColor  = colorful.Color{R: 0x24 / 255.0, G: 0x1f / 255.0, B: 0x4d / 255.0}
	nameStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0xd7, 0x80)).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xf2, 0xee, 0xff))
	mutedStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xa8, 0xa2, 0xc8))
	devStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0xb3, 0x47)).Bold(true)
)

// Options configures a Host.
type Options struct {
	Config    *config.EngineConfig
	Wishes    *game.WishStore // required
	Chimer    *Chimer         // nil plays no sound
	Blessings []string
	Rand      *rand.Rand
}

// Host drives one engine inside a tcell screen.
type Host struct {
	screen tcell.Screen
	engine *engine.Engine
	wishes *game.WishStore
	chimer *Chimer

	petals   *Surface
	confetti *Surface
	cols     int
	rows     int

	pressed    bool
	toast      string
	toastUntil time.Duration
}

// NewHost builds the engine for the current screen size. Call Run or drive
// it with HandleEvent and Frame.
func NewHost(screen tcell.Screen, opts Options) *Host {
	cols, rows := screen.Size()
	width, height := LogicalSize(cols, rows)

	h := &Host{
		screen:   screen,
		wishes:   opts.Wishes,
		chimer:   opts.Chimer,
		petals:   NewSurface(cols, rows),
		confetti: NewSurface(cols, rows),
		cols:     cols,
		rows:     rows,
	}

	var chimer engine.Chimer
	if opts.Chimer != nil {
		chimer = opts.Chimer
	}
	h.engine = engine.New(engine.Options{
		Config:    opts.Config,
		Source:    opts.Wishes,
		Rand:      opts.Rand,
		Petals:    h.petals,
		Confetti:  h.confetti,
		Chimer:    chimer,
		Blessings: opts.Blessings,
		Width:     width,
		Height:    height,
	})
	return h
}

// Engine returns the driven engine.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Run starts the engine and loops until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) {
	h.engine.Start()
	defer h.engine.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FramePeriod)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !h.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			h.Frame(time.Since(start))
		}
	}
}

// Frame advances the engine to now and redraws the screen.
func (h *Host) Frame(now time.Duration) {
	h.engine.Tick(now)
	h.Draw()
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	e := h.engine
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		e.Advance()
	case tcell.KeyLeft:
		if i := e.Index(); i >= 0 {
			e.JumpTo(i - 1)
		}
	case tcell.KeyEnter:
		e.Celebrate()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			e.Advance()
		case 'b':
			if !e.Bless() {
				h.notify("No blessings available")
			}
		case 'p':
			if e.ToggleAuto() {
				h.notify("Auto rotation on")
			} else {
				h.notify("Auto rotation paused")
			}
		case 'm':
			if h.chimer.Toggle() {
				h.notify("Chime on")
			} else {
				h.notify("Chime muted")
			}
		case 'c':
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return false
			}
			e.ManualBurst()
		case 'r':
			h.reload()
		}
	}
	return true
}

// reload picks up wishes added by another host sharing the same storage.
func (h *Host) reload() {
	if err := h.wishes.Load(); err != nil {
		log.Printf("[Host] Reload failed: %v", err)
		h.notify("Reload failed")
		return
	}
	h.engine.ListChanged()
	h.notify(fmt.Sprintf("%d wishes", h.wishes.Len()))
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	if down && !h.pressed {
		x, y := ev.Position()
		h.selectAt(x, y)
	}
	h.pressed = down
}

// selectAt spotlights the wish in the clicked list row and celebrates.
func (h *Host) selectAt(x, y int) bool {
	l := computeLayout(h.cols, h.rows)
	slot := y - l.listY
	if slot < 0 || slot >= l.listRows || x < l.cardX || x >= l.cardX+l.cardW {
		return false
	}
	idx := h.wishes.Len() - 1 - slot
	if idx < 0 {
		return false
	}
	h.engine.JumpTo(idx)
	h.engine.Celebrate()
	return true
}

func (h *Host) notify(msg string) {
	h.toast = msg
	h.toastUntil = h.engine.Now() + toastTimeout
}

func (h *Host) resize() {
	cols, rows := h.screen.Size()
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	h.petals.Resize(cols, rows)
	h.confetti.Resize(cols, rows)
	h.engine.Resize(LogicalSize(cols, rows))
	log.Printf("[Host] Resize: %dx%d cells", cols, rows)
}

// layout 卡片、列表和状态栏的单元格位置
type layout struct {
	cardX, cardY, cardW int
	listY, listRows     int
	statusY             int
}

func computeLayout(cols, rows int) layout {
	cardW := min(max(cols*6/10, 30), cols)
	l := layout{
		cardX:   (cols - cardW) / 2,
		cardY:   rows * 18 / 100,
		cardW:   cardW,
		statusY: rows - 1,
	}
	l.listY = l.cardY + cardHeight + 1
	l.listRows = max(min(maxListRows, l.statusY-1-l.listY), 0)
	return l
}

// Draw composes petals, the card, confetti, the list and the status line.
func (h *Host) Draw() {
	s := h.screen
	l := computeLayout(h.cols, h.rows)

	Composite(s, h.petals)
	h.fillCard(l)
	h.overlay(h.confetti)
	h.drawCard(l)
	h.drawList(l)
	h.drawStatus(l)
	s.Show()
}

func (h *Host) fillCard(l layout) {
	style := tcell.StyleDefault.Background(tcellColor(cardColor))
	for row := l.cardY; row < l.cardY+cardHeight && row < h.rows; row++ {
		for col := l.cardX; col < l.cardX+l.cardW; col++ {
			h.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// overlay paints the cells a layer touched on top of what is on screen.
func (h *Host) overlay(layer *Surface) {
	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			if c, ok := layer.At(col, row); ok {
				h.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(tcellColor(c)))
			}
		}
	}
}

func caretOn(now time.Duration) bool {
	return (now/caretBlink)%2 == 0
}

func (h *Host) drawCard(l layout) {
	e := h.engine
	caret := caretOn(e.Now())
	name, text := e.Primary(), e.Secondary()
	if caret && e.Caret() == spotlight.TargetPrimary {
		name += "|"
	}
	if caret && e.Caret() == spotlight.TargetSecondary {
		text += "|"
	}

	left, right := l.cardX+2, l.cardX+l.cardW-2
	putString(h.screen, left, l.cardY+1, right, name, nameStyle)
	for i, line := range wrapCells(text, right-left) {
		if i >= cardHeight-4 {
			break
		}
		putString(h.screen, left, l.cardY+3+i, right, line, textStyle)
	}
}

func (h *Host) drawList(l layout) {
	n := h.wishes.Len()
	if n == 0 && l.listRows > 0 {
		putString(h.screen, l.cardX, l.listY, l.cardX+l.cardW, "No wishes yet", mutedStyle)
		return
	}

	selected := h.engine.Index()
	for slot := 0; slot < l.listRows && slot < n; slot++ {
		idx := n - 1 - slot
		w := h.wishes.Get(idx)

		right := l.cardX + l.cardW
		if idx == selected {
			putString(h.screen, l.cardX, l.listY+slot, right, selectedMark, devStyle)
		}
		col := l.cardX + markWidth
		style := textStyle
		if w.IsDeveloper() {
			style = devStyle
		}
		col = putString(h.screen, col, l.listY+slot, right, w.Name, style)
		line := truncateCells(" · "+w.Text, right-col)
		putString(h.screen, col, l.listY+slot, right, line, mutedStyle)
	}
}

func (h *Host) drawStatus(l layout) {
	msg := statusHelp
	if h.toast != "" && h.engine.Now() < h.toastUntil {
		msg = h.toast
	}
	putString(h.screen, 1, l.statusY, h.cols, msg, mutedStyle)
}
