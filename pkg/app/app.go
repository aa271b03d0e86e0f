// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/embedded"
	"github.com/decker502/rising/pkg/engine"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/render"
	"github.com/decker502/rising/pkg/scenes"
	"github.com/decker502/rising/pkg/utils"
)

const (
	// AppName gdata 存储目录名
	AppName = "rising"

	// EngineConfigPath 内置引擎配置
	EngineConfigPath = "data/config.yaml"

	sampleRate = 48000
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 覆盖内置 data/config.yaml 的配置文件，为空则使用内置配置
	ConfigPath string
	// ExportPath 导出/导入祝福使用的文件，为空则使用当前目录下的默认文件名
	ExportPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	shared       *scenes.Shared
	engine       *engine.Engine
	wishes       *game.WishStore
	settings     *game.SettingsManager

	verbose bool
	start   time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	engineConfig, err := loadEngineConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("引擎配置加载失败: %w", err)
	}

	gdataManager := openStorage()
	settingsManager := game.NewSettingsManager(gdataManager)
	wishes := game.NewWishStore(gdataManager, rand.New(rand.NewSource(time.Now().UnixNano())))

	blessings, err := game.LoadBlessings()
	if err != nil {
		log.Printf("[App] Warning: Failed to load blessings: %v", err)
	}

	audioManager := game.NewAudioManager(audio.NewContext(sampleRate), settingsManager)
	log.Printf("[App] AudioManager initialized")

	fonts, err := scenes.LoadFonts()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	width, height := float64(config.GameWindowWidth), float64(config.GameWindowHeight)
	scale := deviceScale()
	petals := render.NewLayer(width, height, scale)
	confetti := render.NewLayer(width, height, scale)

	// 自动轮播的启动状态以用户设置为准
	engineConfig.Rotation.AutoStart = settingsManager.Settings().AutoRotate
	eng := engine.New(engine.Options{
		Config:    engineConfig,
		Source:    wishes,
		Petals:    petals,
		Confetti:  confetti,
		Chimer:    audioManager,
		Blessings: blessings,
		Width:     width,
		Height:    height,
	})

	exportPath := cfg.ExportPath
	if exportPath == "" {
		exportPath = game.ExportFileName
	}

	sceneManager := game.NewSceneManager()
	shared := &scenes.Shared{
		Engine:     eng,
		Wishes:     wishes,
		Audio:      audioManager,
		Settings:   settingsManager,
		Scenes:     sceneManager,
		Config:     engineConfig,
		Fonts:      fonts,
		Petals:     petals,
		Confetti:   confetti,
		Width:      width,
		Height:     height,
		Scale:      scale,
		ExportPath: exportPath,
	}
	sceneManager.SetSceneFactory(scenes.NewFactory(shared))
	if !sceneManager.Load(game.SceneSpotlight) {
		return nil, fmt.Errorf("无法创建场景: %s", game.SceneSpotlight)
	}

	if settingsManager.Settings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetWindowClosingHandled(true)

	eng.Start()

	return &App{
		sceneManager: sceneManager,
		shared:       shared,
		engine:       eng,
		wishes:       wishes,
		settings:     settingsManager,
		verbose:      cfg.Verbose,
		start:        time.Now(),
	}, nil
}

// loadEngineConfig 读取 -config 指定的文件，否则读取内置配置
// 内置配置不可用时使用默认值
func loadEngineConfig(path string) (*config.EngineConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载引擎配置: %s", path)
		return config.LoadEngineConfig(path)
	}

	data, err := embedded.ReadFile(EngineConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultEngineConfig(), nil
	}
	return config.ParseEngineConfig(data)
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为仅内存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, wishes will not persist: %v", err)
		return nil
	}
	return manager
}

// deviceScale 返回当前显示器的设备像素比
func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

// Update 推进引擎时钟并更新当前场景
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) && !utils.IsMobile() {
		a.toggleFullscreen()
	}

	a.engine.Tick(time.Since(a.start))

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 控制全屏时的 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// LayoutF 让屏幕跟随窗口尺寸，并按设备像素比分配像素
//
// 逻辑尺寸等于窗口尺寸，粒子层和引擎边界随之更新；粒子坐标保持不变。
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := deviceScale()
	a.resize(outsideWidth, outsideHeight, scale)
	return math.Floor(outsideWidth * scale), math.Floor(outsideHeight * scale)
}

// Layout 实现 ebiten.Game 接口，实际尺寸由 LayoutF 决定
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

func (a *App) resize(width, height, scale float64) {
	if width <= 0 || height <= 0 {
		return
	}
	sh := a.shared
	if sh.Width == width && sh.Height == height && sh.Scale == scale {
		return
	}

	sh.Width, sh.Height, sh.Scale = width, height, scale
	sh.Petals.Resize(width, height, scale)
	sh.Confetti.Resize(width, height, scale)
	a.engine.Resize(width, height)
	log.Printf("[App] Resize: %.0fx%.0f @%.2fx", width, height, scale)
}

// Shutdown 停止引擎并保存祝福与设置
func (a *App) Shutdown() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !s.SaveOnExit() {
			log.Printf("[App] Warning: scene failed to save on exit")
		}
	}
	if err := a.wishes.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save wishes: %v", err)
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
	a.engine.Stop()
	log.Printf("[App] Shutdown complete")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
