// Package main runs the wish spotlight inside a terminal.
//
// Usage:
//
//	go run ./cmd/rising-term [flags]
//
// Flags:
//
//	--verbose          Write logs to rising-term.log
//	--config <path>    Engine config YAML (default: <data>/data/config.yaml)
//	--data <dir>       Directory containing data/config.yaml and data/blessings.yaml
//
// Controls:
//
//	→ / Space   - Next wish
//	←           - Previous wish
//	Enter       - Celebrate the current wish
//	B           - Random blessing
//	P           - Toggle auto rotation
//	M           - Toggle chime
//	C           - Confetti burst
//	R           - Reload wishes from storage
//	Click       - Spotlight a listed wish
//	Q / Escape  - Quit
//
// Wishes and settings are shared with the desktop app through the same
// gdata storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/embedded"
	"github.com/decker502/rising/pkg/game"
	"github.com/decker502/rising/pkg/term"
	"github.com/decker502/rising/pkg/utils"
)

const (
	appName          = "rising"
	logFileName      = "rising-term.log"
	engineConfigPath = "data/config.yaml"
)

func main() {
	verbose := flag.Bool("verbose", false, "Write logs to "+logFileName)
	configPath := flag.String("config", "", "Engine config YAML (overrides the data directory)")
	dataDir := flag.String("data", ".", "Directory containing data/config.yaml and data/blessings.yaml")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	logFile := setupLogging(*verbose)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(*configPath, *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "rising-term: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) *os.File {
	if !verbose {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open %s: %v\n", logFileName, err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	return f
}

func run(configPath, dataDir string) error {
	embedded.Init(os.DirFS(dataDir))

	cfg, err := loadEngineConfig(configPath)
	if err != nil {
		return fmt.Errorf("引擎配置加载失败: %w", err)
	}

	store := openStorage()
	settings := game.NewSettingsManager(store)
	wishes := game.NewWishStore(store, rand.New(rand.NewSource(time.Now().UnixNano())))
	cfg.Rotation.AutoStart = settings.Settings().AutoRotate

	blessings, err := game.LoadBlessings()
	if err != nil {
		log.Printf("[Main] Warning: Failed to load blessings: %v", err)
	}

	chimer := term.NewChimer(settings)
	if err := chimer.Init(); err != nil {
		log.Printf("[Main] Warning: speaker unavailable, chime disabled: %v", err)
		chimer = nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	host := term.NewHost(screen, term.Options{
		Config:    cfg,
		Wishes:    wishes,
		Chimer:    chimer,
		Blessings: blessings,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host.Run(ctx)
	screen.Fini()

	if err := wishes.Save(); err != nil {
		log.Printf("[Main] Warning: Failed to save wishes: %v", err)
	}
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: Failed to save settings: %v", err)
	}
	return nil
}

// loadEngineConfig 读取 -config 指定的文件，否则读取数据目录中的配置
// 配置不存在时使用默认值
func loadEngineConfig(path string) (*config.EngineConfig, error) {
	if path != "" {
		return config.LoadEngineConfig(path)
	}
	data, err := embedded.ReadFile(engineConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultEngineConfig(), nil
	}
	return config.ParseEngineConfig(data)
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为仅内存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable, wishes will not persist: %v", err)
		return nil
	}
	return manager
}
