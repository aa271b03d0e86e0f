// Rising shows a typing spotlight of Janmashtami wishes over drifting petals
// and confetti bursts.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	-verbose          Enable verbose logging
//	-config <path>    Engine config overriding the embedded data/config.yaml
//	-export <path>    File used by Ctrl+S export and Ctrl+O import
//
// Controls:
//
//	→ / Space    Next wish
//	←            Previous wish
//	N / Enter    Write a new wish
//	B            Random blessing
//	P            Toggle auto rotation
//	M            Toggle chime
//	Ctrl+C       Confetti shower
//	Ctrl+L       Clear all wishes
//	F11          Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/rising/pkg/app"
	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Engine config file (default: embedded data/config.yaml)")
	exportFlag  = flag.String("export", "", "Wish export/import file (default: ./rising-wishes.json)")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		ExportPath: *exportFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
