package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/trellis/engine/assets"
	"github.com/hubastard/trellis/engine/core"
	glbackend "github.com/hubastard/trellis/engine/gfx/gl"
	"github.com/hubastard/trellis/engine/platform"
	"github.com/hubastard/trellis/engine/text"
	"golang.org/x/image/font/gofont/goregular"
)

type App struct {
	cfg   core.Config
	font  *text.OpenTypeFont
	ui    *LayerUI
	stats *LayerStats
}

func (a *App) OnStart(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	layer, err := NewLayerUI(e.Renderer, a.font, a.cfg, w, h)
	if err != nil {
		core.Logger().Error("ui setup failed", "err", err)
		os.Exit(1)
	}
	a.ui = layer
	e.Layers.Push(a.ui)

	a.stats = &LayerStats{ui: a.ui, font: a.font}
	e.Layers.Push(a.stats)
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnShutdown(e *core.Engine) { a.font.Close() }

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Key == core.KeyEscape && k.Down {
		e.Window.SetTitle(a.cfg.Title + " (closing)")
		e.Window.RequestClose()
	}
}

func loadFont(cfg core.Config) (*text.OpenTypeFont, error) {
	if cfg.FontPath != "" {
		return assets.LoadFont(cfg.FontPath)
	}
	return text.ParseFont(goregular.TTF)
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	font, err := loadFont(cfg)
	if err != nil {
		core.Logger().Error("font", "err", err)
		os.Exit(1)
	}
	app := &App{cfg: cfg, font: font}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		core.Logger().Error("run", "err", err)
		os.Exit(1)
	}
}
