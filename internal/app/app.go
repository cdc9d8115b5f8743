// Package app runs the viewer's window, input and frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/api"
	"github.com/birbbrains/arenaview/internal/assets"
	"github.com/birbbrains/arenaview/internal/config"
	"github.com/birbbrains/arenaview/internal/engine/input"
	"github.com/birbbrains/arenaview/internal/engine/renderer"
	"github.com/birbbrains/arenaview/internal/engine/screenshot"
	"github.com/birbbrains/arenaview/internal/engine/window"
	"github.com/birbbrains/arenaview/internal/logger"
	"github.com/birbbrains/arenaview/internal/viewer"
)

const windowTitle = "ArenaView"

// App is the viewer program.
type App struct {
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	sprites  *assets.Manager
	viewer   *viewer.Viewer
	shots    *screenshot.Writer
	log      *zap.Logger

	mapID       int
	title       string
	shotPending bool
}

// New opens the window and GL context and creates the viewer. Nothing is
// fetched until Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		log:   logger.Named("app"),
		mapID: cfg.Viewer.MapID,
	}
	a.log.Info("initializing viewer",
		zap.String("service", cfg.Service.BaseURL),
		zap.Int("map", cfg.Viewer.MapID),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(dw, dh)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	client := api.New(cfg.Service.BaseURL, cfg.Service.AssetPath, cfg.Service.Timeout)
	a.sprites = assets.NewManager(client)
	a.viewer = viewer.New(client, a.sprites, a.renderer, viewer.OptionsFromConfig(cfg.Viewer))
	a.input = input.New()
	a.shots = screenshot.NewWriter(cfg.Viewer.ScreenshotDir)

	return a, nil
}

// Run loads the configured map and draws frames until the window closes
// or Escape is pressed.
func (a *App) Run() error {
	if err := a.viewer.Load(a.mapID); err != nil {
		return fmt.Errorf("load map %d: %w", a.mapID, err)
	}
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")
	for a.running {
		if a.input.Update() {
			break
		}
		for _, e := range a.input.Events() {
			switch e.Type {
			case input.EventMouseMove:
				a.pointerMove(e.MouseX, e.MouseY)
			case input.EventMouseLeave:
				a.viewer.PointerLeave()
			case input.EventWindowResize:
				a.log.Debug("window resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
			}
		}
		for _, act := range a.input.Actions() {
			a.apply(act)
		}

		a.viewer.Pump()
		a.viewer.Frame(a.window.DrawableSize())
		if a.shotPending {
			a.shotPending = false
			a.capture()
		}
		a.updateTitle()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			hits, misses := a.sprites.Stats()
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Int("sprite_hits", hits), zap.Int("sprite_misses", misses))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) apply(act input.Action) {
	switch act {
	case input.ActionRotateLeft:
		a.viewer.HandleKey(viewer.KeyLeft)
	case input.ActionRotateRight:
		a.viewer.HandleKey(viewer.KeyRight)
	case input.ActionPrevMap:
		a.step(-1)
	case input.ActionNextMap:
		a.step(1)
	case input.ActionScreenshot:
		a.shotPending = true
	case input.ActionQuit:
		a.running = false
	}
}

// step moves to a neighboring map id. Ids start at 1.
func (a *App) step(delta int) {
	next := a.mapID + delta
	if next < 1 {
		return
	}
	a.mapID = next
	if err := a.viewer.Load(next); err != nil {
		a.log.Warn("map switch failed", zap.Int("map", next), zap.Error(err))
	}
}

// capture saves the frame just drawn, before it is swapped out.
func (a *App) capture() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.SavePixels(fmt.Sprintf("map%d", a.mapID), pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// pointerMove converts window coordinates to drawable pixels, which
// differ on high-DPI displays.
func (a *App) pointerMove(x, y int) {
	ww, wh := a.window.GetSize()
	dw, dh := a.window.DrawableSize()
	if ww <= 0 || wh <= 0 {
		return
	}
	px := float32(x) * float32(dw) / float32(ww)
	py := float32(y) * float32(dh) / float32(wh)
	a.viewer.PointerMove(px, py)
}

func (a *App) updateTitle() {
	hover, hovered := a.viewer.Hovered()
	title := formatTitle(status{
		mapID:   a.mapID,
		live:    a.viewer.Live(),
		err:     a.viewer.LastError(),
		hover:   hover,
		hovered: hovered,
	})
	if title != a.title {
		a.title = title
		a.window.SetTitle(title)
	}
}

// Close tears down the viewer before the GL context it draws with.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.viewer != nil {
		a.viewer.Close()
	}
	if a.sprites != nil {
		a.sprites.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
