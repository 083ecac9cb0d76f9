// Package app implements the main loop: it owns the window, input, render
// device and scene stack.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/config"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/engine/scene"
	"github.com/Faultbox/nsengine/internal/engine/window"
	"github.com/Faultbox/nsengine/internal/logger"
)

// surface is the part of the window the loop needs.
type surface interface {
	SwapBuffers()
	DrawableSize() (int32, int32)
	SetTitle(title string)
	Close()
}

// App is the top-level application context.
type App struct {
	cfg      *config.Config
	running  bool
	window   surface
	device   gpu.Device
	input    *input.Input
	scenes   *scene.Stack
	profiler Profiler

	// ClearColor is used at the start of every frame.
	ClearColor [4]float32
}

// New creates the window and OpenGL device described by cfg.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing app",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	win, err := window.New(window.FromConfig(cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the GL context the window just made current.
	dev, err := gpu.NewGL()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to create render device: %w", err)
	}

	a := newApp(cfg, win, dev)
	a.resize(win.DrawableSize())
	return a, nil
}

func newApp(cfg *config.Config, win surface, dev gpu.Device) *App {
	return &App{
		cfg:        cfg,
		window:     win,
		device:     dev,
		input:      input.New(),
		scenes:     scene.NewStack(),
		ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
	}
}

// Device returns the render context scenes draw with.
func (a *App) Device() gpu.Device { return a.device }

// Scenes returns the scene stack.
func (a *App) Scenes() *scene.Stack { return a.scenes }

// Profiler returns the frame timings.
func (a *App) Profiler() *Profiler { return &a.profiler }

// Aspect returns the drawable aspect ratio.
func (a *App) Aspect() float32 {
	w, h := a.window.DrawableSize()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Running reports whether Run is looping.
func (a *App) Running() bool { return a.running }

// Stop ends the loop after the current frame.
func (a *App) Stop() {
	a.running = false
}

// Run loops until Stop, a quit event or a scene error. Each iteration polls
// events, ticks the active scene, then clears, renders and presents.
func (a *App) Run() error {
	a.running = true
	budget := frameBudget(a.cfg.Window.TargetFPS)
	if a.cfg.Window.VSync {
		// Swap already blocks on the display.
		budget = 0
	}

	logger.Info("starting main loop", zap.Duration("frame_budget", budget))

	last := time.Now()
	titleTimer := last
	for a.running {
		start := time.Now()
		dt := start.Sub(last).Seconds()
		last = start

		if a.input.Update() {
			a.Stop()
		}
		if err := a.step(dt, a.input.Events()); err != nil {
			return err
		}

		time.Sleep(pacing(time.Since(start), budget))

		if time.Since(titleTimer) >= time.Second {
			frame, render := a.profiler.Average()
			logger.Debug("frame timings", zap.Duration("frame", frame), zap.Duration("render", render))
			a.window.SetTitle(fmt.Sprintf("%s | %.1f ms", a.cfg.Window.Title, float64(frame.Microseconds())/1000))
			a.profiler.Reset()
			titleTimer = time.Now()
		}
	}
	return nil
}

// step runs one frame with already collected events.
func (a *App) step(dt float64, events []input.Event) error {
	start := time.Now()

	for _, ev := range events {
		switch ev.Type {
		case input.EventQuit:
			a.Stop()
		case input.EventWindowResize:
			// Event sizes are in screen coordinates; the viewport needs pixels.
			a.resize(a.window.DrawableSize())
		case input.EventKeyDown:
			if ev.Key == sdl.SCANCODE_ESCAPE {
				a.Stop()
			}
		}
	}

	if err := a.scenes.Tick(dt, events); err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	renderStart := time.Now()
	c := a.ClearColor
	a.device.Clear(c[0], c[1], c[2], c[3])
	a.scenes.Render()
	a.window.SwapBuffers()
	now := time.Now()

	a.profiler.Record(now.Sub(start), now.Sub(renderStart))
	return nil
}

func (a *App) resize(width, height int32) {
	a.device.Viewport(0, 0, width, height)
}

// Close frees every scene, then the window and context.
func (a *App) Close() {
	logger.Info("closing app")

	a.scenes.Close()
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
