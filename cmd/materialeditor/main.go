// Material Editor - an ImGui front end for tuning Phong materials on the
// engine's demo scene.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/app"
	"github.com/Faultbox/nsengine/internal/assets"
	"github.com/Faultbox/nsengine/internal/config"
	"github.com/Faultbox/nsengine/internal/engine/debug"
	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/framebuffer"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/engine/scene"
	"github.com/Faultbox/nsengine/internal/engine/ui"
	"github.com/Faultbox/nsengine/internal/game/scenes"
	"github.com/Faultbox/nsengine/internal/game/scenes/shaders"
	"github.com/Faultbox/nsengine/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ed, err := newEditor(cfg)
	if err != nil {
		logger.Error("failed to start editor", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer ed.Close()

	ed.Run()
}

// editor owns the ImGui window, the offscreen target the scene draws into
// and the demo scene itself.
type editor struct {
	cfg    *config.Config
	ui     *ui.Backend
	device gpu.Device
	files  *assets.Manager
	target *framebuffer.Framebuffer
	scenes *scene.Stack
	demo   *scenes.MaterialDemo

	viewport ui.Viewport
	events   []input.Event
	held     map[imgui.Key]bool
	stats    *ui.StatsOverlay
	shots    *debug.ScreenshotCapture
	profiler app.Profiler
	last     time.Time

	// pendingModel is set by the file dialog goroutine and consumed on
	// the render thread.
	pendingModel atomic.Pointer[string]
	status       string
	statusTime   time.Time
}

func newEditor(cfg *config.Config) (*editor, error) {
	ed := &editor{
		cfg:   cfg,
		files: assets.NewManager(),
		stats: ui.NewStatsOverlay(),
		held:  make(map[imgui.Key]bool),
		shots: debug.NewScreenshotCapture("screenshots", "material"),
	}

	var err error
	ed.ui, err = ui.NewBackend("Material Editor", int32(cfg.Window.Width), int32(cfg.Window.Height), uint(cfg.Window.TargetFPS))
	if err != nil {
		return nil, err
	}

	// The backend's window owns the GL context the device binds to.
	if ed.device, err = gpu.NewGL(); err != nil {
		return nil, err
	}
	if ed.target, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height)); err != nil {
		return nil, err
	}

	ed.files.Mount("embedded shaders", shaders.Files)
	for _, dir := range cfg.Scene.AssetDirs {
		if err := ed.files.AddDir(dir); err != nil {
			logger.Debug("asset dir skipped", zap.String("dir", dir), zap.Error(err))
		}
	}

	ed.demo = scenes.NewMaterialDemo(ed.device, ed.loadAsset, *cfg, ed.target.Aspect())
	ed.scenes = scene.NewStack()
	if err := ed.scenes.Push(ed.demo); err != nil {
		ed.target.Close()
		return nil, err
	}
	return ed, nil
}

// loadAsset reads through the manager but never serves a stale copy, so
// reopening an edited OBJ picks up the changes.
func (ed *editor) loadAsset(path string) ([]byte, error) {
	ed.files.Invalidate(path)
	return ed.files.Load(path)
}

// Run starts the ImGui loop; it returns when the window closes.
func (ed *editor) Run() {
	ed.last = time.Now()
	ed.ui.Run(ed.frame)
}

// Close releases the scene and GL objects.
func (ed *editor) Close() {
	if ed.scenes != nil {
		ed.scenes.Close()
	}
	if ed.target != nil {
		ed.target.Close()
	}
	ed.files.Close()
	if e, ok := logger.LastError(); ok {
		fmt.Fprintln(os.Stderr, "last error:", e)
	}
}

func (ed *editor) frame() {
	start := time.Now()
	dt := start.Sub(ed.last).Seconds()
	ed.last = start

	if p := ed.pendingModel.Swap(nil); p != nil {
		ed.openModel(*p)
	}

	ed.renderMenuBar()
	ed.renderPanel()
	ed.renderViewport()

	if err := ed.scenes.Tick(dt, ed.events); err != nil {
		ed.setStatus(err.Error())
	}
	ed.events = ed.events[:0]

	renderStart := time.Now()
	restore := ed.target.Begin()
	ed.device.Clear(0.1, 0.1, 0.12, 1)
	ed.scenes.Render()
	restore()
	now := time.Now()

	ed.profiler.Record(now.Sub(start), now.Sub(renderStart))
	ed.stats.Update(dt)
}

func (ed *editor) renderMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open OBJ...") {
				ed.openFileDialog()
			}
			if imgui.MenuItemBool("Save Screenshot") {
				ed.saveScreenshot()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Save Settings") {
				if err := ed.cfg.Save(); err != nil {
					ed.setStatus("Save failed: " + err.Error())
				} else {
					ed.setStatus("Settings saved to " + config.ConfigDir())
				}
			}
			if imgui.MenuItemBool("Exit") {
				ed.Close()
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			imgui.Checkbox("Stats Overlay", &ed.stats.Enabled)
			imgui.Checkbox("Memory Stats", &ed.stats.ShowMemory)
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}
}

// openFileDialog shows a native file dialog to select an OBJ file.
func (ed *editor) openFileDialog() {
	// SDL window operations must stay on the main thread, so the dialog
	// only queues the path for the next frame.
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open OBJ Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		ed.pendingModel.Store(&filename)
	}()
}

func (ed *editor) openModel(path string) {
	if err := ed.demo.LoadModel(path); err != nil {
		ed.setStatus("Open failed: " + err.Error())
		return
	}
	ed.cfg.Scene.Model = path
	ed.ui.SetWindowTitle(fmt.Sprintf("Material Editor - %s", filepath.Base(path)))
	ed.setStatus("Loaded " + filepath.Base(path))
}

func (ed *editor) saveScreenshot() {
	path, err := ed.shots.Capture(ed.target.Snapshot())
	if err != nil {
		errs.Report(err)
		ed.setStatus("Screenshot failed: " + err.Error())
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	ed.setStatus("Saved " + filepath.Base(path))
}

func (ed *editor) setStatus(msg string) {
	ed.status = msg
	ed.statusTime = time.Now()
}
