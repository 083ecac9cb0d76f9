// Package ui provides the Dear ImGui overlay used by the material editor.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/logger"
)

// fontCandidates are tried in order; the built-in ImGui font is used when
// none exists.
var fontCandidates = []string{
	"/System/Library/Fonts/SFNS.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// Backend wraps the ImGui SDL backend. It owns the window and the GL
// context; create the gpu device after NewBackend returns.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the ImGui context and an SDL window of the given size.
func NewBackend(title string, width, height int32, targetFPS uint) (*Backend, error) {
	b := &Backend{width: width, height: height}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame builds the atlas.
	b.backend.SetAfterCreateContextHook(loadFont)

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))
	if targetFPS > 0 {
		b.backend.SetTargetFPS(targetFPS)
	}

	logger.Info("imgui backend created", zap.String("title", title), zap.Int32("width", width), zap.Int32("height", height))
	return b, nil
}

func loadFont() {
	var path string
	for _, p := range fontCandidates {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		logger.Debug("no system font found, using ImGui default")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	if font := imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, 16.0, fontCfg, nil); font == nil {
		logger.Warn("failed to load font", zap.String("path", path))
	}
}

// Run starts the render loop; renderFunc is called once per frame between
// ImGui NewFrame and Render.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetWindowSize returns the size the window was created with.
func (b *Backend) GetWindowSize() (int32, int32) {
	return b.width, b.height
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	return mainWorkArea()
}

func mainWorkArea() (x, y, w, h float32) {
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	return pos.X, pos.Y, size.X, size.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus, in
// which case scene shortcuts should be ignored.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
