package ui

import (
	"fmt"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// FrameStats is what the stats overlay displays.
type FrameStats struct {
	FrameTime  time.Duration
	RenderTime time.Duration
	Vertices   int
	CameraPos  [3]float32
}

// StatsOverlay renders frame timing and memory in a corner window.
type StatsOverlay struct {
	fps           float64
	fpsUpdateTime float64
	frameAccum    int

	memStats      runtime.MemStats
	memUpdateTime float64

	ShowMemory bool
	Enabled    bool
}

// NewStatsOverlay creates an enabled overlay.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{Enabled: true}
}

// Update accumulates one frame of dt seconds.
func (o *StatsOverlay) Update(dt float64) {
	o.frameAccum++
	o.fpsUpdateTime += dt

	if o.fpsUpdateTime >= 0.5 {
		o.fps = float64(o.frameAccum) / o.fpsUpdateTime
		o.frameAccum = 0
		o.fpsUpdateTime = 0
	}

	o.memUpdateTime += dt
	if o.ShowMemory && o.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&o.memStats)
		o.memUpdateTime = 0
	}
}

// FPS returns the frame rate averaged over the last half second.
func (o *StatsOverlay) FPS() float64 { return o.fps }

// Render draws the overlay with its top-left corner at pos.
func (o *StatsOverlay) Render(pos imgui.Vec2, s FrameStats) {
	if !o.Enabled {
		return
	}

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(240, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##StatsOverlay", nil, flags) {
		imgui.TextColored(fpsColor(o.fps), fmt.Sprintf("FPS: %.1f", o.fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%s)", formatMillis(s.FrameTime)))
		imgui.Text(fmt.Sprintf("Render: %s", formatMillis(s.RenderTime)))
		imgui.Text(fmt.Sprintf("Vertices: %d", s.Vertices))
		imgui.Text(fmt.Sprintf("Camera: %.1f, %.1f, %.1f", s.CameraPos[0], s.CameraPos[1], s.CameraPos[2]))

		if o.ShowMemory {
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Alloc: %s", formatBytes(int64(o.memStats.Alloc))))
			imgui.Text(fmt.Sprintf("Sys: %s", formatBytes(int64(o.memStats.Sys))))
			imgui.Text(fmt.Sprintf("GC: %d", o.memStats.NumGC))
		}
	}
	imgui.End()

	imgui.PopStyleVar()
}

func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 55:
		return imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	default:
		return imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	}
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d.Microseconds())/1000)
}

// formatBytes formats byte count to human readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
