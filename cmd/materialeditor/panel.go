package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/nsengine/internal/engine/camera"
	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/engine/ui"
	"github.com/Faultbox/nsengine/internal/game/scenes"
)

const panelWidth = 300

// sceneKeys are forwarded to the scene while the viewport is hovered.
var sceneKeys = map[imgui.Key]sdl.Scancode{
	imgui.KeyC: sdl.SCANCODE_C,
	imgui.KeyR: sdl.SCANCODE_R,
	imgui.KeyW: sdl.SCANCODE_W,
	imgui.KeyA: sdl.SCANCODE_A,
	imgui.KeyS: sdl.SCANCODE_S,
	imgui.KeyD: sdl.SCANCODE_D,
}

func (ed *editor) renderPanel() {
	x, y, _, h := ed.ui.GetViewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, h))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Material Editor", nil, flags) {
		p := &ed.demo.Params

		if imgui.TreeNodeExStrV("Phong Properties", imgui.TreeNodeFlagsDefaultOpen) {
			imgui.ColorEdit3("Diffuse", &p.Diffuse)
			imgui.Checkbox("Colored specular", &p.ColoredSpecular)
			if p.ColoredSpecular {
				imgui.ColorEdit3("Specular", &p.Specular)
			} else {
				imgui.SliderFloatV("Specular", &p.SpecularScalar, 0, 1, "%.2f", imgui.SliderFlagsNone)
			}
			imgui.SliderFloatV("Shininess", &p.Shininess, 1, 100, "%.2f", imgui.SliderFlagsNone)

			imgui.Spacing()
			imgui.Text("Premade Materials:")
			for i, preset := range scenes.Presets {
				if i%2 == 1 {
					imgui.SameLine()
				}
				if imgui.ButtonV(preset.Name, imgui.NewVec2(130, 0)) {
					p.Apply(preset)
				}
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeExStrV("Directional Light Properties", imgui.TreeNodeFlagsDefaultOpen) {
			imgui.ColorEdit3("Color", &p.LightColor)
			imgui.TreePop()
		}

		if imgui.TreeNodeExStrV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
			ed.renderCameraInfo(ed.demo.Camera())
			imgui.TreePop()
		}

		if ed.status != "" && time.Since(ed.statusTime) < 5*time.Second {
			imgui.Separator()
			imgui.TextWrapped(ed.status)
		}
	}
	imgui.End()
}

func (ed *editor) renderCameraInfo(cam *camera.Camera) {
	if cam == nil {
		imgui.TextDisabled("No camera")
		return
	}
	imgui.Text(fmt.Sprintf("Mode: %s", cam.Mode))
	imgui.Text(fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", cam.Yaw, cam.Pitch))
	if cam.Mode == camera.Orbit {
		imgui.Text(fmt.Sprintf("Distance: %.1f", cam.Distance))
	}
	imgui.TextDisabled("Drag to rotate, wheel to zoom")
	imgui.TextDisabled("C toggles mode, WASD flies")
	if imgui.ButtonV("Reset Scene", imgui.NewVec2(-1, 0)) {
		ed.demo.Reset()
	}
}

func (ed *editor) renderViewport() {
	x, y, w, h := ed.ui.GetViewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x+panelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-panelWidth, h))

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	if imgui.BeginV("Viewport", nil, flags) {
		avail := imgui.ContentRegionAvail()
		if ed.target.Resize(int32(avail.X), int32(avail.Y)) {
			ed.demo.SetAspect(ed.target.Aspect())
		}

		pos := imgui.CursorScreenPos()
		ed.events = append(ed.events, ed.viewport.Draw(ed.target.TextureID(), avail)...)
		ed.events = append(ed.events, keyEvents(ed.held, ed.viewport.Hovered() && !ui.WantsKeyboard(), ui.IsKeyDown)...)

		frame, render := ed.profiler.Average()
		if ed.profiler.Frames() >= 60 {
			ed.profiler.Reset()
		}
		var camPos [3]float32
		if cam := ed.demo.Camera(); cam != nil {
			camPos = [3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z}
		}
		ed.stats.Render(imgui.NewVec2(pos.X+10, pos.Y+10), ui.FrameStats{
			FrameTime:  frame,
			RenderTime: render,
			Vertices:   ed.demo.Vertices(),
			CameraPos:  camPos,
		})
	}
	imgui.End()
	imgui.PopStyleVar()
}

// keyEvents converts key transitions into scene key events. held carries
// the state seen last frame. Presses only count while the viewport has
// focus; releases are always reported so keys never stick.
func keyEvents(held map[imgui.Key]bool, focused bool, isDown func(imgui.Key) bool) []input.Event {
	var events []input.Event
	for key, code := range sceneKeys {
		down := isDown(key)
		switch {
		case down && !held[key] && focused:
			held[key] = true
			events = append(events, input.Event{Type: input.EventKeyDown, Key: code})
		case !down && held[key]:
			held[key] = false
			events = append(events, input.Event{Type: input.EventKeyUp, Key: code})
		}
	}
	return events
}
