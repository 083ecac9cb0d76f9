package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/nsengine/internal/engine/input"
)

// Viewport shows an offscreen render target inside an ImGui window and
// turns mouse interaction over it into engine input events.
type Viewport struct {
	lastMouse imgui.Vec2
	hovered   bool
}

// Hovered reports whether the mouse was over the image last frame.
func (v *Viewport) Hovered() bool { return v.hovered }

// Draw renders textureID at size and returns the pointer events produced
// while hovered. GL textures are bottom-up, so V is flipped.
func (v *Viewport) Draw(textureID uint32, size imgui.Vec2) []input.Event {
	ref := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*ref,
		size,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	mouse := imgui.MousePos()
	defer func() { v.lastMouse = mouse }()

	v.hovered = imgui.IsItemHovered()
	if !v.hovered {
		return nil
	}

	var button uint8
	switch {
	case imgui.IsMouseDown(imgui.MouseButtonLeft):
		button = sdl.BUTTON_LEFT
	case imgui.IsMouseDown(imgui.MouseButtonRight):
		button = sdl.BUTTON_RIGHT
	}
	return pointerEvents(mouse.X-v.lastMouse.X, mouse.Y-v.lastMouse.Y, button, imgui.CurrentIO().MouseWheel())
}

// pointerEvents builds the events the scene sees for one frame of mouse
// activity. Motion is only reported while a button is held.
func pointerEvents(dx, dy float32, button uint8, wheel float32) []input.Event {
	var events []input.Event
	if button != 0 && (dx != 0 || dy != 0) {
		events = append(events, input.Event{
			Type:   input.EventMouseMove,
			DeltaX: int(dx),
			DeltaY: int(dy),
			Button: button,
		})
	}
	if wheel != 0 {
		events = append(events, input.Event{Type: input.EventMouseWheel, WheelY: wheel})
	}
	return events
}
