// Package input translates SDL2 events into engine events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an engine event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	// Relative mouse motion for EventMouseMove.
	DeltaX int
	DeltaY int
	// Scroll amount for EventMouseWheel; positive is away from the user.
	WheelY float32
	Button uint8
}

// Translate converts one SDL event. ok is false for events the engine
// ignores.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
			return ev, true
		case sdl.KEYUP:
			ev.Type = EventKeyUp
			return ev, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
			Button: buttonFromState(e.State),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventMouseWheel, WheelY: y}, true
	}

	return Event{}, false
}

// buttonFromState returns the lowest held button for a motion event.
func buttonFromState(state uint32) uint8 {
	for b := uint8(sdl.BUTTON_LEFT); b <= sdl.BUTTON_X2; b++ {
		if state&sdl.Button(uint32(b)) != 0 {
			return b
		}
	}
	return 0
}

// KeyState tracks which keys are down from a stream of events.
type KeyState map[sdl.Scancode]bool

// Observe folds key events into the state.
func (k KeyState) Observe(events ...Event) {
	for _, ev := range events {
		switch ev.Type {
		case EventKeyDown:
			k[ev.Key] = true
		case EventKeyUp:
			delete(k, ev.Key)
		}
	}
}

// Held reports whether scancode is down.
func (k KeyState) Held(scancode sdl.Scancode) bool { return k[scancode] }

// Input collects the events of one frame and tracks held keys.
type Input struct {
	events []Event
	held   KeyState
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(KeyState),
	}
}

// Update polls SDL events. It returns true if the application should quit.
func (i *Input) Update() bool {
	i.Begin()
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := Translate(event); ok {
			quit = i.Push(ev) || quit
		}
	}
	return quit
}

// Begin clears the events of the previous frame.
func (i *Input) Begin() {
	i.events = i.events[:0]
}

// Push records an already translated event. It returns true for a quit
// event.
func (i *Input) Push(ev Event) bool {
	i.held.Observe(ev)
	i.events = append(i.events, ev)
	return ev.Type == EventQuit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether scancode went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether scancode is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held.Held(scancode)
}
