package main

import (
	"testing"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/nsengine/internal/engine/input"
)

func downKeys(keys ...imgui.Key) func(imgui.Key) bool {
	set := make(map[imgui.Key]bool)
	for _, k := range keys {
		set[k] = true
	}
	return func(k imgui.Key) bool { return set[k] }
}

func TestKeyEventsPressAndRelease(t *testing.T) {
	held := make(map[imgui.Key]bool)

	events := keyEvents(held, true, downKeys(imgui.KeyW))
	require.Len(t, events, 1)
	assert.Equal(t, input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_W}, events[0])

	// Holding the key does not repeat.
	assert.Empty(t, keyEvents(held, true, downKeys(imgui.KeyW)))

	events = keyEvents(held, true, downKeys())
	require.Len(t, events, 1)
	assert.Equal(t, input.Event{Type: input.EventKeyUp, Key: sdl.SCANCODE_W}, events[0])
}

func TestKeyEventsIgnoresPressWithoutFocus(t *testing.T) {
	held := make(map[imgui.Key]bool)

	assert.Empty(t, keyEvents(held, false, downKeys(imgui.KeyC)))
	assert.False(t, held[imgui.KeyC])

	// The press registers once focus arrives while still held.
	events := keyEvents(held, true, downKeys(imgui.KeyC))
	require.Len(t, events, 1)
	assert.Equal(t, sdl.SCANCODE_C, events[0].Key)
}

func TestKeyEventsReleaseWithoutFocus(t *testing.T) {
	held := make(map[imgui.Key]bool)
	keyEvents(held, true, downKeys(imgui.KeyA, imgui.KeyD))

	events := keyEvents(held, false, downKeys())
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, input.EventKeyUp, e.Type)
	}
}

func TestKeyEventsIgnoresUnmappedKeys(t *testing.T) {
	held := make(map[imgui.Key]bool)
	assert.Empty(t, keyEvents(held, true, downKeys(imgui.KeyQ)))
}
