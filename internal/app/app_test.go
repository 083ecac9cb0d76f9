package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/nsengine/internal/config"
	"github.com/Faultbox/nsengine/internal/engine/gpu/gputest"
	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/engine/scene"
)

type fakeSurface struct {
	width, height int32
	swaps         int
	closed        bool
	title         string
}

func (s *fakeSurface) SwapBuffers() { s.swaps++ }

func (s *fakeSurface) DrawableSize() (int32, int32) { return s.width, s.height }

func (s *fakeSurface) SetTitle(title string) { s.title = title }

func (s *fakeSurface) Close() { s.closed = true }

type countingScene struct {
	scene.Base
	ticks, renders int
	freed          bool
	lastEvents     []input.Event
}

func (c *countingScene) Name() string { return "counting" }

func (c *countingScene) Tick(dt float64, events []input.Event) {
	c.ticks++
	c.lastEvents = events
}

func (c *countingScene) Render() { c.renders++ }

func (c *countingScene) Free() { c.freed = true }

type failingScene struct{ scene.Base }

func (failingScene) Name() string { return "failing" }

func (failingScene) Ready() error { return errors.New("no shaders") }

func newTestApp(t *testing.T) (*App, *fakeSurface, *gputest.Device) {
	t.Helper()
	win := &fakeSurface{width: 1280, height: 720}
	dev := gputest.New()
	return newApp(config.Default(), win, dev), win, dev
}

func TestStepOrder(t *testing.T) {
	a, win, dev := newTestApp(t)
	sc := &countingScene{}
	require.NoError(t, a.Scenes().Push(sc))

	events := []input.Event{{Type: input.EventMouseMove, DeltaX: 2}}
	require.NoError(t, a.step(0.016, events))

	assert.Equal(t, 1, sc.ticks)
	assert.Equal(t, 1, sc.renders)
	assert.Equal(t, events, sc.lastEvents)
	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, 1, win.swaps)
	assert.Equal(t, 1, a.Profiler().Frames())
}

func TestStepQuitAndEscape(t *testing.T) {
	for _, ev := range []input.Event{
		{Type: input.EventQuit},
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE},
	} {
		a, _, _ := newTestApp(t)
		a.running = true
		require.NoError(t, a.step(0, []input.Event{ev}))
		assert.False(t, a.Running())
	}
}

func TestStepResizeUsesDrawableSize(t *testing.T) {
	a, win, dev := newTestApp(t)
	win.width, win.height = 2560, 1440

	require.NoError(t, a.step(0, []input.Event{{Type: input.EventWindowResize, Width: 1280, Height: 720}}))

	require.NotEmpty(t, dev.Viewports)
	assert.Equal(t, [4]int32{0, 0, 2560, 1440}, dev.Viewports[len(dev.Viewports)-1])
	assert.InDelta(t, 16.0/9.0, a.Aspect(), 1e-6)
}

func TestStepSwitchFailure(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.Scenes().Push(&countingScene{}))

	a.Scenes().Switch(failingScene{})
	assert.Error(t, a.step(0, nil))
}

func TestClose(t *testing.T) {
	a, win, _ := newTestApp(t)
	sc := &countingScene{}
	require.NoError(t, a.Scenes().Push(sc))

	a.Close()
	assert.True(t, sc.freed)
	assert.True(t, win.closed)
	assert.Zero(t, a.Scenes().Len())

	a.Close()
}

func TestAspectDegenerate(t *testing.T) {
	a, win, _ := newTestApp(t)
	win.height = 0
	assert.Equal(t, float32(1), a.Aspect())
}

func TestProfiler(t *testing.T) {
	var p Profiler
	frame, render := p.Average()
	assert.Zero(t, frame)
	assert.Zero(t, render)

	p.Record(10*time.Millisecond, 4*time.Millisecond)
	p.Record(20*time.Millisecond, 6*time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, p.Frame)
	frame, render = p.Average()
	assert.Equal(t, 15*time.Millisecond, frame)
	assert.Equal(t, 5*time.Millisecond, render)

	p.Reset()
	assert.Zero(t, p.Frames())
}

func TestPacing(t *testing.T) {
	assert.Zero(t, frameBudget(0))
	budget := frameBudget(50)
	assert.Equal(t, 20*time.Millisecond, budget)

	assert.Equal(t, 15*time.Millisecond, pacing(5*time.Millisecond, budget))
	assert.Zero(t, pacing(25*time.Millisecond, budget))
	assert.Zero(t, pacing(time.Millisecond, 0))
}
