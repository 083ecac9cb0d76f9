package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/nsengine/internal/engine/input"
)

type fake struct {
	Base
	name  string
	calls *[]string
	err   error
	ticks int
}

func (f *fake) Name() string { return f.name }

func (f *fake) log(hook string) { *f.calls = append(*f.calls, f.name+"."+hook) }

func (f *fake) Ready() error {
	f.log("ready")
	return f.err
}
func (f *fake) Free() { f.log("free") }
func (f *fake) Reset() { f.log("reset") }
func (f *fake) Activate() { f.log("activate") }
func (f *fake) Deactivate() { f.log("deactivate") }
func (f *fake) Render() { f.log("render") }

func (f *fake) Tick(dt float64, events []input.Event) { f.ticks++ }

func TestPushPop(t *testing.T) {
	var calls []string
	a := &fake{name: "a", calls: &calls}
	b := &fake{name: "b", calls: &calls}

	s := NewStack()
	require.NoError(t, s.Push(a))
	require.NoError(t, s.Push(b))
	assert.Same(t, b, s.Current())

	s.Pop()
	assert.Same(t, a, s.Current())

	assert.Equal(t, []string{
		"a.ready", "a.reset", "a.activate",
		"b.ready", "b.reset", "a.deactivate", "b.activate",
		"b.deactivate", "b.free", "a.activate",
	}, calls)
}

func TestPushReadyFailure(t *testing.T) {
	var calls []string
	s := NewStack()
	require.NoError(t, s.Push(&fake{name: "a", calls: &calls}))

	err := s.Push(&fake{name: "bad", calls: &calls, err: errors.New("missing shader")})
	assert.ErrorContains(t, err, "missing shader")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "a", s.Current().Name())
}

func TestSwitchIsDeferred(t *testing.T) {
	var calls []string
	a := &fake{name: "a", calls: &calls}
	b := &fake{name: "b", calls: &calls}

	s := NewStack()
	require.NoError(t, s.Push(a))
	s.Switch(b)
	assert.Same(t, a, s.Current(), "switch applies on next tick")

	require.NoError(t, s.Tick(0.016, nil))
	assert.Same(t, b, s.Current())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, a.ticks)
	assert.Equal(t, 1, b.ticks)
	assert.Contains(t, calls, "a.free")
}

func TestRenderAndReset(t *testing.T) {
	var calls []string
	s := NewStack()
	s.Render()
	s.Reset()
	require.NoError(t, s.Tick(0, nil))

	require.NoError(t, s.Push(&fake{name: "a", calls: &calls}))
	calls = calls[:0]
	s.Render()
	s.Reset()
	assert.Equal(t, []string{"a.render", "a.reset"}, calls)
}

func TestClose(t *testing.T) {
	var calls []string
	s := NewStack()
	require.NoError(t, s.Push(&fake{name: "a", calls: &calls}))
	require.NoError(t, s.Push(&fake{name: "b", calls: &calls}))
	calls = calls[:0]

	s.Close()
	assert.Equal(t, []string{"b.deactivate", "b.free", "a.deactivate", "a.free"}, calls)
	assert.Nil(t, s.Current())
}

type minimal struct{ Base }

func (minimal) Name() string { return "minimal" }

func TestBaseSatisfiesScene(t *testing.T) {
	s := NewStack()
	require.NoError(t, s.Push(minimal{}))
	require.NoError(t, s.Tick(1, []input.Event{{Type: input.EventKeyDown}}))
	s.Render()
	s.Close()
}
