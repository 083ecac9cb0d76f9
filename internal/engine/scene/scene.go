// Package scene defines the lifecycle hooks a scene implements and the
// stack that drives them.
package scene

import (
	"github.com/Faultbox/nsengine/internal/engine/input"
)

// Scene is a unit of gameplay and rendering driven by the App.
//
// Hook order: Ready once when first pushed (resource loading), Reset right
// after Ready and whenever the scene is restarted, Activate/Deactivate
// around each period at the top of the stack, Tick and Render every frame
// while active, Free once when removed.
type Scene interface {
	Name() string
	Ready() error
	Free()
	Reset()
	Activate()
	Deactivate()
	Tick(dt float64, events []input.Event)
	Render()
}

// Base provides no-op hooks. Embed it and override what you need.
type Base struct{}

func (Base) Ready() error { return nil }
func (Base) Free() {}
func (Base) Reset() {}
func (Base) Activate() {}
func (Base) Deactivate() {}
func (Base) Tick(float64, []input.Event) {}
func (Base) Render() {}
