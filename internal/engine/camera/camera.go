// Package camera provides a first-person / orbit camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nsengine/pkg/math"
)

// Projection selects how the projection matrix is built.
type Projection uint8

const (
	Perspective Projection = iota
	// Orthographic is accepted but not built; the projection matrix keeps
	// whatever was last set.
	Orthographic
)

// Mode is a persistent camera configuration.
type Mode uint8

const (
	// FirstPerson derives the view direction from yaw and pitch; Move and
	// Strafe translate the position.
	FirstPerson Mode = iota
	// Orbit places the camera on a sphere of radius Distance around Target.
	Orbit
)

func (m Mode) String() string {
	if m == FirstPerson {
		return "first-person"
	}
	return "orbit"
}

// Limits.
const (
	MinPitch    = -89.9
	MaxPitch    = 89.9
	MinDistance = 0.5
	MaxDistance = 100.0
)

// Defaults.
const (
	DefaultFOV      = 45.0
	DefaultNear     = 0.1
	DefaultFar      = 1000.0
	DefaultYaw      = -90.0
	DefaultDistance = 30.0
)

// Camera holds view state. Yaw and pitch are in degrees. Call Update after
// changing fields directly.
type Camera struct {
	Projection Projection
	Mode       Mode

	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Target   math.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	FOV    float32 // vertical field of view, degrees
	Near   float32
	Far    float32
	aspect float32

	view       math.Mat4
	projection math.Mat4
}

// New creates an orbit camera with default lens settings.
func New(projection Projection, aspect float32) *Camera {
	c := &Camera{
		Projection: projection,
		Mode:       Orbit,
		Front:      math.Vec3{Z: -1},
		Up:         math.Vec3{Y: 1},
		Yaw:        DefaultYaw,
		Distance:   DefaultDistance,
		FOV:        DefaultFOV,
		Near:       DefaultNear,
		Far:        DefaultFar,
		view:       math.Identity(),
		projection: math.Identity(),
	}
	c.SetAspect(aspect)
	return c
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// SetAspect updates the aspect ratio and rebuilds the projection matrix.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	c.aspect = aspect
	c.rebuildProjection()
}

// SetLens updates field of view and clip planes.
func (c *Camera) SetLens(fov, near, far float32) {
	c.FOV, c.Near, c.Far = fov, near, far
	c.rebuildProjection()
}

func (c *Camera) rebuildProjection() {
	if c.Projection != Perspective {
		return
	}
	c.projection = math.Perspective(math.Radians(c.FOV), c.aspect, c.Near, c.Far)
}

// SetProjectionMatrix overrides the projection matrix until the next lens
// or aspect change.
func (c *Camera) SetProjectionMatrix(m math.Mat4) { c.projection = m }

// Update clamps pitch (and distance in orbit mode), recomputes the position
// or front vector from yaw and pitch, then rebuilds the view matrix.
func (c *Camera) Update() {
	c.Pitch = math.Clamp(c.Pitch, MinPitch, MaxPitch)
	sphere := direction(c.Yaw, c.Pitch)

	switch c.Mode {
	case FirstPerson:
		c.Front = sphere.Normalize()
		c.Target = c.Position.Add(c.Front)
	case Orbit:
		c.Distance = math.Clamp(c.Distance, MinDistance, MaxDistance)
		c.Position = c.Target.Add(sphere.Scale(c.Distance))
	}

	c.view = math.LookAt(c.Position, c.Target, c.Up)
}

// direction converts yaw and pitch in degrees into a unit vector.
func direction(yaw, pitch float32) math.Vec3 {
	y, p := math.Radians(yaw), math.Radians(pitch)
	cp := math32.Cos(p)
	return math.Vec3{
		X: math32.Cos(y) * cp,
		Y: math32.Sin(p),
		Z: math32.Sin(y) * cp,
	}
}

// Move translates along the front vector. No-op in orbit mode.
func (c *Camera) Move(amount float32) {
	if c.Mode != FirstPerson {
		return
	}
	c.Position = c.Position.Add(c.Front.Scale(amount))
}

// Strafe translates sideways; positive amounts move left. No-op in orbit
// mode.
func (c *Camera) Strafe(amount float32) {
	if c.Mode != FirstPerson {
		return
	}
	right := c.Front.Cross(c.Up).Normalize()
	c.Position = c.Position.Sub(right.Scale(amount))
}

// Rotate adds yaw and pitch deltas in degrees.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = math.Clamp(c.Pitch+dPitch, MinPitch, MaxPitch)
}

// Zoom scales the orbit distance by a scroll delta; positive zooms in.
func (c *Camera) Zoom(delta, sensitivity float32) {
	c.Distance -= delta * c.Distance * sensitivity
	c.Distance = math.Clamp(c.Distance, MinDistance, MaxDistance)
}

// Frame centers the orbit target on a bounding box and backs off so the box
// fits the view.
func (c *Camera) Frame(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() * 0.5
	if radius <= 0 {
		radius = 1
	}
	c.Distance = math.Clamp(radius/math32.Sin(math.Radians(c.FOV)*0.5), MinDistance, MaxDistance)
}

// View returns the view matrix from the last Update.
func (c *Camera) View() math.Mat4 { return c.view }

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 { return c.projection }
