// Package lighting uploads Phong light parameters to a material.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nsengine/pkg/math"
)

// MaxPointLights is the size of the point_lights array in the shaders.
const MaxPointLights = 32

// Uniforms receives light parameters. *material.Material implements it.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec3(name string, v math.Vec3)
}

// DirectionalLight is an infinitely distant light.
type DirectionalLight struct {
	// Direction the light travels in; need not be normalized.
	Direction        math.Vec3
	Color            math.Vec3
	AmbientIntensity float32
}

// DefaultDirectionalLight is a dim white key light from the upper left.
func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Direction:        math.Vec3{X: -3.5, Y: -3, Z: 1},
		Color:            math.Vec3{X: 1, Y: 1, Z: 1},
		AmbientIntensity: 0.1,
	}
}

// Apply writes directional_light.{direction,color,ambient_intensity}.
func (l DirectionalLight) Apply(u Uniforms) {
	u.SetVec3("directional_light.direction", l.Direction)
	u.SetVec3("directional_light.color", l.Color)
	u.SetFloat("directional_light.ambient_intensity", l.AmbientIntensity)
}

// DirectionFromAngles converts a sun position into the direction its light
// travels. Longitude rotates around Y from +Z, latitude is elevation above
// the horizon; both in degrees.
func DirectionFromAngles(longitude, latitude float32) math.Vec3 {
	lon, lat := math.Radians(longitude), math.Radians(latitude)
	toSun := math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
	return toSun.Neg()
}

// PointLight is a local light with distance falloff.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3
	Range     float32
	Intensity float32
}

type pointLightNames struct {
	position, color, rng, intensity string
}

var pointNames = func() [MaxPointLights]pointLightNames {
	var n [MaxPointLights]pointLightNames
	for i := range n {
		prefix := fmt.Sprintf("point_lights[%d].", i)
		n[i] = pointLightNames{
			position:  prefix + "position",
			color:     prefix + "color",
			rng:       prefix + "range",
			intensity: prefix + "intensity",
		}
	}
	return n
}()

// PointLights is a bounded set of point lights.
type PointLights struct {
	lights []PointLight
}

// NewPointLights creates an empty set.
func NewPointLights() *PointLights {
	return &PointLights{lights: make([]PointLight, 0, MaxPointLights)}
}

// Add appends a light. It returns false when the set is full.
func (p *PointLights) Add(l PointLight) bool {
	if len(p.lights) >= MaxPointLights {
		return false
	}
	if l.Range <= 0 {
		l.Range = 100
	}
	p.lights = append(p.lights, l)
	return true
}

// Set replaces all lights, dropping any beyond MaxPointLights.
func (p *PointLights) Set(lights []PointLight) {
	p.Clear()
	for _, l := range lights {
		if !p.Add(l) {
			return
		}
	}
}

// Clear removes all lights.
func (p *PointLights) Clear() { p.lights = p.lights[:0] }

// Len returns the number of lights.
func (p *PointLights) Len() int { return len(p.lights) }

// Lights returns the current lights.
func (p *PointLights) Lights() []PointLight { return p.lights }

// Apply writes point_lights[i].* for each light and point_lights_count.
func (p *PointLights) Apply(u Uniforms) {
	for i, l := range p.lights {
		n := &pointNames[i]
		u.SetVec3(n.position, l.Position)
		u.SetVec3(n.color, l.Color)
		u.SetFloat(n.rng, l.Range)
		u.SetFloat(n.intensity, l.Intensity)
	}
	u.SetInt("point_lights_count", int32(len(p.lights)))
}
