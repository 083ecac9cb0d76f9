// Package scenes contains the demo scenes shipped with the engine.
package scenes

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/assets"
	"github.com/Faultbox/nsengine/internal/config"
	"github.com/Faultbox/nsengine/internal/engine/camera"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/input"
	"github.com/Faultbox/nsengine/internal/engine/lighting"
	"github.com/Faultbox/nsengine/internal/engine/material"
	"github.com/Faultbox/nsengine/internal/engine/mesh"
	"github.com/Faultbox/nsengine/internal/engine/model"
	"github.com/Faultbox/nsengine/internal/engine/scene"
	"github.com/Faultbox/nsengine/internal/engine/texture"
	"github.com/Faultbox/nsengine/internal/game/scenes/shaders"
	"github.com/Faultbox/nsengine/internal/logger"
	"github.com/Faultbox/nsengine/pkg/formats/obj"
	"github.com/Faultbox/nsengine/pkg/math"
)

// Shader uniform names used by the demo.
const (
	UniformView       = "u_view"
	UniformViewPos    = "u_view_pos"
	UniformProjection = "u_projection"

	UniformDiffuseMap  = "material.diffuse"
	UniformSpecularMap = "material.specular"
	UniformEmissive    = "material.emissive"
	UniformShininess   = "material.shininess"
)

// Texture units for the material maps.
const (
	diffuseUnit  = 0
	specularUnit = 1
)

// restPosition lowers the shader ball so it sits in the middle of the view.
var restPosition = math.Vec3{Y: -6}

// MaterialDemo renders one model with an editable Phong material lit by a
// directional light. The camera orbits the model by default.
type MaterialDemo struct {
	scene.Base

	dev  gpu.Device
	load assets.Loader
	cfg  config.Config

	material    *material.Material
	model       *model.Model
	diffuseMap  *texture.Texture
	specularMap *texture.Texture
	camera      *camera.Camera
	aspect      float32
	rest        math.Vec3

	Light       lighting.DirectionalLight
	PointLights *lighting.PointLights

	// Params is read every frame; edit it directly.
	Params  MaterialParams
	applied *MaterialParams

	keys input.KeyState
}

// NewMaterialDemo creates the scene. Nothing touches the device until
// Ready.
func NewMaterialDemo(dev gpu.Device, load assets.Loader, cfg config.Config, aspect float32) *MaterialDemo {
	return &MaterialDemo{
		dev:         dev,
		load:        load,
		cfg:         cfg,
		aspect:      aspect,
		rest:        restPosition,
		PointLights: lighting.NewPointLights(),
		keys:        make(input.KeyState),
	}
}

// Name implements scene.Scene.
func (s *MaterialDemo) Name() string { return "material_demo" }

// Ready compiles the shaders, loads the model and creates the maps.
func (s *MaterialDemo) Ready() error {
	var err error
	if s.material, err = s.loadMaterial(); err != nil {
		return err
	}

	m, err := s.loadMesh(s.cfg.Scene.Model)
	if err != nil {
		s.Free()
		return err
	}
	s.model = model.New(m)

	if s.diffuseMap, err = texture.New(s.dev); err != nil {
		s.Free()
		return err
	}
	if s.specularMap, err = texture.New(s.dev); err != nil {
		s.Free()
		return err
	}

	s.camera = camera.New(camera.Perspective, s.aspect)
	s.camera.SetLens(s.cfg.Camera.FOV, s.cfg.Camera.Near, s.cfg.Camera.Far)
	if s.cfg.Camera.Mode == "first_person" {
		s.camera.Mode = camera.FirstPerson
	}
	return nil
}

func (s *MaterialDemo) loadMaterial() (*material.Material, error) {
	vs, fs := s.cfg.Scene.VertexShader, s.cfg.Scene.FragmentShader
	if vs == "" && fs == "" {
		return material.New(s.dev, shaders.BaseVertexShader, shaders.PhongFragmentShader)
	}
	if vs == "" || fs == "" {
		return nil, fmt.Errorf("both vertex and fragment shader paths are required, got %q and %q", vs, fs)
	}
	return material.FromFiles(s.dev, s.load, vs, fs)
}

// loadMesh builds the mesh for path, or a unit cube when path is empty.
// The scene keeps ownership of the material.
func (s *MaterialDemo) loadMesh(path string) (*mesh.Mesh, error) {
	if path == "" {
		return mesh.Cube(s.dev, s.material, 8, 8, 8, mesh.WithSharedMaterial())
	}

	data, err := s.load(path)
	if err != nil {
		return nil, err
	}
	o, err := obj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("model loaded", zap.String("path", path), zap.Int("triangles", o.Len()))
	return mesh.FromOBJ(s.dev, s.material, o, mesh.WithSharedMaterial())
}

// LoadModel replaces the displayed model with an OBJ file, centers it at
// the origin and frames the camera on it. On failure the current model is
// kept.
func (s *MaterialDemo) LoadModel(path string) error {
	data, err := s.load(path)
	if err != nil {
		return err
	}
	o, err := obj.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	m, err := mesh.FromOBJ(s.dev, s.material, o, mesh.WithSharedMaterial())
	if err != nil {
		return err
	}

	if s.model != nil {
		s.model.Close()
	}
	s.model = model.New(m)

	s.rest = math.Vec3{}
	if min, max, ok := o.Bounds(); ok {
		s.rest = min.Add(max).Scale(-0.5)
		s.camera.Frame(min.Add(s.rest), max.Add(s.rest))
	}
	s.model.SetPosition(s.rest)

	logger.Info("model replaced", zap.String("path", path), zap.Int("triangles", o.Len()))
	return nil
}

// Reset restores the light, the white plastic material and the camera
// angle.
func (s *MaterialDemo) Reset() {
	s.Light = lighting.DefaultDirectionalLight()
	s.PointLights.Clear()
	s.Params = DefaultParams()
	s.applied = nil

	s.camera.Yaw = 36
	s.camera.Pitch = 25
	s.camera.Update()

	s.model.SetPosition(s.rest)
}

// Tick drives the camera: drag to orbit or look, wheel to zoom, WASD to
// fly in first-person mode, C to switch mode and R to reset.
func (s *MaterialDemo) Tick(dt float64, events []input.Event) {
	s.keys.Observe(events...)
	sens := s.cfg.Camera.Sensitivity

	for _, ev := range events {
		switch ev.Type {
		case input.EventMouseMove:
			if ev.Button == sdl.BUTTON_LEFT || (s.camera.Mode == camera.FirstPerson && ev.Button != 0) {
				s.camera.Rotate(float32(ev.DeltaX)*sens, -float32(ev.DeltaY)*sens)
			}
		case input.EventMouseWheel:
			s.camera.Zoom(ev.WheelY, 0.1*s.cfg.Camera.ZoomSpeed)
		case input.EventWindowResize:
			if ev.Height > 0 {
				s.SetAspect(float32(ev.Width) / float32(ev.Height))
			}
		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			switch ev.Key {
			case sdl.SCANCODE_C:
				s.toggleMode()
			case sdl.SCANCODE_R:
				s.Reset()
			}
		}
	}

	if s.camera.Mode == camera.FirstPerson {
		step := float32(dt) * flySpeed
		if s.keys.Held(sdl.SCANCODE_W) {
			s.camera.Move(step)
		}
		if s.keys.Held(sdl.SCANCODE_S) {
			s.camera.Move(-step)
		}
		if s.keys.Held(sdl.SCANCODE_A) {
			s.camera.Strafe(step)
		}
		if s.keys.Held(sdl.SCANCODE_D) {
			s.camera.Strafe(-step)
		}
	}

	s.camera.Update()
}

// flySpeed is the first-person movement speed in units per second.
const flySpeed = 10

func (s *MaterialDemo) toggleMode() {
	if s.camera.Mode == camera.Orbit {
		// Start flying from where the orbit put us, looking the same way.
		s.camera.Mode = camera.FirstPerson
		s.camera.Yaw += 180
		s.camera.Pitch = -s.camera.Pitch
	} else {
		s.camera.Mode = camera.Orbit
		s.camera.Target = math.Vec3{}
		s.camera.Yaw -= 180
		s.camera.Pitch = -s.camera.Pitch
	}
	logger.Debug("camera mode", zap.Stringer("mode", s.camera.Mode))
}

// SetAspect updates the projection for a new viewport shape.
func (s *MaterialDemo) SetAspect(aspect float32) {
	s.aspect = aspect
	if s.camera != nil {
		s.camera.SetAspect(aspect)
	}
}

// syncMaterial pushes Params to the maps and uniforms when they changed.
func (s *MaterialDemo) syncMaterial() {
	if s.applied != nil && *s.applied == s.Params {
		return
	}
	p := s.Params
	s.diffuseMap.Fill(texture.RGB(p.Diffuse[0], p.Diffuse[1], p.Diffuse[2]))
	spec := p.EffectiveSpecular()
	s.specularMap.Fill(texture.RGB(spec[0], spec[1], spec[2]))
	s.material.SetFloat(UniformShininess, p.Shininess)
	s.Light.Color = vec3(p.LightColor)
	s.applied = &p
}

func vec3(c [3]float32) math.Vec3 {
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// Render uploads camera, light and material state and draws the model.
func (s *MaterialDemo) Render() {
	s.syncMaterial()

	mat := s.material
	mat.SetMat4(UniformView, s.camera.View())
	mat.SetVec3(UniformViewPos, s.camera.Position)
	mat.SetMat4(UniformProjection, s.camera.ProjectionMatrix())

	s.Light.Apply(mat)
	s.PointLights.Apply(mat)

	mat.SetInt(UniformDiffuseMap, diffuseUnit)
	s.diffuseMap.Bind(diffuseUnit)
	mat.SetInt(UniformSpecularMap, specularUnit)
	s.specularMap.Bind(specularUnit)
	mat.SetVec3(UniformEmissive, math.Vec3{})

	s.model.Render()
}

// Free releases the model, maps and material.
func (s *MaterialDemo) Free() {
	if s.model != nil {
		s.model.Close()
		s.model = nil
	}
	if s.diffuseMap != nil {
		s.diffuseMap.Close()
		s.diffuseMap = nil
	}
	if s.specularMap != nil {
		s.specularMap.Close()
		s.specularMap = nil
	}
	s.material.Close()
	s.material = nil
}

// Camera returns the scene camera.
func (s *MaterialDemo) Camera() *camera.Camera { return s.camera }

// Model returns the displayed model.
func (s *MaterialDemo) Model() *model.Model { return s.model }

// Material returns the shared Phong material.
func (s *MaterialDemo) Material() *material.Material { return s.material }

// Vertices returns the number of vertices drawn per frame.
func (s *MaterialDemo) Vertices() int {
	if s.model == nil {
		return 0
	}
	return int(s.model.Mesh().Count())
}
