// Package material wraps a linked shader program and caches its uniform
// locations.
package material

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/assets"
	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/logger"
	"github.com/Faultbox/nsengine/pkg/math"
)

// Material is a shader program plus a name → location cache. Each distinct
// uniform name is queried from the device at most once; names the program
// does not use are cached as absent and silently ignored after the first
// warning.
type Material struct {
	dev       gpu.Device
	program   uint32
	locations map[string]int32
	values    map[string]gpu.Uniform
}

// New compiles and links a program from vertex and fragment sources.
// Compile and link failures are reported at FATAL severity and returned.
func New(dev gpu.Device, vertexSrc, fragmentSrc string) (*Material, error) {
	vs, err := dev.CompileShader(gpu.VertexStage, vertexSrc)
	if err != nil {
		return nil, errs.Report(errs.Wrap("material.New", errs.CodeShaderCompilationFailed, errs.Fatal, err))
	}

	fs, err := dev.CompileShader(gpu.FragmentStage, fragmentSrc)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, errs.Report(errs.Wrap("material.New", errs.CodeShaderCompilationFailed, errs.Fatal, err))
	}

	program, err := dev.LinkProgram(vs, fs)
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)
	if err != nil {
		return nil, errs.Report(errs.Wrap("material.New", errs.CodeShaderLinkFailed, errs.Fatal, err))
	}

	logger.Debug("material created", zap.Uint32("program", program))

	return &Material{
		dev:       dev,
		program:   program,
		locations: make(map[string]int32),
		values:    make(map[string]gpu.Uniform),
	}, nil
}

// FromFiles reads both shader sources through load and calls New.
func FromFiles(dev gpu.Device, load assets.Loader, vertexPath, fragmentPath string) (*Material, error) {
	vs, err := load(vertexPath)
	if err != nil {
		return nil, errs.Report(errs.Wrap("material.FromFiles", errs.CodeFileIO, errs.Error,
			fmt.Errorf("read %s: %w", vertexPath, err)))
	}
	fs, err := load(fragmentPath)
	if err != nil {
		return nil, errs.Report(errs.Wrap("material.FromFiles", errs.CodeFileIO, errs.Error,
			fmt.Errorf("read %s: %w", fragmentPath, err)))
	}
	return New(dev, string(vs), string(fs))
}

// Program returns the program handle, or 0 after Close.
func (m *Material) Program() uint32 {
	if m == nil {
		return 0
	}
	return m.program
}

// Use binds the program.
func (m *Material) Use() {
	m.dev.UseProgram(m.program)
}

// Uniform returns the location of name. Absent uniforms log a warning the
// first time they are requested and report false from then on. A closed
// material has no uniforms.
func (m *Material) Uniform(name string) (int32, bool) {
	if m.program == 0 {
		return -1, false
	}
	if loc, ok := m.locations[name]; ok {
		return loc, loc >= 0
	}

	loc := m.dev.UniformLocation(m.program, name)
	m.locations[name] = loc
	if loc < 0 {
		errs.Report(errs.New("material.Uniform", errs.CodeUniformNotFound, errs.Warning,
			"uniform %q not found in program %d", name, m.program))
		return loc, false
	}
	return loc, true
}

// Set binds the program and uploads v to name. Unknown names are ignored.
// The value is remembered for Value either way.
func (m *Material) Set(name string, v gpu.Uniform) {
	m.values[name] = v

	loc, ok := m.Uniform(name)
	if !ok {
		return
	}
	m.dev.UseProgram(m.program)
	m.dev.SetUniform(loc, v)
}

func (m *Material) SetFloat(name string, v float32) { m.Set(name, gpu.Float(v)) }
func (m *Material) SetInt(name string, v int32) { m.Set(name, gpu.Int(v)) }
func (m *Material) SetVec3(name string, v math.Vec3) { m.Set(name, gpu.Vec3(v)) }
func (m *Material) SetMat4(name string, v math.Mat4) { m.Set(name, gpu.Mat4(v)) }

// Value returns the last value passed to Set for name.
func (m *Material) Value(name string) (gpu.Uniform, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Float returns the last float written to name, or 0.
func (m *Material) Float(name string) float32 {
	if v, ok := m.values[name]; ok && v.Kind == gpu.KindFloat {
		return v.Float
	}
	return 0
}

// Vec3 returns the last vector written to name, or zero.
func (m *Material) Vec3(name string) math.Vec3 {
	if v, ok := m.values[name]; ok && v.Kind == gpu.KindVec3 {
		return v.Vec3
	}
	return math.Vec3{}
}

// Close deletes the program. Safe on nil and idempotent.
func (m *Material) Close() {
	if m == nil || m.program == 0 {
		return
	}
	m.dev.DeleteProgram(m.program)
	m.program = 0
	m.locations = make(map[string]int32)
}
