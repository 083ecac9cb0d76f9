// Package gpu is the render context every engine object draws through.
//
// Objects receive a Device at construction and issue all GPU work through
// it; there is no package-level "current program" or "current context".
// GL implements Device on top of OpenGL 4.1 core. The gputest package
// provides a recording fake for tests.
package gpu

// Stage identifies a shader stage.
type Stage uint8

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

// Filter is a texture sampling filter.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Wrap is a texture coordinate wrap mode.
type Wrap uint8

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
)

// Sampler holds texture sampling parameters.
type Sampler struct {
	Wrap      Wrap
	MinFilter Filter
	MagFilter Filter
}

// Device issues GPU commands. Handles are opaque non-zero identifiers;
// zero means "none".
type Device interface {
	// CompileShader compiles a single stage. The error carries the compiler
	// log verbatim.
	CompileShader(stage Stage, src string) (uint32, error)
	DeleteShader(shader uint32)
	// LinkProgram links compiled stages. The error carries the linker log.
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	// UniformLocation returns -1 when the program has no active uniform of
	// that name.
	UniformLocation(program uint32, name string) int32
	SetUniform(location int32, value Uniform)

	CreateVertexArray() (uint32, error)
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() (uint32, error)
	// BufferData uploads data with static-draw usage.
	BufferData(buffer uint32, data []float32)
	// AttribPointer records buffer as the float source for attribute slot in
	// the bound vertex array and enables the slot.
	AttribPointer(buffer, slot uint32, components, stride int32)
	DeleteBuffer(buffer uint32)
	DrawTriangles(first, count int32)

	CreateTexture() (uint32, error)
	// TexImage uploads tightly packed RGBA8 pixels.
	TexImage(texture uint32, width, height int32, rgba []byte, s Sampler)
	BindTexture(unit, texture uint32)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)
}
