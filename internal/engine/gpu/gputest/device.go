// Package gputest provides an in-memory gpu.Device that records calls.
package gputest

import (
	"fmt"
	"strings"

	"github.com/Faultbox/nsengine/internal/engine/gpu"
)

// Upload is a recorded uniform write.
type Upload struct {
	Program  uint32
	Location int32
	Value    gpu.Uniform
}

// Attrib is a recorded attribute binding.
type Attrib struct {
	VAO        uint32
	Buffer     uint32
	Slot       uint32
	Components int32
	Stride     int32
}

// Draw is a recorded draw call.
type Draw struct {
	Program uint32
	VAO     uint32
	First   int32
	Count   int32
}

// Texture is the recorded state of a texture object.
type Texture struct {
	Width, Height int32
	Pixels        []byte
	Sampler       gpu.Sampler
}

// Device is a fake gpu.Device. Shader sources containing FailCompile fail to
// compile; a program whose vertex source contains FailLink fails to link.
// Uniform names are resolved against Uniforms, keyed by program.
type Device struct {
	FailCompile string
	FailLink    string
	// FailCreate makes every Create* call fail.
	FailCreate bool

	next uint32

	Shaders   map[uint32]string
	Programs  map[uint32][]uint32
	VAOs      map[uint32]bool
	Buffers   map[uint32][]float32
	Textures  map[uint32]*Texture
	Uniforms  map[uint32]map[string]int32
	Lookups   map[string]int
	Uploads   []Upload
	Attribs   []Attrib
	Draws     []Draw
	Bound     map[uint32]uint32
	Viewports [][4]int32
	Clears    int

	Program uint32
	VAO     uint32
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		FailCompile: "#error",
		FailLink:    "#nolink",
		Shaders:     map[uint32]string{},
		Programs:    map[uint32][]uint32{},
		VAOs:        map[uint32]bool{},
		Buffers:     map[uint32][]float32{},
		Textures:    map[uint32]*Texture{},
		Uniforms:    map[uint32]map[string]int32{},
		Lookups:     map[string]int{},
		Bound:       map[uint32]uint32{},
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// Declare registers active uniforms for program with consecutive locations.
func (d *Device) Declare(program uint32, names ...string) {
	m := d.Uniforms[program]
	if m == nil {
		m = map[string]int32{}
		d.Uniforms[program] = m
	}
	for _, n := range names {
		if _, ok := m[n]; !ok {
			m[n] = int32(len(m))
		}
	}
}

// UploadsTo returns all values written to name in program.
func (d *Device) UploadsTo(program uint32, name string) []gpu.Uniform {
	loc, ok := d.Uniforms[program][name]
	if !ok {
		return nil
	}
	var out []gpu.Uniform
	for _, u := range d.Uploads {
		if u.Program == program && u.Location == loc {
			out = append(out, u.Value)
		}
	}
	return out
}

// Live returns the number of GPU objects not yet deleted.
func (d *Device) Live() int {
	return len(d.Shaders) + len(d.Programs) + len(d.VAOs) + len(d.Buffers) + len(d.Textures)
}

func (d *Device) CompileShader(stage gpu.Stage, src string) (uint32, error) {
	if d.FailCreate {
		return 0, fmt.Errorf("%s shader: create failed", stage)
	}
	if d.FailCompile != "" && strings.Contains(src, d.FailCompile) {
		return 0, fmt.Errorf("%s shader: 0:1(1): error: syntax error, unexpected %s", stage, d.FailCompile)
	}
	h := d.handle()
	d.Shaders[h] = src
	return h, nil
}

func (d *Device) DeleteShader(shader uint32) { delete(d.Shaders, shader) }

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	for _, s := range shaders {
		if d.FailLink != "" && strings.Contains(d.Shaders[s], d.FailLink) {
			return 0, fmt.Errorf("link: error: unresolved varying")
		}
	}
	h := d.handle()
	d.Programs[h] = append([]uint32(nil), shaders...)
	return h, nil
}

func (d *Device) DeleteProgram(program uint32) {
	delete(d.Programs, program)
	if d.Program == program {
		d.Program = 0
	}
}

func (d *Device) UseProgram(program uint32) { d.Program = program }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.Lookups[name]++
	if loc, ok := d.Uniforms[program][name]; ok {
		return loc
	}
	return -1
}

func (d *Device) SetUniform(location int32, value gpu.Uniform) {
	d.Uploads = append(d.Uploads, Upload{Program: d.Program, Location: location, Value: value})
}

func (d *Device) CreateVertexArray() (uint32, error) {
	if d.FailCreate {
		return 0, fmt.Errorf("create vertex array failed")
	}
	h := d.handle()
	d.VAOs[h] = true
	return h, nil
}

func (d *Device) BindVertexArray(vao uint32) { d.VAO = vao }

func (d *Device) DeleteVertexArray(vao uint32) {
	delete(d.VAOs, vao)
	if d.VAO == vao {
		d.VAO = 0
	}
}

func (d *Device) CreateBuffer() (uint32, error) {
	if d.FailCreate {
		return 0, fmt.Errorf("create buffer failed")
	}
	h := d.handle()
	d.Buffers[h] = nil
	return h, nil
}

func (d *Device) BufferData(buffer uint32, data []float32) {
	d.Buffers[buffer] = append([]float32(nil), data...)
}

func (d *Device) AttribPointer(buffer, slot uint32, components, stride int32) {
	d.Attribs = append(d.Attribs, Attrib{VAO: d.VAO, Buffer: buffer, Slot: slot, Components: components, Stride: stride})
}

func (d *Device) DeleteBuffer(buffer uint32) { delete(d.Buffers, buffer) }

func (d *Device) DrawTriangles(first, count int32) {
	d.Draws = append(d.Draws, Draw{Program: d.Program, VAO: d.VAO, First: first, Count: count})
}

func (d *Device) CreateTexture() (uint32, error) {
	if d.FailCreate {
		return 0, fmt.Errorf("create texture failed")
	}
	h := d.handle()
	d.Textures[h] = &Texture{}
	return h, nil
}

func (d *Device) TexImage(texture uint32, width, height int32, rgba []byte, s gpu.Sampler) {
	d.Textures[texture] = &Texture{Width: width, Height: height, Pixels: append([]byte(nil), rgba...), Sampler: s}
}

func (d *Device) BindTexture(unit, texture uint32) { d.Bound[unit] = texture }

func (d *Device) DeleteTexture(texture uint32) { delete(d.Textures, texture) }

func (d *Device) Viewport(x, y, width, height int32) {
	d.Viewports = append(d.Viewports, [4]int32{x, y, width, height})
}

func (d *Device) Clear(r, g, b, a float32) { d.Clears++ }
