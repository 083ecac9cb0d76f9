package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/logger"
)

// GL implements Device on the OpenGL 4.1 core profile of the current
// context. All methods must be called from the thread owning the context.
type GL struct {
	Version  string
	Renderer string
}

// NewGL loads OpenGL function pointers for the current context and sets the
// engine's fixed pipeline state.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}

	d := &GL{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", d.Version),
		zap.String("renderer", d.Renderer))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return d, nil
}

var stageTypes = map[Stage]uint32{
	VertexStage:   gl.VERTEX_SHADER,
	FragmentStage: gl.FRAGMENT_SHADER,
}

func (d *GL) CompileShader(stage Stage, src string) (uint32, error) {
	shader := gl.CreateShader(stageTypes[stage])
	if shader == 0 {
		return 0, fmt.Errorf("%s shader: glCreateShader failed", stage)
	}
	csource, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, strings.TrimRight(string(log), "\x00\n"))
	}

	return shader, nil
}

func (d *GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GL) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("link: glCreateProgram failed")
	}
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00\n"))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (d *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GL) SetUniform(location int32, u Uniform) {
	switch u.Kind {
	case KindFloat:
		gl.Uniform1f(location, u.Float)
	case KindInt:
		gl.Uniform1i(location, u.Int)
	case KindVec3:
		gl.Uniform3f(location, u.Vec3.X, u.Vec3.Y, u.Vec3.Z)
	case KindMat4:
		gl.UniformMatrix4fv(location, 1, false, &u.Mat4[0])
	}
}

func (d *GL) CreateVertexArray() (uint32, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays failed")
	}
	return vao, nil
}

func (d *GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GL) CreateBuffer() (uint32, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("glGenBuffers failed")
	}
	return vbo, nil
}

func (d *GL) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *GL) AttribPointer(buffer, slot uint32, components, stride int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointer(slot, components, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(slot)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *GL) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *GL) CreateTexture() (uint32, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("glGenTextures failed")
	}
	return tex, nil
}

func glWrap(w Wrap) int32 {
	if w == WrapClampToEdge {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

func glFilter(f Filter) int32 {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (d *GL) TexImage(texture uint32, width, height int32, rgba []byte, s Sampler) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(s.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(s.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(s.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(s.MagFilter))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *GL) BindTexture(unit, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *GL) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (d *GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GL) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
