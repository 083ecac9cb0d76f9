package gpu

import (
	"fmt"

	"github.com/Faultbox/nsengine/pkg/math"
)

// Kind tags the payload of a Uniform.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindInt
	KindVec3
	KindMat4
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindVec3:
		return "vec3"
	case KindMat4:
		return "mat4"
	}
	return "invalid"
}

// Uniform is a shader uniform value. Only the field matching Kind is
// meaningful.
type Uniform struct {
	Kind  Kind
	Float float32
	Int   int32
	Vec3  math.Vec3
	Mat4  math.Mat4
}

// Float wraps a float32 value.
func Float(v float32) Uniform { return Uniform{Kind: KindFloat, Float: v} }

// Int wraps an int32 value; also used for sampler units.
func Int(v int32) Uniform { return Uniform{Kind: KindInt, Int: v} }

// Vec3 wraps a vector value.
func Vec3(v math.Vec3) Uniform { return Uniform{Kind: KindVec3, Vec3: v} }

// Mat4 wraps a matrix value.
func Mat4(m math.Mat4) Uniform { return Uniform{Kind: KindMat4, Mat4: m} }

func (u Uniform) String() string {
	switch u.Kind {
	case KindFloat:
		return fmt.Sprintf("float(%g)", u.Float)
	case KindInt:
		return fmt.Sprintf("int(%d)", u.Int)
	case KindVec3:
		return fmt.Sprintf("vec3(%g, %g, %g)", u.Vec3.X, u.Vec3.Y, u.Vec3.Z)
	case KindMat4:
		return fmt.Sprintf("mat4(%v)", [16]float32(u.Mat4))
	}
	return "invalid"
}
