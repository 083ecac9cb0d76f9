package math

import "github.com/chewxy/math32"

// Transform is a position, Euler rotation (radians) and scale triple.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// ZeroTransform returns the neutral transform. Scale is (1,1,1), not zero.
func ZeroTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Matrix builds the world matrix: rotation (Z*Y*X) then scale then translation.
// The full matrix is rebuilt on every call.
func (t Transform) Matrix() Mat4 {
	m := Identity()

	cx, sx := math32.Cos(t.Rotation.X), math32.Sin(t.Rotation.X)
	cy, sy := math32.Cos(t.Rotation.Y), math32.Sin(t.Rotation.Y)
	cz, sz := math32.Cos(t.Rotation.Z), math32.Sin(t.Rotation.Z)

	m[0] = cy * cz
	m[4] = -cy * sz
	m[8] = sy

	m[1] = sx*sy*cz + cx*sz
	m[5] = -sx*sy*sz + cx*cz
	m[9] = -sx * cy

	m[2] = -cx*sy*cz + sx*sz
	m[6] = cx*sy*sz + sx*cz
	m[10] = cx * cy

	m[0] *= t.Scale.X
	m[1] *= t.Scale.X
	m[2] *= t.Scale.X

	m[4] *= t.Scale.Y
	m[5] *= t.Scale.Y
	m[6] *= t.Scale.Y

	m[8] *= t.Scale.Z
	m[9] *= t.Scale.Z
	m[10] *= t.Scale.Z

	m[12] = t.Position.X
	m[13] = t.Position.Y
	m[14] = t.Position.Z

	return m
}
