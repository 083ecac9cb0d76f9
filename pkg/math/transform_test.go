package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroTransformIsIdentity(t *testing.T) {
	xf := ZeroTransform()
	assert.Equal(t, Vec3{1, 1, 1}, xf.Scale)
	assert.True(t, xf.Matrix().ApproxEqual(Identity(), 1e-6))
}

func TestScaleOnlyTransformIsDiagonal(t *testing.T) {
	xf := ZeroTransform()
	xf.Scale = Vec3{2, 3, 4}

	m := xf.Matrix()
	assert.True(t, m.ApproxEqual(Scale(2, 3, 4), 1e-6), "got %v", m)
}

func TestTransformComposition(t *testing.T) {
	xf := Transform{
		Position: Vec3{1, -2, 3},
		Rotation: Vec3{0.4, -0.7, 1.2},
		Scale:    Vec3{2, 0.5, 1.5},
	}

	want := Translate(1, -2, 3).
		Mul(RotateX(0.4)).
		Mul(RotateY(-0.7)).
		Mul(RotateZ(1.2)).
		Mul(Scale(2, 0.5, 1.5))

	assert.True(t, xf.Matrix().ApproxEqual(want, 1e-5), "got %v, want %v", xf.Matrix(), want)
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, Pi, Radians(180), 1e-6)
	assert.InDelta(t, 90, Degrees(Pi/2), 1e-4)
}
