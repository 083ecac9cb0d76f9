// Package math provides the vector, matrix and transform types used by the engine.
//
// All types are plain float32 values. Matrices are column-major so they can be
// handed to OpenGL without transposition.
package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// DegToRad converts degrees to radians when multiplied.
const DegToRad = Pi / 180

// Radians converts an angle in degrees to radians.
func Radians(deg float32) float32 {
	return deg * DegToRad
}

// Degrees converts an angle in radians to degrees.
func Degrees(rad float32) float32 {
	return rad / DegToRad
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
