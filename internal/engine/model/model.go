// Package model pairs a mesh with a transform.
package model

import (
	"github.com/Faultbox/nsengine/internal/engine/mesh"
	"github.com/Faultbox/nsengine/pkg/math"
)

// UniformModel is the uniform that receives the world matrix.
const UniformModel = "u_model"

// Model is an owned mesh placed in the world. The world matrix is rebuilt
// from the full transform whenever any part of it changes.
type Model struct {
	mesh   *mesh.Mesh
	xform  math.Transform
	matrix math.Mat4
}

// New wraps m with the zero transform.
func New(m *mesh.Mesh) *Model {
	return &Model{
		mesh:   m,
		xform:  math.ZeroTransform(),
		matrix: math.Identity(),
	}
}

// Mesh returns the owned mesh.
func (m *Model) Mesh() *mesh.Mesh { return m.mesh }

// SetPosition sets the translation.
func (m *Model) SetPosition(p math.Vec3) {
	m.xform.Position = p
	// TODO: translate the cached matrix in place for position-only changes.
	m.matrix = m.xform.Matrix()
}

// Position returns the translation.
func (m *Model) Position() math.Vec3 { return m.xform.Position }

// SetEulerAngles sets the rotation in radians.
func (m *Model) SetEulerAngles(r math.Vec3) {
	m.xform.Rotation = r
	m.matrix = m.xform.Matrix()
}

// EulerAngles returns the rotation in radians.
func (m *Model) EulerAngles() math.Vec3 { return m.xform.Rotation }

// SetScale sets the per-axis scale.
func (m *Model) SetScale(s math.Vec3) {
	m.xform.Scale = s
	m.matrix = m.xform.Matrix()
}

// Scale returns the per-axis scale.
func (m *Model) Scale() math.Vec3 { return m.xform.Scale }

// Transform returns the full transform.
func (m *Model) Transform() math.Transform { return m.xform }

// Matrix returns the cached world matrix.
func (m *Model) Matrix() math.Mat4 { return m.matrix }

// Render uploads the world matrix to the mesh material and draws the mesh.
func (m *Model) Render() {
	if mat := m.mesh.Material(); mat != nil {
		mat.SetMat4(UniformModel, m.matrix)
	}
	m.mesh.Render()
}

// Close closes the mesh. Safe on nil.
func (m *Model) Close() {
	if m == nil {
		return
	}
	m.mesh.Close()
}
