package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/material"
	"github.com/Faultbox/nsengine/pkg/formats/obj"
	"github.com/Faultbox/nsengine/pkg/math"
)

// quad describes one axis-aligned face: its normal and the two in-plane axes
// with u × v = normal.
type quad struct {
	normal, u, v math.Vec3
}

var cubeFaces = [6]quad{
	{normal: math.Vec3{X: 1}, u: math.Vec3{Z: -1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{X: -1}, u: math.Vec3{Z: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Y: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: -1}},
	{normal: math.Vec3{Y: -1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: 1}},
	{normal: math.Vec3{Z: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Z: -1}, u: math.Vec3{X: -1}, v: math.Vec3{Y: 1}},
}

// quadCorners lists the two counter-clockwise triangles of a face as
// (u, v) signs.
var quadCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

type geometry struct {
	positions, normals, uvs []float32
}

func (g *geometry) vertex(p, n math.Vec3, uv math.Vec2) {
	g.positions = append(g.positions, p.X, p.Y, p.Z)
	g.normals = append(g.normals, n.X, n.Y, n.Z)
	g.uvs = append(g.uvs, uv.X, uv.Y)
}

func mulComponents(a, b math.Vec3) math.Vec3 {
	return math.Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func extent(axis, size math.Vec3) float32 {
	return math32.Abs(axis.X)*size.X + math32.Abs(axis.Y)*size.Y + math32.Abs(axis.Z)*size.Z
}

// addQuad appends one face. UVs tile once per world unit.
func (g *geometry) addQuad(q quad, size math.Vec3) {
	half := size.Scale(0.5)
	uLen, vLen := extent(q.u, size), extent(q.v, size)
	center := mulComponents(q.normal, half)

	for _, c := range quadCorners {
		p := center.
			Add(mulComponents(q.u.Scale(c[0]), half)).
			Add(mulComponents(q.v.Scale(c[1]), half))
		uv := math.Vec2{X: (c[0] + 1) / 2 * uLen, Y: (c[1] + 1) / 2 * vLen}
		g.vertex(p, q.normal, uv)
	}
}

// Cube builds a 36-vertex box centered on the origin.
func Cube(dev gpu.Device, mat *material.Material, width, height, length float32, opts ...Option) (*Mesh, error) {
	size := math.Vec3{X: width, Y: height, Z: length}
	var g geometry
	for _, q := range cubeFaces {
		g.addQuad(q, size)
	}
	return build(dev, mat, g, opts)
}

// Plane builds a 6-vertex XZ plane centered on the origin, facing +Y.
func Plane(dev gpu.Device, mat *material.Material, width, height float32, opts ...Option) (*Mesh, error) {
	var g geometry
	g.addQuad(cubeFaces[2], math.Vec3{X: width, Z: height})
	return build(dev, mat, g, opts)
}

// FromOBJ builds a mesh from parsed OBJ triangles.
func FromOBJ(dev gpu.Device, mat *material.Material, o *obj.OBJ, opts ...Option) (*Mesh, error) {
	var g geometry
	n := o.Len()
	g.positions = make([]float32, 0, n*9)
	g.normals = make([]float32, 0, n*9)
	g.uvs = make([]float32, 0, n*6)

	for i := 0; i < n; i++ {
		t := o.Tris.At(i)
		for k := 0; k < 3; k++ {
			g.vertex(t.Vertices[k], t.Normals[k], t.UVs[k])
		}
	}
	return build(dev, mat, g, opts)
}

// build creates position, normal and uv buffers in that order and
// initializes the mesh.
func build(dev gpu.Device, mat *material.Material, g geometry, opts []Option) (*Mesh, error) {
	m, err := New(dev, mat, opts...)
	if err != nil {
		return nil, err
	}

	streams := []struct {
		slot       uint32
		components int32
		data       []float32
	}{
		{SlotPosition, 3, g.positions},
		{SlotNormal, 3, g.normals},
		{SlotUV, 2, g.uvs},
	}

	for _, s := range streams {
		b, err := NewBuffer(dev, s.slot, s.components)
		if err == nil {
			err = b.Write(s.data)
			if err == nil {
				err = m.PushBuffer(b)
			}
			if err != nil {
				b.Close()
			}
		}
		if err != nil {
			m.closeKeepMaterial()
			return nil, err
		}
	}

	if err := m.Initialize(); err != nil {
		m.closeKeepMaterial()
		return nil, err
	}
	return m, nil
}

// closeKeepMaterial releases GPU objects on a failed build; the caller
// still owns the material it passed in.
func (m *Mesh) closeKeepMaterial() {
	m.ownsMaterial = false
	m.Close()
}
