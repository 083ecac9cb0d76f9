package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu/gputest"
	"github.com/Faultbox/nsengine/internal/engine/material"
	"github.com/Faultbox/nsengine/internal/logger"
	"github.com/Faultbox/nsengine/pkg/formats/obj"
	"github.com/Faultbox/nsengine/pkg/math"
)

func newMaterial(t *testing.T, dev *gputest.Device) *material.Material {
	t.Helper()
	m, err := material.New(dev, "void main() {}", "void main() {}")
	require.NoError(t, err)
	return m
}

func buffer(t *testing.T, dev *gputest.Device, slot uint32, components int32, n int) *Buffer {
	t.Helper()
	b, err := NewBuffer(dev, slot, components)
	require.NoError(t, err)
	require.NoError(t, b.Write(make([]float32, n*int(components))))
	return b
}

func TestBuffer(t *testing.T) {
	dev := gputest.New()
	b, err := NewBuffer(dev, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(8), b.Stride)

	require.NoError(t, b.Write([]float32{0, 0, 1, 0, 1, 1}))
	assert.Equal(t, int32(3), b.Count)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1}, dev.Buffers[b.ID()])

	assert.True(t, errs.Is(b.Write([]float32{1, 2, 3}), errs.CodeInvalidState))

	_, err = NewBuffer(dev, 0, 5)
	assert.Error(t, err)

	b.Close()
	b.Close()
	assert.Zero(t, dev.Live())
}

func TestPushRejectsDuplicateSlot(t *testing.T) {
	dev := gputest.New()
	m, err := New(dev, nil)
	require.NoError(t, err)

	require.NoError(t, m.PushBuffer(buffer(t, dev, 0, 3, 3)))
	err = m.PushBuffer(buffer(t, dev, 0, 2, 3))
	assert.True(t, errs.Is(err, errs.CodeInvalidState))
	assert.Len(t, m.Buffers(), 1)
}

func TestInitialize(t *testing.T) {
	dev := gputest.New()
	m, err := New(dev, nil)
	require.NoError(t, err)

	assert.Error(t, m.Initialize(), "no buffers")

	pos := buffer(t, dev, 0, 3, 3)
	uv := buffer(t, dev, 2, 2, 3)
	require.NoError(t, m.PushBuffer(pos))
	require.NoError(t, m.PushBuffer(uv))
	require.NoError(t, m.Initialize())

	require.Len(t, dev.Attribs, 2)
	assert.Equal(t, gputest.Attrib{VAO: dev.Attribs[0].VAO, Buffer: pos.ID(), Slot: 0, Components: 3, Stride: 12}, dev.Attribs[0])
	assert.Equal(t, uint32(2), dev.Attribs[1].Slot)
	assert.NotZero(t, dev.Attribs[0].VAO)
	assert.Zero(t, dev.VAO, "vertex array unbound after initialize")

	assert.True(t, errs.Is(m.Initialize(), errs.CodeInvalidState), "second initialize")
	assert.True(t, errs.Is(m.PushBuffer(buffer(t, dev, 1, 3, 3)), errs.CodeInvalidState))
}

func TestInitializeRejectsCountMismatch(t *testing.T) {
	dev := gputest.New()
	m, err := New(dev, nil)
	require.NoError(t, err)

	require.NoError(t, m.PushBuffer(buffer(t, dev, 0, 3, 6)))
	require.NoError(t, m.PushBuffer(buffer(t, dev, 1, 3, 3)))

	err = m.Initialize()
	assert.True(t, errs.Is(err, errs.CodeInvalidState))
	assert.False(t, m.Initialized())
}

func TestRender(t *testing.T) {
	dev := gputest.New()
	mat := newMaterial(t, dev)
	m, err := New(dev, mat)
	require.NoError(t, err)
	require.NoError(t, m.PushBuffer(buffer(t, dev, 0, 3, 6)))
	require.NoError(t, m.Initialize())

	m.Render()

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gputest.Draw{Program: mat.Program(), VAO: dev.Draws[0].VAO, First: 0, Count: 6}, dev.Draws[0])
	assert.NotZero(t, dev.Draws[0].VAO)
	assert.Zero(t, dev.VAO)
}

func TestRenderWithoutMaterial(t *testing.T) {
	dev := gputest.New()
	m, err := New(dev, nil)
	require.NoError(t, err)
	require.NoError(t, m.PushBuffer(buffer(t, dev, 0, 3, 3)))
	require.NoError(t, m.Initialize())

	m.Render()
	require.Len(t, dev.Draws, 1)
	assert.Zero(t, dev.Draws[0].Program)
}

func TestRenderUninitialized(t *testing.T) {
	defer logger.Replace(zap.NewNop())()
	dev := gputest.New()
	m, err := New(dev, nil)
	require.NoError(t, err)

	m.Render()
	m.Render()
	assert.Empty(t, dev.Draws)
}

func TestCloseReleasesOwnedMaterial(t *testing.T) {
	dev := gputest.New()
	m, err := Cube(dev, newMaterial(t, dev), 1, 1, 1)
	require.NoError(t, err)

	m.Close()
	m.Close()
	assert.Zero(t, dev.Live())

	var nilMesh *Mesh
	nilMesh.Close()
}

func TestSharedMaterialSurvivesClose(t *testing.T) {
	dev := gputest.New()
	mat := newMaterial(t, dev)

	a, err := Cube(dev, mat, 1, 1, 1, WithSharedMaterial())
	require.NoError(t, err)
	b, err := Plane(dev, mat, 1, 1, WithSharedMaterial())
	require.NoError(t, err)

	a.Close()
	b.Close()
	assert.Contains(t, dev.Programs, mat.Program())
	assert.Equal(t, 1, dev.Live())
}

func vec3s(data []float32) []math.Vec3 {
	out := make([]math.Vec3, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		out = append(out, math.Vec3{X: data[i], Y: data[i+1], Z: data[i+2]})
	}
	return out
}

func checkFactory(t *testing.T, dev *gputest.Device, m *Mesh, vertices int) {
	t.Helper()
	require.True(t, m.Initialized())
	assert.Equal(t, int32(vertices), m.Count())

	bufs := m.Buffers()
	require.Len(t, bufs, 3)
	for i, want := range []struct {
		slot       uint32
		components int32
	}{{SlotPosition, 3}, {SlotNormal, 3}, {SlotUV, 2}} {
		assert.Equal(t, want.slot, bufs[i].Slot)
		assert.Equal(t, want.components, bufs[i].Components)
		assert.Equal(t, int32(vertices), bufs[i].Count)
	}

	// Every triangle winds counter-clockwise around its stored normal.
	positions := vec3s(dev.Buffers[bufs[0].ID()])
	normals := vec3s(dev.Buffers[bufs[1].ID()])
	for i := 0; i < len(positions); i += 3 {
		a, b, c := positions[i], positions[i+1], positions[i+2]
		faceN := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.InDelta(t, 1, faceN.Dot(normals[i]), 1e-5, "triangle %d", i/3)
	}
}

func TestCube(t *testing.T) {
	dev := gputest.New()
	m, err := Cube(dev, newMaterial(t, dev), 2, 4, 6)
	require.NoError(t, err)
	checkFactory(t, dev, m, 36)

	for _, p := range vec3s(dev.Buffers[m.Buffers()[0].ID()]) {
		assert.InDelta(t, 1, math32Abs(p.X), 1e-6)
		assert.InDelta(t, 2, math32Abs(p.Y), 1e-6)
		assert.InDelta(t, 3, math32Abs(p.Z), 1e-6)
	}

	// Top face tiles uvs across its 2x6 footprint.
	uvs := dev.Buffers[m.Buffers()[2].ID()]
	topFace := uvs[2*12 : 3*12]
	assert.Contains(t, topFace, float32(2))
	assert.Contains(t, topFace, float32(6))
}

func TestPlane(t *testing.T) {
	dev := gputest.New()
	m, err := Plane(dev, nil, 10, 4)
	require.NoError(t, err)
	checkFactory(t, dev, m, 6)

	for _, n := range vec3s(dev.Buffers[m.Buffers()[1].ID()]) {
		assert.Equal(t, math.Vec3{Y: 1}, n)
	}
	for _, p := range vec3s(dev.Buffers[m.Buffers()[0].ID()]) {
		assert.Zero(t, p.Y)
		assert.InDelta(t, 5, math32Abs(p.X), 1e-6)
		assert.InDelta(t, 2, math32Abs(p.Z), 1e-6)
	}
}

func TestFromOBJ(t *testing.T) {
	o, err := obj.Parse([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 2 4 3\n"))
	require.NoError(t, err)

	dev := gputest.New()
	m, err := FromOBJ(dev, nil, o)
	require.NoError(t, err)
	checkFactory(t, dev, m, 6)
	assert.Equal(t, []float32{1, 0, 0}, dev.Buffers[m.Buffers()[0].ID()][3:6])
}

func TestFactoryFailureReleasesObjects(t *testing.T) {
	defer logger.Replace(zap.NewNop())()
	dev := gputest.New()
	mat := newMaterial(t, dev)

	dev.FailCreate = true
	m, err := Cube(dev, mat, 1, 1, 1)
	assert.Nil(t, m)
	assert.True(t, errs.Is(err, errs.CodeGPUObjectFailed))
	assert.Equal(t, 1, dev.Live(), "caller keeps the material")
}

func math32Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
