// Package mesh composes vertex attribute buffers and a material into a
// drawable triangle list.
//
// Usage is push-then-initialize-then-render: NewBuffer and Write each
// attribute stream, PushBuffer them in order (the first one is the primary
// buffer whose count sizes every draw), call Initialize once, then Render
// every frame.
package mesh

import (
	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
	"github.com/Faultbox/nsengine/internal/engine/material"
	"github.com/Faultbox/nsengine/pkg/container"
)

// Option configures a Mesh.
type Option func(*Mesh)

// WithSharedMaterial leaves the material open when the mesh is closed, so
// one material can be used by several meshes.
func WithSharedMaterial() Option {
	return func(m *Mesh) { m.ownsMaterial = false }
}

// Mesh is a vertex array, its buffers and an optional material. A mesh owns
// its material unless created WithSharedMaterial.
type Mesh struct {
	dev          gpu.Device
	vao          uint32
	buffers      *container.Array[*Buffer]
	material     *material.Material
	ownsMaterial bool
	initialized  bool
	warned       bool
}

// New creates an empty mesh. mat may be nil for meshes that are drawn with
// whatever program is already bound.
func New(dev gpu.Device, mat *material.Material, opts ...Option) (*Mesh, error) {
	vao, err := dev.CreateVertexArray()
	if err != nil {
		return nil, errs.Report(errs.Wrap("mesh.New", errs.CodeGPUObjectFailed, errs.Error, err))
	}

	m := &Mesh{
		dev:          dev,
		vao:          vao,
		buffers:      container.NewArray[*Buffer](),
		material:     mat,
		ownsMaterial: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// PushBuffer appends b. The mesh takes ownership. Slots must be unique and
// buffers cannot be added after Initialize.
func (m *Mesh) PushBuffer(b *Buffer) error {
	if b == nil {
		return errs.New("mesh.PushBuffer", errs.CodeInvalidState, errs.Error, "nil buffer")
	}
	if m.initialized {
		return errs.New("mesh.PushBuffer", errs.CodeInvalidState, errs.Error, "mesh already initialized")
	}
	for _, other := range m.buffers.Slice() {
		if other.Slot == b.Slot {
			return errs.New("mesh.PushBuffer", errs.CodeInvalidState, errs.Error,
				"attribute slot %d already in use", b.Slot)
		}
	}
	m.buffers.Add(b)
	return nil
}

// Initialize records every buffer's attribute layout in the vertex array.
// It must be called exactly once, after all buffers are pushed. All buffers
// must hold the same vertex count.
func (m *Mesh) Initialize() error {
	if m.initialized {
		return errs.New("mesh.Initialize", errs.CodeInvalidState, errs.Error, "already initialized")
	}
	if m.buffers.Len() == 0 {
		return errs.New("mesh.Initialize", errs.CodeInvalidState, errs.Error, "no buffers")
	}

	count := m.Count()
	for _, b := range m.buffers.Slice() {
		if b.Count != count {
			return errs.New("mesh.Initialize", errs.CodeInvalidState, errs.Error,
				"buffer at slot %d has %d vertices, primary has %d", b.Slot, b.Count, count)
		}
	}

	m.dev.BindVertexArray(m.vao)
	for _, b := range m.buffers.Slice() {
		m.dev.AttribPointer(b.id, b.Slot, b.Components, b.Stride)
	}
	m.dev.BindVertexArray(0)

	m.initialized = true
	return nil
}

// Render draws the mesh as one triangle list. Uninitialized meshes are not
// drawn.
func (m *Mesh) Render() {
	if !m.initialized {
		if !m.warned {
			errs.Report(errs.New("mesh.Render", errs.CodeInvalidState, errs.Warning, "render before Initialize"))
			m.warned = true
		}
		return
	}

	if m.material != nil {
		m.material.Use()
	}
	m.dev.BindVertexArray(m.vao)
	m.dev.DrawTriangles(0, m.Count())
	m.dev.BindVertexArray(0)
}

// Count returns the vertex count of the primary buffer.
func (m *Mesh) Count() int32 {
	b, err := m.buffers.Get(0)
	if err != nil {
		return 0
	}
	return b.Count
}

// Buffers returns the pushed buffers in order.
func (m *Mesh) Buffers() []*Buffer { return m.buffers.Slice() }

// Material returns the assigned material, possibly nil.
func (m *Mesh) Material() *material.Material { return m.material }

// Initialized reports whether Initialize has succeeded.
func (m *Mesh) Initialized() bool { return m.initialized }

// Close releases the buffers, the vertex array and an owned material.
// Safe on nil and idempotent.
func (m *Mesh) Close() {
	if m == nil || m.vao == 0 {
		return
	}
	m.buffers.Clear(func(b *Buffer) { b.Close() })
	m.dev.DeleteVertexArray(m.vao)
	m.vao = 0
	if m.ownsMaterial {
		m.material.Close()
	}
	m.material = nil
}
