package mesh

import (
	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/engine/gpu"
)

// Attribute slots used by the geometry factories.
const (
	SlotPosition uint32 = 0
	SlotNormal   uint32 = 1
	SlotUV       uint32 = 2
)

// Buffer is one float vertex attribute stream backed by a GPU buffer.
type Buffer struct {
	dev        gpu.Device
	id         uint32
	Slot       uint32
	Components int32
	Stride     int32
	// Count is the number of vertices written.
	Count int32
}

// NewBuffer allocates a buffer for attribute slot with the given number of
// float components per vertex (1 to 4).
func NewBuffer(dev gpu.Device, slot uint32, components int32) (*Buffer, error) {
	if components < 1 || components > 4 {
		return nil, errs.New("mesh.NewBuffer", errs.CodeInvalidState, errs.Error,
			"components must be in [1, 4], got %d", components)
	}
	id, err := dev.CreateBuffer()
	if err != nil {
		return nil, errs.Report(errs.Wrap("mesh.NewBuffer", errs.CodeGPUObjectFailed, errs.Error, err))
	}
	return &Buffer{
		dev:        dev,
		id:         id,
		Slot:       slot,
		Components: components,
		Stride:     components * 4,
	}, nil
}

// ID returns the GPU buffer handle.
func (b *Buffer) ID() uint32 { return b.id }

// Write uploads data once with static-draw usage. len(data) must be a
// multiple of the component count.
func (b *Buffer) Write(data []float32) error {
	if len(data)%int(b.Components) != 0 {
		return errs.New("mesh.Buffer.Write", errs.CodeInvalidState, errs.Error,
			"%d floats is not a multiple of %d components", len(data), b.Components)
	}
	b.Count = int32(len(data)) / b.Components
	b.dev.BufferData(b.id, data)
	return nil
}

// Close deletes the GPU buffer. Safe on nil and idempotent.
func (b *Buffer) Close() {
	if b == nil || b.id == 0 {
		return
	}
	b.dev.DeleteBuffer(b.id)
	b.id = 0
}
