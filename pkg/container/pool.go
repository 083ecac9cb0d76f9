package container

import (
	"unsafe"

	"github.com/Faultbox/nsengine/internal/engine/errs"
)

// Pool stores values inline. Pointers returned by Get are valid until the
// next Add or Remove.
type Pool[T any] struct {
	data   []T
	growth float32
}

// NewPool creates a Pool with default capacity and growth.
func NewPool[T any]() *Pool[T] {
	p, _ := NewPoolEx[T](DefaultCapacity, DefaultGrowth)
	return p
}

// NewPoolEx creates a Pool with the given capacity and growth factor.
func NewPoolEx[T any](capacity int, growth float32) (*Pool[T], error) {
	if err := checkParams("container.NewPoolEx", capacity, growth); err != nil {
		return nil, err
	}
	return &Pool[T]{data: make([]T, 0, capacity), growth: growth}, nil
}

// Add copies v into the pool.
func (p *Pool[T]) Add(v T) {
	if len(p.data) == cap(p.data) {
		next := make([]T, len(p.data), grow(cap(p.data), p.growth))
		copy(next, p.data)
		p.data = next
	}
	p.data = append(p.data, v)
}

// Get returns a pointer to the value at i.
func (p *Pool[T]) Get(i int) (*T, error) {
	if i < 0 || i >= len(p.data) {
		return nil, errs.New("container.Pool.Get", errs.CodeIndexOutOfBounds, errs.Error,
			"index %d out of range [0, %d)", i, len(p.data))
	}
	return &p.data[i], nil
}

// At returns a copy of the value at i without bounds reporting. It panics on
// an invalid index like a slice access.
func (p *Pool[T]) At(i int) T { return p.data[i] }

// Remove deletes the value at i by moving the last value into its slot.
func (p *Pool[T]) Remove(i int) error {
	if i < 0 || i >= len(p.data) {
		return errs.New("container.Pool.Remove", errs.CodeIndexOutOfBounds, errs.Error,
			"index %d out of range [0, %d)", i, len(p.data))
	}
	var zero T
	last := len(p.data) - 1
	p.data[i] = p.data[last]
	p.data[last] = zero
	p.data = p.data[:last]
	return nil
}

// Clear empties the pool, calling free on each value if non-nil.
func (p *Pool[T]) Clear(free func(*T)) {
	var zero T
	for i := range p.data {
		if free != nil {
			free(&p.data[i])
		}
		p.data[i] = zero
	}
	p.data = p.data[:0]
}

// Each calls fn with a pointer to every value.
func (p *Pool[T]) Each(fn func(*T)) {
	for i := range p.data {
		fn(&p.data[i])
	}
}

// Len returns the number of values.
func (p *Pool[T]) Len() int { return len(p.data) }

// Cap returns the number of allocated slots.
func (p *Pool[T]) Cap() int { return cap(p.data) }

// Slice exposes the live values.
func (p *Pool[T]) Slice() []T { return p.data }

// MemoryUsed returns the bytes held by the backing storage.
func (p *Pool[T]) MemoryUsed() int {
	var zero T
	return cap(p.data) * int(unsafe.Sizeof(zero))
}
