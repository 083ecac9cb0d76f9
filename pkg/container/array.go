// Package container provides growable contiguous collections.
//
// Array holds comparable values (typically handles or pointers) and removes
// in O(1) by swapping the last element into the hole, so element order is
// not preserved. Pool holds values inline and hands out pointers into its
// storage. Both grow by a factor only when full.
package container

import (
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/Faultbox/nsengine/internal/engine/errs"
)

const (
	// DefaultCapacity is the initial number of slots.
	DefaultCapacity = 8
	// DefaultGrowth is the multiplier applied when a container is full.
	DefaultGrowth = 1.5
)

// grow returns the next capacity: ceil(max*growth), at least max+1.
func grow(max int, growth float32) int {
	next := int(math32.Ceil(float32(max) * growth))
	if next <= max {
		next = max + 1
	}
	return next
}

func checkParams(op string, capacity int, growth float32) error {
	if capacity < 1 {
		return errs.New(op, errs.CodeAllocationFailed, errs.Error, "capacity %d must be positive", capacity)
	}
	if growth <= 1 {
		return errs.New(op, errs.CodeAllocationFailed, errs.Error, "growth factor %g must be greater than 1", growth)
	}
	return nil
}

// Array is an unordered growable array of comparable values.
type Array[T comparable] struct {
	data   []T
	growth float32
}

// NewArray creates an Array with default capacity and growth.
func NewArray[T comparable]() *Array[T] {
	a, _ := NewArrayEx[T](DefaultCapacity, DefaultGrowth)
	return a
}

// NewArrayEx creates an Array with the given capacity and growth factor.
func NewArrayEx[T comparable](capacity int, growth float32) (*Array[T], error) {
	if err := checkParams("container.NewArrayEx", capacity, growth); err != nil {
		return nil, err
	}
	return &Array[T]{data: make([]T, 0, capacity), growth: growth}, nil
}

// Add appends v, growing the storage if it is full.
func (a *Array[T]) Add(v T) {
	if len(a.data) == cap(a.data) {
		next := make([]T, len(a.data), grow(cap(a.data), a.growth))
		copy(next, a.data)
		a.data = next
	}
	a.data = append(a.data, v)
}

// Pop removes the element at i by moving the last element into its slot.
func (a *Array[T]) Pop(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(a.data) {
		return zero, false
	}
	v := a.data[i]
	last := len(a.data) - 1
	a.data[i] = a.data[last]
	a.data[last] = zero
	a.data = a.data[:last]
	return v, true
}

// Remove deletes the first element equal to v and returns the index it
// occupied, or -1 if absent.
func (a *Array[T]) Remove(v T) int {
	for i, x := range a.data {
		if x == v {
			a.Pop(i)
			return i
		}
	}
	return -1
}

// Get returns the element at i.
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(a.data) {
		var zero T
		return zero, errs.New("container.Array.Get", errs.CodeIndexOutOfBounds, errs.Error,
			"index %d out of range [0, %d)", i, len(a.data))
	}
	return a.data[i], nil
}

// Clear empties the array, calling free for each element if non-nil.
// Capacity is retained.
func (a *Array[T]) Clear(free func(T)) {
	var zero T
	for i, v := range a.data {
		if free != nil {
			free(v)
		}
		a.data[i] = zero
	}
	a.data = a.data[:0]
}

// Each calls fn for every element in storage order.
func (a *Array[T]) Each(fn func(T)) {
	for _, v := range a.data {
		fn(v)
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int { return cap(a.data) }

// Slice exposes the live elements. The slice is invalidated by Add and Pop.
func (a *Array[T]) Slice() []T { return a.data }

// MemoryUsed returns the bytes held by the backing storage.
func (a *Array[T]) MemoryUsed() int {
	var zero T
	return cap(a.data) * int(unsafe.Sizeof(zero))
}
