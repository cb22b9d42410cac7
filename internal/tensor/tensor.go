// Package tensor implements the dense float32 tensor used by the deepbench
// compute layer.
//
// This package provides:
//   - Shape: tensor dimensions with validation helpers
//   - Tensor: contiguous row-major float32 storage
//   - Creation helpers: Zeros, Full, FromSlice, Randn
//
// Benchmark networks train in float32 only, so the tensor is not generic
// over element type. Reshape returns a view sharing the underlying storage.
package tensor

import (
	"fmt"
	"math/rand"
)

// Device identifies where tensor data lives.
type Device string

// CPU is the only in-tree device. Testproblems resolve their device through
// the backend package, which is the seam where an accelerator would slot in.
const CPU Device = "cpu"

// Tensor is a dense row-major float32 tensor.
type Tensor struct {
	shape  Shape
	data   []float32
	device Device
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return &Tensor{
		shape:  shape.Clone(),
		data:   make([]float32, shape.NumElements()),
		device: CPU,
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return New(shape)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, value float32) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor wrapping the given data.
//
// The data is not copied; the caller must not retain the slice. Returns an
// error if the data length does not match the shape.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Tensor{shape: shape.Clone(), data: data, device: CPU}, nil
}

// Randn creates a tensor with values drawn from N(0, 1) using rng.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = float32(rng.NormFloat64())
	}
	return t
}

// Shape returns the tensor shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the underlying float32 storage.
func (t *Tensor) Data() []float32 {
	return t.data
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Device returns the device the tensor lives on.
func (t *Tensor) Device() Device {
	return t.device
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := New(t.shape)
	copy(c.data, t.data)
	return c
}

// Reshape returns a view with the given dimensions sharing the same storage.
//
// Panics if the element count changes.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	newShape := Shape(dims)
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("tensor: cannot reshape %v to %v", t.shape, newShape))
	}
	return &Tensor{shape: newShape.Clone(), data: t.data, device: t.device}
}
