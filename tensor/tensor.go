// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float32 tensor type used
// throughout the benchmark suite.
package tensor

import (
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Device identifies where tensor data lives.
type Device = tensor.Device

// CPU is the default device.
const CPU = tensor.CPU

// Tensor is a dense multi-dimensional float32 array.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	return tensor.New(shape)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with a constant value.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor wrapping data, validating the shape.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Randn creates a tensor with standard normal random values.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	return tensor.Randn(shape, rng)
}
