// Package cpu implements the CPU compute backend for the deepbench compute
// layer.
//
// The backend owns the numeric kernels the benchmark networks need: matrix
// multiplication, 2D convolution (forward and backward), 2D max pooling
// (forward and backward) and ReLU. Batch/channel loops are parallelized
// with the parallel package.
package cpu

import (
	"github.com/deepbench-ml/deepbench/internal/parallel"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Backend implements tensor operations on the CPU.
type Backend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Device returns the device this backend computes on.
func (b *Backend) Device() tensor.Device {
	return b.device
}
